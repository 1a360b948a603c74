//go:build unit || e2e

// Package redistest starts an in-process Redis for store-backed tests.
package redistest

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func New(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// CommandCounter is a go-redis hook that counts every command sent, pipelines included.
type CommandCounter struct {
	n atomic.Int64
}

func Count(rdb *redis.Client) *CommandCounter {
	c := &CommandCounter{}
	rdb.AddHook(c)
	return c
}

func (c *CommandCounter) Load() int64 {
	return c.n.Load()
}

func (c *CommandCounter) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (c *CommandCounter) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		if cmd.Name() != "hello" && cmd.Name() != "client" {
			c.n.Add(1)
		}
		return next(ctx, cmd)
	}
}

func (c *CommandCounter) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		c.n.Add(int64(len(cmds)))
		return next(ctx, cmds)
	}
}
