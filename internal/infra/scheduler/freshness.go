package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"wallet-screening/internal/pkg/errs"
	usecase "wallet-screening/internal/usecase"
)

type FreshnessSource interface {
	Freshness(ctx context.Context) []usecase.ChainFreshness
}

// FreshnessMonitor periodically logs a warning for chains whose sanctions data is
// missing or older than the configured staleness bound.
type FreshnessMonitor struct {
	source  FreshnessSource
	c       *cron.Cron
	timeout time.Duration
	logger  *slog.Logger
}

func NewFreshnessMonitor(schedule string, source FreshnessSource, logger *slog.Logger) (*FreshnessMonitor, error) {
	m := &FreshnessMonitor{
		source:  source,
		c:       cron.New(),
		timeout: 30 * time.Second,
		logger:  logger,
	}
	if _, err := m.c.AddFunc(schedule, func() { m.RunOnce(context.Background()) }); err != nil {
		return nil, errs.Wrapf(err, "invalid freshness schedule %q", schedule)
	}
	return m, nil
}

func (m *FreshnessMonitor) Start() {
	m.c.Start()
}

// Stop waits for a running check to finish or for ctx to expire.
func (m *FreshnessMonitor) Stop(ctx context.Context) {
	done := m.c.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

// RunOnce returns the number of chains that are not fresh.
func (m *FreshnessMonitor) RunOnce(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	stale := 0
	for _, f := range m.source.Freshness(ctx) {
		if f.Fresh {
			continue
		}
		stale++
		attrs := []any{
			slog.String("chain", f.Chain.String()),
			slog.Bool("present", f.Present),
		}
		if f.Age != nil {
			attrs = append(attrs, slog.Duration("age", *f.Age))
		}
		m.logger.WarnContext(ctx, "sanctions data is stale", attrs...)
	}
	return stale
}
