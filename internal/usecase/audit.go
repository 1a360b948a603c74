package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"wallet-screening/internal/domain/screening"
)

// AuditEntry is one screened address as written to the compliance log.
type AuditEntry struct {
	CorrelationID string
	Chain         screening.Chain
	Address       string
	Sanctioned    bool
	RiskLevel     screening.RiskLevel
	CacheHit      bool
	AuthKind      string
	KeyID         string
	ClientIP      string
	CheckedAt     time.Time
}

func newAuditEntry(correlationID string, auth AuthContext, r screening.Result) AuditEntry {
	return AuditEntry{
		CorrelationID: correlationID,
		Chain:         r.Chain,
		Address:       r.Address,
		Sanctioned:    r.Sanctioned,
		RiskLevel:     r.RiskLevel,
		CacheHit:      r.CacheHit,
		AuthKind:      auth.Kind().String(),
		KeyID:         auth.KeyID(),
		ClientIP:      auth.ClientIP(),
		CheckedAt:     r.CheckedAt,
	}
}

type NopAuditRecorder struct{}

func (NopAuditRecorder) Record(context.Context, AuditEntry) error {
	return nil
}

// background runs fire-and-forget work detached from request cancellation.
// Wait lets shutdown drain whatever is still in flight.
type background struct {
	wg      sync.WaitGroup
	timeout time.Duration
	logger  *slog.Logger
}

func newBackground(timeout time.Duration, logger *slog.Logger) *background {
	return &background{timeout: timeout, logger: logger}
}

func (b *background) Go(ctx context.Context, name string, fn func(ctx context.Context) error) {
	ctx = context.WithoutCancel(ctx)
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		ctx, cancel := context.WithTimeout(ctx, b.timeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			b.logger.WarnContext(ctx, "background task failed",
				slog.String("task", name),
				slog.String("error", err.Error()))
		}
	}()
}

func (b *background) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
