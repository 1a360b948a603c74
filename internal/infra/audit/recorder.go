package audit

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"

	"wallet-screening/internal/infra"
	usecase "wallet-screening/internal/usecase"
)

// DBTX is satisfied by *pgxpool.Pool, pgx.Tx and pgx.Conn.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const insertEntry = `
INSERT INTO screening_audit (
    correlation_id, chain, address, sanctioned, risk_level,
    cache_hit, auth_kind, key_id, client_ip, checked_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''), $10)`

type Recorder struct {
	db     DBTX
	logger *slog.Logger
}

func NewRecorder(db DBTX, logger *slog.Logger) *Recorder {
	return &Recorder{db: db, logger: logger}
}

func (r *Recorder) Record(ctx context.Context, e usecase.AuditEntry) error {
	_, err := r.db.Exec(ctx, insertEntry,
		e.CorrelationID,
		string(e.Chain),
		e.Address,
		e.Sanctioned,
		string(e.RiskLevel),
		e.CacheHit,
		e.AuthKind,
		e.KeyID,
		e.ClientIP,
		e.CheckedAt,
	)
	if err != nil {
		return infra.WrapStoreErr(r.logger, infra.KindDBFailure, "failed to write audit entry", err)
	}
	return nil
}
