package usecase

//go:generate mockgen -source=sanctions.go -destination=../../tests/mock/usecase/sanctions.go -package=usecasemock

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"wallet-screening/internal/domain/screening"
	"wallet-screening/internal/infra"
	"wallet-screening/internal/pkg/clock"
	"wallet-screening/internal/pkg/errs"
)

// SanctionsChecker answers whether an address is on the sanctions list. Lookups that
// fail, or hit a chain whose list was never loaded, degrade to "not sanctioned"
// instead of failing the request.
type SanctionsChecker interface {
	Check(ctx context.Context, addr screening.Address) screening.Match
}

type sanctionsCheckerImpl struct {
	store   SanctionsStore
	timeout time.Duration
	logger  *slog.Logger
}

func NewSanctionsChecker(store SanctionsStore, timeout time.Duration, logger *slog.Logger) SanctionsChecker {
	return &sanctionsCheckerImpl{store: store, timeout: timeout, logger: logger}
}

func (c *sanctionsCheckerImpl) Check(ctx context.Context, addr screening.Address) screening.Match {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	hit, err := c.store.IsMember(ctx, addr.Chain(), addr.String())
	if infra.IsKind(err, infra.KindNotFound) {
		c.logger.ErrorContext(ctx, "sanctions list not loaded, reporting address as not sanctioned",
			slog.String("chain", addr.Chain().String()),
			slog.String("address", addr.String()))
		return screening.Match{Degraded: true}
	}
	if err != nil {
		c.logger.ErrorContext(ctx, "sanctions lookup failed, reporting address as not sanctioned",
			slog.String("chain", addr.Chain().String()),
			slog.String("address", addr.String()),
			slog.String("error", err.Error()))
		return screening.Match{Degraded: true}
	}
	if hit {
		return screening.SDNMatch()
	}
	return screening.Match{}
}

type SanctionsImport struct {
	Chain    screening.Chain
	Stored   int
	Rejected []string
	SyncedAt time.Time
}

// SanctionsDataUseCase loads a full sanctions list for one chain, replacing the previous one.
type SanctionsDataUseCase interface {
	Replace(ctx context.Context, chain string, addresses []string) (*SanctionsImport, error)
}

type sanctionsDataUseCaseImpl struct {
	store  SanctionsStore
	clock  clock.Clock
	logger *slog.Logger
}

func NewSanctionsDataUseCase(store SanctionsStore, clk clock.Clock, logger *slog.Logger) SanctionsDataUseCase {
	return &sanctionsDataUseCaseImpl{store: store, clock: clk, logger: logger}
}

// Replace normalizes and de-duplicates the input. Malformed entries are reported back
// and skipped; an input with no valid entry is rejected so the set is never emptied by mistake.
func (u *sanctionsDataUseCaseImpl) Replace(ctx context.Context, chain string, addresses []string) (*SanctionsImport, error) {
	c, err := screening.ParseChain(chain)
	if err != nil {
		return nil, &InvalidInputError{
			Code:            CodeUnsupportedChain,
			Message:         "Unsupported chain",
			Chain:           chain,
			SupportedChains: screening.SupportedChainNames(),
		}
	}

	seen := make(map[string]struct{}, len(addresses))
	valid := make([]string, 0, len(addresses))
	var rejected []string
	for _, raw := range addresses {
		norm, err := screening.NormalizeAddress(c, strings.TrimSpace(raw))
		if err != nil {
			rejected = append(rejected, raw)
			continue
		}
		if _, dup := seen[norm]; dup {
			continue
		}
		seen[norm] = struct{}{}
		valid = append(valid, norm)
	}
	if len(valid) == 0 {
		return nil, &InvalidInputError{Code: CodeInvalidRequest, Message: "no valid addresses supplied", Chain: chain}
	}

	syncedAt := u.clock.Now().UTC()
	if err := u.store.Replace(ctx, c, valid, syncedAt); err != nil {
		return nil, errs.Wrap(err, "failed to replace sanctions list")
	}

	u.logger.InfoContext(ctx, "sanctions list replaced",
		slog.String("chain", c.String()),
		slog.Int("stored", len(valid)),
		slog.Int("rejected", len(rejected)))
	return &SanctionsImport{Chain: c, Stored: len(valid), Rejected: rejected, SyncedAt: syncedAt}, nil
}
