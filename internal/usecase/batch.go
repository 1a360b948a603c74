package usecase

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"wallet-screening/internal/domain/credential"
	"wallet-screening/internal/domain/quota"
	"wallet-screening/internal/domain/screening"
)

type BatchItem struct {
	Chain   string
	Address string
}

type BatchRequest struct {
	Credential    string
	Items         []BatchItem
	ClientIP      string
	CorrelationID string
}

// ItemOutcome holds exactly one of Result or Error.
type ItemOutcome struct {
	Result *screening.Result
	Error  *ItemError
}

type ItemError struct {
	Message string
	Chain   string
	Address string
}

type BatchOutcome struct {
	Items      []ItemOutcome
	Total      int
	Successful int
	Failed     int
	Quota      quota.Decision
	Elapsed    time.Duration
}

// ScreenBatch requires an active credential, charges one quota unit for the whole
// batch and screens the items concurrently. Results keep the order of the input.
func (u *screeningUseCaseImpl) ScreenBatch(ctx context.Context, req BatchRequest) (*BatchOutcome, error) {
	started := u.clock.Now()

	rec, err := u.requireCredential(ctx, req.Credential)
	if err != nil {
		return nil, err
	}
	auth := Credentialed(rec, req.ClientIP)

	switch {
	case len(req.Items) == 0:
		return nil, &InvalidInputError{
			Code:    CodeInvalidRequest,
			Message: "addresses must be a non-empty array",
		}
	case len(req.Items) > u.settings.BatchMaxSize:
		return nil, &InvalidInputError{
			Code:         CodeBatchTooLarge,
			Message:      "Batch size exceeds maximum",
			MaxBatchSize: u.settings.BatchMaxSize,
			Requested:    len(req.Items),
		}
	}

	decision := u.quota.Check(ctx, auth.QuotaIdentifier(), quota.ForCredential(rec.EffectiveLimits())...)
	if !decision.Allowed {
		return nil, &RateLimitedError{Decision: decision}
	}
	u.touchUsage(ctx, rec.KeyID)

	items := make([]ItemOutcome, len(req.Items))
	g := new(errgroup.Group)
	g.SetLimit(min(u.settings.BatchConcurrency, len(req.Items)))
	for i, item := range req.Items {
		g.Go(func() error {
			items[i] = u.screenItem(ctx, req.CorrelationID, auth, item)
			return nil
		})
	}
	// Item failures are carried in ItemOutcome; Wait only fails if a worker does.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &BatchOutcome{Items: items, Total: len(items), Quota: decision}
	for _, it := range items {
		if it.Error != nil {
			out.Failed++
		} else {
			out.Successful++
		}
	}
	out.Elapsed = u.clock.Now().Sub(started)

	u.logger.InfoContext(ctx, "batch screened",
		slog.String("key_id", rec.KeyID),
		slog.Int("total", out.Total),
		slog.Int("failed", out.Failed))
	return out, nil
}

func (u *screeningUseCaseImpl) requireCredential(ctx context.Context, presented string) (*credential.Record, error) {
	if presented == "" {
		return nil, &UnauthorizedError{Code: CodeAPIKeyRequired, Message: "API key required for batch screening"}
	}
	rec, found := u.identity.Resolve(ctx, presented)
	if !found {
		return nil, &UnauthorizedError{Code: CodeInvalidAPIKey, Message: "Invalid API key"}
	}
	if !rec.Active {
		return nil, &UnauthorizedError{Code: CodeInvalidAPIKey, Message: "API key is inactive"}
	}
	return rec, nil
}

func (u *screeningUseCaseImpl) screenItem(ctx context.Context, correlationID string, auth AuthContext, item BatchItem) ItemOutcome {
	addr, err := parseTarget(item.Chain, item.Address)
	if err != nil {
		msg, chain := "Invalid address format", item.Chain
		if c, perr := screening.ParseChain(item.Chain); perr != nil {
			msg = "Unsupported chain"
		} else {
			chain = c.String()
		}
		return ItemOutcome{Error: &ItemError{Message: msg, Chain: chain, Address: item.Address}}
	}

	result := u.screen(ctx, addr)
	u.recordAudit(ctx, correlationID, auth, result)
	return ItemOutcome{Result: &result}
}
