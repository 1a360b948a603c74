package x402

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"wallet-screening/internal/domain/payment"
	"wallet-screening/internal/pkg/jwt"
)

const facilitatorAudience = "x402-facilitator"

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type facilitatorRequest struct {
	X402Version         int                  `json:"x402Version"`
	PaymentPayload      *payment.Proof       `json:"paymentPayload"`
	PaymentRequirements payment.Requirements `json:"paymentRequirements"`
}

// facilitatorResponse accepts both the legacy {valid, error} and the current
// {isValid, invalidReason} reply shapes.
type facilitatorResponse struct {
	Valid         bool   `json:"valid"`
	IsValid       bool   `json:"isValid"`
	Error         string `json:"error"`
	InvalidReason string `json:"invalidReason"`
	Payer         string `json:"payer"`
}

// FacilitatorAuthorizer delegates signature and state checks to a remote x402 facilitator.
type FacilitatorAuthorizer struct {
	url    string
	client HTTPDoer
	signer *jwt.Signer
	logger *slog.Logger
}

func NewFacilitatorAuthorizer(url string, client HTTPDoer, signer *jwt.Signer, logger *slog.Logger) *FacilitatorAuthorizer {
	return &FacilitatorAuthorizer{url: url, client: client, signer: signer, logger: logger}
}

// Consumed always reports false; the facilitator checks authorization state itself.
func (f *FacilitatorAuthorizer) Consumed(context.Context, *payment.Proof) (bool, error) {
	return false, nil
}

func (f *FacilitatorAuthorizer) Authorize(ctx context.Context, proof *payment.Proof, req payment.Requirements) payment.Verification {
	body, err := json.Marshal(facilitatorRequest{
		X402Version:         payment.ProtocolVersion,
		PaymentPayload:      proof,
		PaymentRequirements: req,
	})
	if err != nil {
		return payment.Reject(payment.ReasonMalformedProof)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, bytes.NewReader(body))
	if err != nil {
		return f.unavailable(ctx, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if f.signer.Enabled() {
		token, err := f.signer.SignBody(facilitatorAudience, body)
		if err != nil {
			return f.unavailable(ctx, err)
		}
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := f.client.Do(httpReq)
	if err != nil {
		return f.unavailable(ctx, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return f.unavailable(ctx, err)
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		f.logger.WarnContext(ctx, "facilitator returned server error", slog.Int("status", resp.StatusCode))
		return payment.Reject(payment.ReasonFacilitatorUnavailable)
	}

	var out facilitatorResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		f.logger.WarnContext(ctx, "facilitator reply not understood",
			slog.Int("status", resp.StatusCode),
			slog.String("error", err.Error()))
		return payment.Reject(payment.ReasonFacilitatorRejected)
	}
	if resp.StatusCode != http.StatusOK || !(out.Valid || out.IsValid) {
		f.logger.InfoContext(ctx, "facilitator rejected payment",
			slog.Int("status", resp.StatusCode),
			slog.String("reason", firstNonEmpty(out.InvalidReason, out.Error)))
		return payment.Reject(payment.ReasonFacilitatorRejected)
	}

	payer := out.Payer
	if payer == "" {
		payer = proof.Payload.From
	}
	return payment.Accept(strings.ToLower(payer))
}

func (f *FacilitatorAuthorizer) unavailable(ctx context.Context, err error) payment.Verification {
	f.logger.WarnContext(ctx, "facilitator unreachable", slog.String("error", err.Error()))
	return payment.Reject(payment.ReasonFacilitatorUnavailable)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
