package response

import (
	"time"

	"wallet-screening/internal/domain/screening"
	usecase "wallet-screening/internal/usecase"
)

// isoMillis matches JavaScript's Date.toISOString.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

type DetailsResponse struct {
	List       string `json:"list"`
	EntityName string `json:"entity_name,omitempty"`
	AddedDate  string `json:"added_date,omitempty"`
}

type ScreeningResponse struct {
	Address       string           `json:"address"`
	Chain         string           `json:"chain"`
	Sanctioned    bool             `json:"sanctioned"`
	RiskLevel     string           `json:"risk_level"`
	Flags         []string         `json:"flags"`
	CheckedAt     string           `json:"checked_at"`
	Sources       []string         `json:"sources"`
	CacheHit      bool             `json:"cache_hit"`
	CorrelationID string           `json:"correlation_id"`
	Details       *DetailsResponse `json:"details,omitempty"`
}

func FromResult(r screening.Result, correlationID string) *ScreeningResponse {
	res := &ScreeningResponse{
		Address:       r.Address,
		Chain:         r.Chain.String(),
		Sanctioned:    r.Sanctioned,
		RiskLevel:     string(r.RiskLevel),
		Flags:         r.Flags,
		CheckedAt:     FormatTime(r.CheckedAt),
		Sources:       r.Sources,
		CacheHit:      r.CacheHit,
		CorrelationID: correlationID,
	}
	if res.Flags == nil {
		res.Flags = []string{}
	}
	if res.Sources == nil {
		res.Sources = []string{}
	}
	if r.Details != nil {
		res.Details = &DetailsResponse{
			List:       r.Details.List,
			EntityName: r.Details.EntityName,
			AddedDate:  r.Details.AddedDate,
		}
	}
	return res
}

type BatchItemErrorResponse struct {
	Error   string `json:"error"`
	Chain   string `json:"chain"`
	Address string `json:"address"`
}

type BatchResponse struct {
	CorrelationID    string `json:"correlation_id"`
	Total            int    `json:"total"`
	Successful       int    `json:"successful"`
	Failed           int    `json:"failed"`
	Results          []any  `json:"results"`
	ProcessingTimeMS int64  `json:"processing_time_ms"`
}

func FromBatch(out *usecase.BatchOutcome, correlationID string) *BatchResponse {
	res := &BatchResponse{
		CorrelationID:    correlationID,
		Total:            out.Total,
		Successful:       out.Successful,
		Failed:           out.Failed,
		Results:          make([]any, len(out.Items)),
		ProcessingTimeMS: out.Elapsed.Milliseconds(),
	}
	for i, it := range out.Items {
		if it.Error != nil {
			res.Results[i] = &BatchItemErrorResponse{Error: it.Error.Message, Chain: it.Error.Chain, Address: it.Error.Address}
			continue
		}
		res.Results[i] = FromResult(*it.Result, correlationID)
	}
	return res
}

type SanctionsImportResponse struct {
	Chain    string   `json:"chain"`
	Stored   int      `json:"stored"`
	Rejected []string `json:"rejected"`
	SyncedAt string   `json:"synced_at"`
}

func FromSanctionsImport(in *usecase.SanctionsImport) *SanctionsImportResponse {
	rejected := in.Rejected
	if rejected == nil {
		rejected = []string{}
	}
	return &SanctionsImportResponse{
		Chain:    in.Chain.String(),
		Stored:   in.Stored,
		Rejected: rejected,
		SyncedAt: FormatTime(in.SyncedAt),
	}
}

func FormatTime(t time.Time) string {
	return t.UTC().Format(isoMillis)
}
