package response

import (
	usecase "wallet-screening/internal/usecase"
)

type HealthChecksResponse struct {
	Redis    bool `json:"redis"`
	OFACData bool `json:"ofac_data"`
	Config   bool `json:"config"`
}

type FreshnessResponse struct {
	Fresh               bool     `json:"fresh"`
	AgeHours            *float64 `json:"age_hours"`
	LastSync            *string  `json:"last_sync"`
	TTLRemainingSeconds int64    `json:"ttl_remaining"`
}

type HealthResponse struct {
	Status        string                       `json:"status"`
	Timestamp     string                       `json:"timestamp"`
	Version       string                       `json:"version"`
	Checks        HealthChecksResponse         `json:"checks"`
	DataFreshness map[string]FreshnessResponse `json:"data_freshness"`
	Issues        []string                     `json:"issues,omitempty"`
}

func FromHealthReport(r usecase.HealthReport) *HealthResponse {
	res := &HealthResponse{
		Status:    r.Status,
		Timestamp: FormatTime(r.Timestamp),
		Version:   r.Version,
		Checks: HealthChecksResponse{
			Redis:    r.Checks.Store,
			OFACData: r.Checks.SanctionsData,
			Config:   r.Checks.Config,
		},
		DataFreshness: make(map[string]FreshnessResponse, len(r.Freshness)),
		Issues:        r.Issues,
	}
	for _, f := range r.Freshness {
		fr := FreshnessResponse{
			Fresh:               f.Fresh,
			TTLRemainingSeconds: int64(f.TTLRemaining.Seconds()),
		}
		if f.Age != nil {
			hours := f.Age.Hours()
			fr.AgeHours = &hours
		}
		if f.LastSync != nil {
			s := FormatTime(*f.LastSync)
			fr.LastSync = &s
		}
		res.DataFreshness[f.Chain.String()] = fr
	}
	return res
}
