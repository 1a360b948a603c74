package screening

import "time"

const (
	SourceOFAC = "ofac_github"

	SanctionedTTL = 24 * time.Hour
	ClearTTL      = time.Hour
)

type Details struct {
	List       string
	EntityName string
	AddedDate  string
}

// Match is the screening engine's verdict for one address.
// Degraded is set when the sanctions store could not be consulted and the
// verdict defaulted to not sanctioned.
type Match struct {
	Sanctioned bool
	Source     string
	Details    *Details
	Degraded   bool
}

func SDNMatch() Match {
	return Match{
		Sanctioned: true,
		Source:     SourceOFAC,
		Details: &Details{
			List:       "OFAC SDN",
			EntityName: "Sanctioned Entity",
		},
	}
}

type Result struct {
	Address    string
	Chain      Chain
	Sanctioned bool
	RiskLevel  RiskLevel
	Flags      []string
	CheckedAt  time.Time
	Sources    []string
	CacheHit   bool
	Details    *Details
}

// NewResult derives risk from the match so that a sanctioned result is always high risk.
func NewResult(addr Address, match Match, checkedAt time.Time) Result {
	assessment := Assess(Signals{Sanctioned: match.Sanctioned})
	r := Result{
		Address:    addr.String(),
		Chain:      addr.Chain(),
		Sanctioned: match.Sanctioned,
		RiskLevel:  assessment.Level,
		Flags:      assessment.Flags,
		CheckedAt:  checkedAt.UTC(),
		Sources:    []string{SourceOFAC},
	}
	if match.Sanctioned {
		r.Details = match.Details
	}
	return r
}

// CacheTTL keeps positive verdicts longer than clear ones.
func (r Result) CacheTTL() time.Duration {
	if r.Sanctioned {
		return SanctionedTTL
	}
	return ClearTTL
}

func (r Result) AsCacheHit() Result {
	r.CacheHit = true
	return r
}
