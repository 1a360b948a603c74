package screening

type RiskLevel string

const (
	RiskClear  RiskLevel = "clear"
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

const FlagOFACSDNList = "ofac_sdn_list"

var riskRank = map[RiskLevel]int{
	RiskClear:  0,
	RiskLow:    1,
	RiskMedium: 2,
	RiskHigh:   3,
}

func (l RiskLevel) AtLeast(other RiskLevel) bool {
	return riskRank[l] >= riskRank[other]
}

// Signals are the facts collected about an address before it is assessed.
type Signals struct {
	Sanctioned bool
}

type Assessment struct {
	Level RiskLevel
	Flags []string
}

type rule struct {
	applies func(Signals) bool
	level   RiskLevel
	flag    string
}

// rules are evaluated in order; the final level is the highest one that applied.
var rules = []rule{
	{
		applies: func(s Signals) bool { return s.Sanctioned },
		level:   RiskHigh,
		flag:    FlagOFACSDNList,
	},
}

func Assess(s Signals) Assessment {
	out := Assessment{Level: RiskClear, Flags: []string{}}
	for _, r := range rules {
		if !r.applies(s) {
			continue
		}
		if r.level.AtLeast(out.Level) {
			out.Level = r.level
		}
		out.Flags = append(out.Flags, r.flag)
	}
	return out
}
