package screening

import "time"

// Freshness describes the sanctions data held for one chain.
type Freshness struct {
	Chain        Chain
	Present      bool
	LastSync     *time.Time
	TTLRemaining time.Duration
}

func (f Freshness) Age(now time.Time) (time.Duration, bool) {
	if f.LastSync == nil {
		return 0, false
	}
	return now.Sub(*f.LastSync), true
}

func (f Freshness) IsFresh(now time.Time, staleAfter time.Duration) bool {
	if !f.Present {
		return false
	}
	age, ok := f.Age(now)
	return ok && age <= staleAfter
}
