package quota

import (
	"sort"
	"time"

	"wallet-screening/internal/domain/credential"
)

type Algorithm string

const (
	FixedWindow   Algorithm = "fixed_window"
	SlidingWindow Algorithm = "sliding_window"
)

const (
	PolicyFree      = "free"
	PolicyPaid      = "paid"
	PolicyAdmin     = "admin"
	PolicyKeyMinute = "key_minute"
	PolicyKeyDay    = "key_day"
)

// Policy is one counting rule. FailureRetry is the reset horizon reported when
// the counter store cannot be reached and the request is denied.
type Policy struct {
	Name         string
	Algorithm    Algorithm
	Limit        int64
	Window       time.Duration
	FailureRetry time.Duration
}

// Plan holds the policies that do not depend on a credential.
type Plan struct {
	Free  Policy
	Paid  Policy
	Admin Policy
}

func NewPlan(freeDaily, paidPerMinute, adminHourly int64) Plan {
	return Plan{
		Free: Policy{
			Name:         PolicyFree,
			Algorithm:    FixedWindow,
			Limit:        freeDaily,
			Window:       24 * time.Hour,
			FailureRetry: time.Minute,
		},
		Paid: Policy{
			Name:         PolicyPaid,
			Algorithm:    SlidingWindow,
			Limit:        paidPerMinute,
			Window:       time.Minute,
			FailureRetry: time.Minute,
		},
		Admin: Policy{
			Name:         PolicyAdmin,
			Algorithm:    FixedWindow,
			Limit:        adminHourly,
			Window:       time.Hour,
			FailureRetry: time.Hour,
		},
	}
}

// ForCredential returns the per-minute sliding and per-day fixed policies for a key.
func ForCredential(limits credential.Limits) []Policy {
	return []Policy{
		{
			Name:         PolicyKeyMinute,
			Algorithm:    SlidingWindow,
			Limit:        limits.RequestsPerMinute,
			Window:       time.Minute,
			FailureRetry: time.Minute,
		},
		{
			Name:         PolicyKeyDay,
			Algorithm:    FixedWindow,
			Limit:        limits.RequestsPerDay,
			Window:       24 * time.Hour,
			FailureRetry: time.Minute,
		},
	}
}

// ByPriority orders policies shortest window first; ties keep their input order.
func ByPriority(policies []Policy) []Policy {
	out := make([]Policy, len(policies))
	copy(out, policies)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Window < out[j].Window
	})
	return out
}
