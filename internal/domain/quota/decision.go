package quota

import (
	"math"
	"time"
)

// Result is a single policy's verdict.
type Result struct {
	Policy    string
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetAt   time.Time
}

// FailClosed is the verdict used when the counter for p could not be read or written.
func FailClosed(p Policy, now time.Time) Result {
	return Result{
		Policy:  p.Name,
		Allowed: false,
		ResetAt: now.Add(p.FailureRetry),
	}
}

// Decision is the combined verdict over every policy that applied to a request.
type Decision struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetAt   time.Time
	DeniedBy  string
}

// Compose combines verdicts given in priority order. The request is allowed only
// if every policy allowed it. Remaining is the minimum across policies; limit and
// reset come from the first denying policy, otherwise from the tightest one.
func Compose(results []Result) Decision {
	if len(results) == 0 {
		return Decision{}
	}

	d := Decision{Allowed: true, Remaining: math.MaxInt64}
	reporting := -1
	for i, r := range results {
		if r.Remaining < d.Remaining {
			d.Remaining = r.Remaining
			if d.Allowed {
				reporting = i
			}
		}
		if !r.Allowed && d.Allowed {
			d.Allowed = false
			d.DeniedBy = r.Policy
			reporting = i
		}
	}
	if reporting < 0 {
		reporting = 0
	}
	d.Limit = results[reporting].Limit
	d.ResetAt = results[reporting].ResetAt
	if d.Remaining < 0 {
		d.Remaining = 0
	}
	return d
}

// RetryAfter is the whole number of seconds a denied caller should wait, at least one.
func (d Decision) RetryAfter(now time.Time) int64 {
	secs := int64(math.Ceil(d.ResetAt.Sub(now).Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}
