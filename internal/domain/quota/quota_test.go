//go:build unit

package quota_test

import (
	"testing"
	"time"

	"wallet-screening/internal/domain/credential"
	"wallet-screening/internal/domain/quota"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestCompose(t *testing.T) {
	tests := []struct {
		name    string
		results []quota.Result
		want    quota.Decision
	}{
		{
			name:    "ポリシーなしは拒否",
			results: nil,
			want:    quota.Decision{},
		},
		{
			name: "全て許可なら最も残りの少ないポリシーを報告",
			results: []quota.Result{
				{Policy: "key_minute", Allowed: true, Limit: 10, Remaining: 5, ResetAt: now.Add(time.Minute)},
				{Policy: "key_day", Allowed: true, Limit: 100, Remaining: 3, ResetAt: now.Add(24 * time.Hour)},
			},
			want: quota.Decision{Allowed: true, Limit: 100, Remaining: 3, ResetAt: now.Add(24 * time.Hour)},
		},
		{
			name: "最初に拒否したポリシーの上限とリセットを報告",
			results: []quota.Result{
				{Policy: "key_minute", Allowed: false, Limit: 10, Remaining: 0, ResetAt: now.Add(30 * time.Second)},
				{Policy: "key_day", Allowed: false, Limit: 100, Remaining: 0, ResetAt: now.Add(24 * time.Hour)},
			},
			want: quota.Decision{Limit: 10, Remaining: 0, ResetAt: now.Add(30 * time.Second), DeniedBy: "key_minute"},
		},
		{
			name: "残数が負にならないこと",
			results: []quota.Result{
				{Policy: "free", Allowed: false, Limit: 10, Remaining: -2, ResetAt: now.Add(time.Hour)},
			},
			want: quota.Decision{Limit: 10, Remaining: 0, ResetAt: now.Add(time.Hour), DeniedBy: "free"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := quota.Compose(tt.results)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Decision mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFailClosed(t *testing.T) {
	plan := quota.NewPlan(10, 100, 10)

	got := quota.FailClosed(plan.Admin, now)
	assert.False(t, got.Allowed)
	assert.Equal(t, quota.PolicyAdmin, got.Policy)
	assert.Equal(t, now.Add(time.Hour), got.ResetAt)

	got = quota.FailClosed(plan.Free, now)
	assert.Equal(t, now.Add(time.Minute), got.ResetAt)
}

func TestRetryAfter(t *testing.T) {
	tests := []struct {
		name    string
		resetAt time.Time
		want    int64
	}{
		{name: "端数は切り上げ", resetAt: now.Add(1500 * time.Millisecond), want: 2},
		{name: "ちょうどの秒数", resetAt: now.Add(60 * time.Second), want: 60},
		{name: "過去のリセットは最低1秒", resetAt: now.Add(-time.Second), want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := quota.Decision{ResetAt: tt.resetAt}
			assert.Equal(t, tt.want, d.RetryAfter(now))
		})
	}
}

func TestForCredential(t *testing.T) {
	policies := quota.ForCredential(credential.TierPro.Limits())

	want := []quota.Policy{
		{Name: quota.PolicyKeyMinute, Algorithm: quota.SlidingWindow, Limit: 500, Window: time.Minute, FailureRetry: time.Minute},
		{Name: quota.PolicyKeyDay, Algorithm: quota.FixedWindow, Limit: 100_000, Window: 24 * time.Hour, FailureRetry: time.Minute},
	}
	if diff := cmp.Diff(want, policies); diff != "" {
		t.Errorf("Policies mismatch (-want +got):\n%s", diff)
	}
}

func TestByPriority(t *testing.T) {
	plan := quota.NewPlan(10, 100, 10)
	in := []quota.Policy{plan.Free, plan.Admin, plan.Paid}

	got := quota.ByPriority(in)

	names := make([]string, len(got))
	for i, p := range got {
		names[i] = p.Name
	}
	assert.Equal(t, []string{quota.PolicyPaid, quota.PolicyAdmin, quota.PolicyFree}, names)
	assert.Equal(t, quota.PolicyFree, in[0].Name, "入力は変更されないこと")
}
