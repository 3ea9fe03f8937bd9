// Package usage tracks the rolling daily time allowance and the
// persisted learner settings. Both live in the key-value store and are
// accessed through the minimal KV contract so tests can substitute an
// in-memory fake.
package usage

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// KV is the key-value contract the ledger and settings need.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Ledger accumulates seconds spent in timed sessions, keyed by local
// calendar day. A day's counter defaults to zero the first time it is
// queried and is never decremented; the key changing at midnight rolls
// the allowance over implicitly.
type Ledger struct {
	kv  KV
	now func() time.Time
}

// NewLedger creates a ledger. A nil now defaults to time.Now.
func NewLedger(kv KV, now func() time.Time) *Ledger {
	if now == nil {
		now = time.Now
	}
	return &Ledger{kv: kv, now: now}
}

// DayKey returns today's storage key, e.g. "usage:2026-08-28".
func (l *Ledger) DayKey() string {
	return "usage:" + l.now().Format("2006-01-02")
}

// SecondsUsed returns the seconds consumed today. Missing or corrupt
// values read as zero; storage failures likewise fall back to zero,
// per the recover-with-defaults policy.
func (l *Ledger) SecondsUsed(ctx context.Context) int {
	raw, ok, err := l.kv.Get(ctx, l.DayKey())
	if err != nil || !ok {
		return 0
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs < 0 {
		return 0
	}
	return secs
}

// Remaining returns the unconsumed part of the daily allowance, never
// negative.
func (l *Ledger) Remaining(ctx context.Context, allowanceSecs int) int {
	rem := allowanceSecs - l.SecondsUsed(ctx)
	if rem < 0 {
		return 0
	}
	return rem
}

// Add commits elapsed seconds to today's counter. Negative inputs are
// clamped to zero so the counter is monotone non-decreasing.
func (l *Ledger) Add(ctx context.Context, secs int) error {
	if secs < 0 {
		secs = 0
	}
	total := l.SecondsUsed(ctx) + secs
	if err := l.kv.Set(ctx, l.DayKey(), strconv.Itoa(total)); err != nil {
		return fmt.Errorf("commit usage: %w", err)
	}
	return nil
}
