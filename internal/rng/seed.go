package rng

import (
	"fmt"
	"time"
)

// WeekKey returns the calendar week key for the given time, e.g. "2026-W35".
// Every player sharing a week key shares an obstacle sequence.
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// SeedForWeek derives a deterministic seed from a week key using FNV-1a.
// The same key always yields the same seed on every platform.
func SeedForWeek(key string) int64 {
	const (
		offset = 14695981039346656037
		prime  = 1099511628211
	)
	var h uint64 = offset
	for i := 0; i < len(key); i++ {
		h ^= uint64(key[i])
		h *= prime
	}
	return int64(h)
}
