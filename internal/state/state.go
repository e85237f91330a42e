// Package state holds the cross-request memory of one side-quest process:
// upstream health for the circuit breaker and the titles recently served by
// the offline selector.
package state

import (
	"sync"
	"time"
)

// Store is the shared state consulted on every generation. The in-process
// Memory is the default; a multi-replica deployment can back it with a shared
// cache without touching callers.
type Store interface {
	Circuit() Circuit
	RecordQuotaFailure(now time.Time, cooldown time.Duration)
	RecentTitles() []string
	RecordTitle(title string)
}

// Circuit is a snapshot of upstream health.
type Circuit struct {
	DownUntil        time.Time
	LastQuotaErrorAt time.Time
}

// Open reports whether generation should skip the upstream at now.
func (c Circuit) Open(now time.Time) bool {
	return !c.DownUntil.IsZero() && now.Before(c.DownUntil)
}

// Remaining is how long the circuit stays open after now.
func (c Circuit) Remaining(now time.Time) time.Duration {
	if !c.Open(now) {
		return 0
	}
	return c.DownUntil.Sub(now)
}

// Memory is a process-local Store. The zero value is not usable; use
// NewMemory.
type Memory struct {
	mu      sync.Mutex
	circuit Circuit
	recent  *Ring
}

// NewMemory returns a closed circuit and an empty ring holding up to
// recentSize titles.
func NewMemory(recentSize int) *Memory {
	return &Memory{recent: NewRing(recentSize)}
}

func (m *Memory) Circuit() Circuit {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.circuit
}

// RecordQuotaFailure opens the circuit until now+cooldown. Concurrent
// failures are last-write-wins.
func (m *Memory) RecordQuotaFailure(now time.Time, cooldown time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.circuit.DownUntil = now.Add(cooldown)
	m.circuit.LastQuotaErrorAt = now
}

func (m *Memory) RecentTitles() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recent.Items()
}

func (m *Memory) RecordTitle(title string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recent.Push(title)
}

var _ Store = (*Memory)(nil)
