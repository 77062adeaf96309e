package timer

import (
	"sort"
	"time"
)

// Manual is a deterministic Scheduler. Time only moves when Advance is called.
type Manual struct {
	now     time.Duration
	nextID  uint64
	pending map[uint64]*manualEntry
}

type manualEntry struct {
	at  time.Duration
	seq uint64
	fn  func()
}

// NewManual creates a Manual scheduler at time zero.
func NewManual() *Manual {
	return &Manual{pending: make(map[uint64]*manualEntry)}
}

// AfterFunc implements Scheduler.
func (m *Manual) AfterFunc(d time.Duration, fn func()) func() {
	m.nextID++
	id := m.nextID
	m.pending[id] = &manualEntry{at: m.now + d, seq: id, fn: fn}
	return func() { delete(m.pending, id) }
}

// Now returns the elapsed scheduler time.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Pending returns the number of scheduled callbacks.
func (m *Manual) Pending() int {
	return len(m.pending)
}

// Advance moves time forward by d, running due callbacks in deadline order.
// Callbacks scheduled while advancing run too if they fall due within d.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		id, e := m.next()
		if e == nil || e.at > target {
			break
		}
		delete(m.pending, id)
		m.now = e.at
		e.fn()
	}
	m.now = target
}

// next returns the earliest pending entry, breaking ties by scheduling order.
func (m *Manual) next() (uint64, *manualEntry) {
	if len(m.pending) == 0 {
		return 0, nil
	}
	entries := make([]*manualEntry, 0, len(m.pending))
	for _, e := range m.pending {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].at != entries[j].at {
			return entries[i].at < entries[j].at
		}
		return entries[i].seq < entries[j].seq
	})
	return entries[0].seq, entries[0]
}
