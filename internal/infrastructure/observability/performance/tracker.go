package performance

import (
	"fmt"
	"sync"
	"time"
)

// Tracker manages performance markers for inventory operations
type Tracker struct {
	markers    map[string]*Marker
	maxMarkers int
	mu         sync.RWMutex
	started    time.Time
	sequence   uint64
}

// NewTracker creates a new performance tracker
func NewTracker() *Tracker {
	return &Tracker{
		markers:    make(map[string]*Marker),
		maxMarkers: 10000,
		started:    time.Now(),
	}
}

// StartOperation begins tracking a new operation and returns its marker
func (t *Tracker) StartOperation(operation, scope string) *Marker {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.sequence++
	id := fmt.Sprintf("%s:%s:%d", operation, scope, t.sequence)

	marker := &Marker{
		Operation: operation,
		Scope:     scope,
		StartTime: time.Now(),
		Metadata:  make(map[string]any),
	}

	if len(t.markers) >= t.maxMarkers {
		t.evictOldestLocked()
	}
	t.markers[id] = marker

	return marker
}

// RecentMarkers returns completed markers recorded since the given time.
func (t *Tracker) RecentMarkers(since time.Time) []*Marker {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var result []*Marker
	for _, m := range t.markers {
		if m.Completed && m.EndTime.After(since) {
			result = append(result, m)
		}
	}
	return result
}

// Uptime reports how long the tracker has been running.
func (t *Tracker) Uptime() time.Duration {
	return time.Since(t.started)
}

func (t *Tracker) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, m := range t.markers {
		if oldestID == "" || m.StartTime.Before(oldest) {
			oldestID = id
			oldest = m.StartTime
		}
	}
	if oldestID != "" {
		delete(t.markers, oldestID)
	}
}
