package conflict

import (
	"sort"
	"sync"

	"github.com/campushub/timetable-api/internal/models"
)

// Key addresses one occupancy list: all bookings of a single resource on a
// single weekday within a single scheduling scope.
type Key struct {
	Scope      models.Scope
	Kind       models.ResourceKind
	ResourceID string
	Day        int
}

// Booking is one registered interval together with the slot that owns it.
type Booking struct {
	SlotID   string
	Interval Interval
}

// MemoryIndex is the in-memory backing of the conflict index. It is used as a
// write-through cache during bulk seeding, where a storage round-trip per
// candidate would dominate, and as the reference implementation the
// query-backed lookups must agree with.
type MemoryIndex struct {
	mu      sync.RWMutex
	entries map[Key][]Booking
}

// NewMemoryIndex builds an empty index.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{entries: make(map[Key][]Booking)}
}

// Register inserts the interval under the key, keeping the list sorted by
// start time. No deduplication is performed; callers must not register the
// same slot twice.
func (x *MemoryIndex) Register(key Key, interval Interval, slotID string) {
	x.mu.Lock()
	defer x.mu.Unlock()

	list := x.entries[key]
	pos := sort.Search(len(list), func(i int) bool {
		return list[i].Interval.Start >= interval.Start
	})
	list = append(list, Booking{})
	copy(list[pos+1:], list[pos:])
	list[pos] = Booking{SlotID: slotID, Interval: interval}
	x.entries[key] = list
}

// Unregister removes every booking owned by the slot across all keys.
func (x *MemoryIndex) Unregister(slotID string) {
	x.mu.Lock()
	defer x.mu.Unlock()

	for key, list := range x.entries {
		kept := list[:0]
		for _, booking := range list {
			if booking.SlotID != slotID {
				kept = append(kept, booking)
			}
		}
		if len(kept) == 0 {
			delete(x.entries, key)
			continue
		}
		x.entries[key] = kept
	}
}

// Has reports whether any registered booking under the key overlaps the
// interval. A non-empty excludeSlotID skips bookings owned by that slot so
// updates do not conflict with themselves.
func (x *MemoryIndex) Has(key Key, interval Interval, excludeSlotID string) bool {
	x.mu.RLock()
	defer x.mu.RUnlock()

	for _, booking := range x.entries[key] {
		if booking.Interval.Start >= interval.End {
			break
		}
		if excludeSlotID != "" && booking.SlotID == excludeSlotID {
			continue
		}
		if booking.Interval.Overlaps(interval) {
			return true
		}
	}
	return false
}

// Find returns every booking under the key that overlaps the interval, in
// start-time order.
func (x *MemoryIndex) Find(key Key, interval Interval, excludeSlotID string) []Booking {
	x.mu.RLock()
	defer x.mu.RUnlock()

	var hits []Booking
	for _, booking := range x.entries[key] {
		if booking.Interval.Start >= interval.End {
			break
		}
		if excludeSlotID != "" && booking.SlotID == excludeSlotID {
			continue
		}
		if booking.Interval.Overlaps(interval) {
			hits = append(hits, booking)
		}
	}
	return hits
}

// Len returns the total number of registered bookings.
func (x *MemoryIndex) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()

	total := 0
	for _, list := range x.entries {
		total += len(list)
	}
	return total
}
