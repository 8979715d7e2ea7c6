package fleet

import (
	"fmt"
	"sync"

	"github.com/aerialfoundry/skyfleet-simulator/model"
)

// EventType indicates what kind of change happened in the fleet.
type EventType int

const (
	EventEntitySpawned EventType = iota
	EventEntityRespawned
)

// Event is emitted to subscribers when an entity is (re)spawned. The
// renderer uses these to rebind visual handles without polling.
type Event struct {
	Type   EventType
	Slot   int
	ID     string
	Handle model.VisualHandle
}

// Fleet is the dense arena of flight entities. Slots are stable for
// the process lifetime: respawns reset a slot in place, entities are
// never removed except at shutdown. The tick loop owns mutation; the
// render side takes snapshots, so reads are guarded.
type Fleet struct {
	mu       sync.RWMutex
	entities []*model.FlightEntity
	subs     []func(Event)
}

// New constructs an empty fleet.
func New() *Fleet {
	return &Fleet{}
}

// Add appends an entity, assigns its slot, and notifies subscribers.
func (f *Fleet) Add(e *model.FlightEntity) int {
	f.mu.Lock()
	e.Slot = len(f.entities)
	f.entities = append(f.entities, e)
	subs := append([]func(Event){}, f.subs...)
	f.mu.Unlock()

	ev := Event{Type: EventEntitySpawned, Slot: e.Slot, ID: e.ID, Handle: e.Handle}
	for _, sub := range subs {
		sub(ev)
	}
	return e.Slot
}

// Get returns the entity at slot, or an error for an out-of-range slot.
func (f *Fleet) Get(slot int) (*model.FlightEntity, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if slot < 0 || slot >= len(f.entities) {
		return nil, fmt.Errorf("fleet: no entity in slot %d", slot)
	}
	return f.entities[slot], nil
}

// All returns the live entity slice for in-tick iteration. Callers on
// the tick goroutine may mutate entities through it; everyone else
// should use Snapshot.
func (f *Fleet) All() []*model.FlightEntity {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.entities
}

// Snapshot returns value copies of all entities, safe to read from any
// goroutine while the tick loop keeps mutating.
func (f *Fleet) Snapshot() []model.FlightEntity {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]model.FlightEntity, len(f.entities))
	for i, e := range f.entities {
		out[i] = *e
	}
	return out
}

// Len returns the population size.
func (f *Fleet) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.entities)
}

// NotifyRespawned publishes a respawn event for the entity's slot.
func (f *Fleet) NotifyRespawned(e *model.FlightEntity) {
	f.mu.RLock()
	subs := append([]func(Event){}, f.subs...)
	f.mu.RUnlock()

	ev := Event{Type: EventEntityRespawned, Slot: e.Slot, ID: e.ID, Handle: e.Handle}
	for _, sub := range subs {
		sub(ev)
	}
}

// Subscribe registers a callback for fleet events. It returns an
// unsubscribe function.
func (f *Fleet) Subscribe(fn func(Event)) (unsubscribe func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs = append(f.subs, fn)
	idx := len(f.subs) - 1

	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if idx < 0 || idx >= len(f.subs) {
			return
		}
		f.subs = append(f.subs[:idx], f.subs[idx+1:]...)
		idx = -1
	}
}
