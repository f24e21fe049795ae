// Package events provides the name-keyed callback registry fired by the simulation.
package events

import (
	"slices"

	"github.com/pthm-cable/seeds/components"
	"github.com/pthm-cable/seeds/rules"
)

// Name identifies an event.
type Name string

const (
	AgentAdded   Name = "agentAdded"
	AgentRemoved Name = "agentRemoved"
	YearElapsed  Name = "yearElapsed"
)

// Report summarizes one elapsed year.
type Report struct {
	Year      int
	Tick      int64
	Census    rules.Census
	Ledger    rules.Ledger
	Modifiers rules.Modifiers
	Births    int
	Deaths    int
	Marriages int
	// MaleDeaths counts the deaths of males among Deaths.
	MaleDeaths int
	DeathAges  []float64
}

// Event is the payload handed to handlers.
// Agent and Parent are set for agent events, Report for YearElapsed.
type Event struct {
	Name   Name
	Agent  components.Snapshot
	Parent *components.Snapshot
	Report *Report
}

// Handler reacts to an event.
type Handler func(Event)

type entry struct {
	key string
	fn  Handler
}

// Bus is a registry of handlers keyed by event name and handler key.
// Handlers fire synchronously in registration order.
type Bus struct {
	handlers map[Name][]entry
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[Name][]entry)}
}

// On registers fn under key. Registering an existing key replaces its handler in place.
func (b *Bus) On(name Name, key string, fn Handler) {
	list := b.handlers[name]
	for i := range list {
		if list[i].key == key {
			next := slices.Clone(list)
			next[i].fn = fn
			b.handlers[name] = next
			return
		}
	}
	b.handlers[name] = append(list, entry{key: key, fn: fn})
}

// Off removes the handler registered under key. Returns false if none was registered.
func (b *Bus) Off(name Name, key string) bool {
	list := b.handlers[name]
	for i := range list {
		if list[i].key != key {
			continue
		}
		// Copy so an Emit iterating the old slice is unaffected
		next := make([]entry, 0, len(list)-1)
		next = append(next, list[:i]...)
		next = append(next, list[i+1:]...)
		if len(next) == 0 {
			delete(b.handlers, name)
		} else {
			b.handlers[name] = next
		}
		return true
	}
	return false
}

// Has reports whether a handler is registered under key.
func (b *Bus) Has(name Name, key string) bool {
	for _, e := range b.handlers[name] {
		if e.key == key {
			return true
		}
	}
	return false
}

// Len returns the number of handlers registered for name.
func (b *Bus) Len(name Name) int {
	return len(b.handlers[name])
}

// Emit fires every handler registered for ev.Name.
// Handlers registered or removed during the emit take effect on the next one.
func (b *Bus) Emit(ev Event) {
	for _, e := range b.handlers[ev.Name] {
		e.fn(ev)
	}
}

// Times registers fn to fire n times; the last invocation deregisters it.
func (b *Bus) Times(name Name, key string, n int, fn Handler) {
	if n <= 0 {
		return
	}
	c := &countdown{bus: b, name: name, key: key, left: n, fn: fn}
	b.On(name, key, c.fire)
}

// countdown is a handler that removes itself after its last invocation.
type countdown struct {
	bus  *Bus
	name Name
	key  string
	left int
	fn   Handler
}

func (c *countdown) fire(ev Event) {
	c.left--
	if c.left == 0 {
		c.bus.Off(c.name, c.key)
	}
	c.fn(ev)
}
