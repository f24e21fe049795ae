// Package components defines ECS components for the simulation.
package components

import "github.com/mlange-42/ark/ecs"

// Sex tags the two agent variants. Sex-specific behavior is dispatched with a switch.
type Sex uint8

const (
	Male Sex = iota
	Female
)

// String returns the sex name.
func (s Sex) String() string {
	if s == Female {
		return "female"
	}
	return "male"
}

// Position represents an agent's world position.
type Position struct {
	X, Y float32
}

// Seed holds an agent's identity and age.
type Seed struct {
	ID       uint32 // Assigned on insertion, never reused
	Sex      Sex
	Age      int // Whole years
	Aptitude int // Inherited score, averaged from both parents at birth
}

// Clock holds the per-agent scheduling counters.
type Clock struct {
	TickCount int   // Drives the decision cadence
	StepCount int   // Drives the movement animation
	Bucket    int   // Load-distribution bucket
	LastTick  int64 // Stamp of the last sweep that processed this agent
}

// Motion holds the wander state.
type Motion struct {
	TargetX, TargetY float32
	Moving           bool
	Runs             int // Bursts left before stopping
	WakeAge          int // Age at which a stopped agent moves again
}

// Bond holds the relationships of an agent as entity handles.
type Bond struct {
	Partner      ecs.Entity // Zero when unpaired
	Mother       ecs.Entity // Zero for founders
	Children     int
	LastBirthAge int
}

// Slot records where an agent lives in the spatial grid.
type Slot struct {
	Cell  int
	Index int
}

// Vitals caches the last valid adjusted chance per kind.
type Vitals struct {
	Last [3]float64
}

// Paired reports whether the bond holds a partner.
func (b *Bond) Paired() bool {
	return b.Partner != (ecs.Entity{})
}
