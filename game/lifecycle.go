package game

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/seeds/components"
	"github.com/pthm-cable/seeds/events"
)

// seedSpec describes an agent to create.
type seedSpec struct {
	Sex      components.Sex
	Age      int
	Aptitude int
	X, Y     float32
	Mother   ecs.Entity
}

// spawnInitialPopulation creates the founders at random positions.
func (g *Game) spawnInitialPopulation() {
	pop := g.cfg.Population
	her := g.cfg.Heredity

	for i := 0; i < pop.Initial; i++ {
		x, y := g.bounds.RandomPoint(g.rng)
		g.spawn(seedSpec{
			Sex:      g.randomSex(),
			Age:      pop.InitialMinAge + g.rng.Intn(pop.InitialMaxAge-pop.InitialMinAge+1),
			Aptitude: her.InitialMin + g.rng.Intn(her.InitialMax-her.InitialMin+1),
			X:        x,
			Y:        y,
		}, nil)
	}
}

// spawn creates an agent, places it in the grid and a scheduler bucket, and emits agentAdded.
// The new agent is stamped with the current tick so a running sweep skips it.
func (g *Game) spawn(spec seedSpec, parent *components.Snapshot) ecs.Entity {
	id := g.nextID
	g.nextID++

	x, y := g.bounds.Clamp(spec.X, spec.Y)
	bucket := g.scheduler.Assign()

	pos := components.Position{X: x, Y: y}
	seed := components.Seed{ID: id, Sex: spec.Sex, Age: spec.Age, Aptitude: spec.Aptitude}
	clock := components.Clock{
		TickCount: g.scheduler.Phase(g.counter, bucket),
		Bucket:    bucket,
		LastTick:  g.tick,
	}
	motion := components.Motion{TargetX: x, TargetY: y, WakeAge: spec.Age}
	bond := components.Bond{Mother: spec.Mother}
	slot := components.Slot{}
	vitals := components.Vitals{}

	e := g.seedMapper.NewEntity(&pos, &seed, &clock, &motion, &bond, &slot, &vitals)

	s := g.slotMap.Get(e)
	s.Cell, s.Index = g.grid.Insert(e, x, y)
	g.live++

	g.bus.Emit(events.Event{Name: events.AgentAdded, Agent: g.snapshot(e), Parent: parent})
	return e
}

// remove deletes a dead agent: the partner is unpaired, the grid slot and
// scheduler bucket are released, and agentRemoved is emitted.
func (g *Game) remove(e ecs.Entity) {
	snap := g.snapshot(e)

	bond := g.bondMap.Get(e)
	if bond.Paired() {
		other := g.bondMap.Get(bond.Partner)
		if other.Partner != e {
			panic(fmt.Sprintf("game: asymmetric pairing of seed %d", snap.ID))
		}
		other.Partner = ecs.Entity{}
	}

	slot := g.slotMap.Get(e)
	g.grid.Remove(slot.Cell, slot.Index)
	g.scheduler.Release(g.clockMap.Get(e).Bucket)
	g.collector.RecordDeath(snap.Sex, snap.Age)

	g.world.RemoveEntity(e)
	g.live--

	g.bus.Emit(events.Event{Name: events.AgentRemoved, Agent: snap})
}

// pair bonds a male and a female symmetrically.
// The female cannot give birth again before her next birthday.
func (g *Game) pair(male, female ecs.Entity) {
	g.bondMap.Get(male).Partner = female

	fb := g.bondMap.Get(female)
	fb.Partner = male
	fb.LastBirthAge = max(fb.LastBirthAge, g.seedMap.Get(female).Age)

	g.collector.RecordMarriage()
}

// snapshot copies the externally visible state of an agent.
func (g *Game) snapshot(e ecs.Entity) components.Snapshot {
	return g.snapshotOf(g.seedMap.Get(e), g.posMap.Get(e), g.motionMap.Get(e), g.bondMap.Get(e))
}

func (g *Game) snapshotOf(seed *components.Seed, pos *components.Position, motion *components.Motion, bond *components.Bond) components.Snapshot {
	s := components.Snapshot{
		ID:       seed.ID,
		Sex:      seed.Sex,
		Age:      seed.Age,
		Aptitude: seed.Aptitude,
		X:        pos.X,
		Y:        pos.Y,
		Children: bond.Children,
		Moving:   motion.Moving,
	}
	if bond.Paired() {
		s.PartnerID = g.seedMap.Get(bond.Partner).ID
	}
	return s
}

func (g *Game) randomSex() components.Sex {
	if g.rng.Intn(2) == 0 {
		return components.Male
	}
	return components.Female
}
