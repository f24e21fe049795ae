package game

import (
	"fmt"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/seeds/components"
	"github.com/pthm-cable/seeds/systems"
)

// act runs the decision logic of an agent on its action tick.
// Returns false if the agent died.
func (g *Game) act(e ecs.Entity) bool {
	seed := g.seedMap.Get(e)
	sex, age := seed.Sex, seed.Age

	if g.rng.Float64() < g.chance(e, sex, systems.ChanceDeath, age, g.rules.Modifiers.Death) {
		g.remove(e)
		return false
	}

	switch sex {
	case components.Male:
		g.tryMarry(e)
	case components.Female:
		g.tryBirth(e)
	}
	return true
}

// chance returns the adjusted chance of an event for an agent.
// Invalid results fall back to the agent's last valid chance of the same kind.
func (g *Game) chance(e ecs.Entity, sex components.Sex, kind systems.ChanceKind, age int, modifier float64) float64 {
	c := systems.Adjust(g.chances.At(sex, kind, age), modifier)
	vitals := g.vitalsMap.Get(e)
	if !systems.Valid(c) {
		return vitals.Last[kind]
	}
	vitals.Last[kind] = c
	return c
}

// tryMarry searches the surrounding cells for the first eligible partner.
func (g *Game) tryMarry(e ecs.Entity) {
	seed := g.seedMap.Get(e)
	if g.bondMap.Get(e).Paired() || seed.Age < g.cfg.Ages.MinMarriageAge {
		return
	}
	sex, age := seed.Sex, seed.Age

	chance := g.chance(e, sex, systems.ChanceMarriage, age, g.rules.Modifiers.Marriage)
	draw := g.rng.Float64()
	if draw >= chance {
		return
	}

	g.cells = g.grid.Neighbors(g.slotMap.Get(e).Cell, g.cells[:0])
	for _, cell := range g.cells {
		for i := 0; i < g.grid.CellLen(cell); i++ {
			c := g.grid.At(cell, i)
			if c == systems.Empty || c == e {
				continue
			}
			cs := g.seedMap.Get(c)
			if cs.Sex == sex || cs.Age < g.cfg.Ages.MinBirthAge || g.bondMap.Get(c).Paired() {
				continue
			}
			if !gapAccepts(draw, chance, cs.Age-age) {
				continue
			}
			g.pair(e, c)
			return
		}
	}
}

// gapAccepts applies the age-gap penalty to a successful marriage draw.
// A candidate older by gap years needs draw * ceil(gap/10) < chance.
func gapAccepts(draw, chance float64, gap int) bool {
	if gap <= 0 {
		return true
	}
	return draw*math.Ceil(float64(gap)/10) < chance
}

// tryBirth rolls for a child of a paired female.
func (g *Game) tryBirth(e ecs.Entity) {
	seed := g.seedMap.Get(e)
	bond := g.bondMap.Get(e)
	if !bond.Paired() || seed.Age < g.cfg.Ages.MinBirthAge || seed.Age <= bond.LastBirthAge {
		return
	}

	if g.rng.Float64() >= g.chance(e, seed.Sex, systems.ChanceBirth, seed.Age, g.rules.Modifiers.Birth) {
		return
	}

	father := g.seedMap.Get(bond.Partner)
	if g.bondMap.Get(bond.Partner).Partner != e {
		panic(fmt.Sprintf("game: asymmetric pairing of seed %d", seed.ID))
	}

	bond.Children++
	bond.LastBirthAge = seed.Age + 1

	aptitude := int(math.Round(float64(seed.Aptitude+father.Aptitude)/2)) + g.rng.Intn(g.cfg.Heredity.Increment+1)
	pos := g.posMap.Get(e)
	offset := float32(g.cfg.World.SeedSize)
	spec := seedSpec{
		Sex:      g.randomSex(),
		Aptitude: aptitude,
		X:        pos.X + offset,
		Y:        pos.Y + offset,
		Mother:   e,
	}

	parent := g.snapshot(e)
	g.spawn(spec, &parent)
	g.collector.RecordBirth()
}

// move advances the agent toward its target.
// Paired males follow their partner, juveniles follow a living mother,
// everyone else wanders in runs separated by rest periods.
func (g *Game) move(e ecs.Entity) {
	seed := g.seedMap.Get(e)
	bond := g.bondMap.Get(e)
	off := float32(g.cfg.Movement.FollowOffset)

	switch {
	case seed.Sex == components.Male && bond.Paired():
		p := g.posMap.Get(bond.Partner)
		g.follow(e, p.X+off, p.Y)
		return
	case seed.Age < g.cfg.Ages.MaxChildAge && bond.Mother != (ecs.Entity{}) && g.world.Alive(bond.Mother):
		p := g.posMap.Get(bond.Mother)
		g.follow(e, p.X-off, p.Y)
		return
	}

	g.wander(e, seed.Age)
}

// follow steps toward a moving target.
func (g *Game) follow(e ecs.Entity, x, y float32) {
	motion := g.motionMap.Get(e)
	motion.TargetX, motion.TargetY = g.bounds.Clamp(x, y)
	motion.Moving = true

	pos := g.posMap.Get(e)
	if pos.X == motion.TargetX && pos.Y == motion.TargetY {
		return
	}
	systems.StepToward(pos, motion.TargetX, motion.TargetY, float32(g.cfg.Timing.Speed))
	g.clockMap.Get(e).StepCount++
}

// wander runs the Stopped/Moving state machine.
func (g *Game) wander(e ecs.Entity, age int) {
	motion := g.motionMap.Get(e)
	pos := g.posMap.Get(e)
	mv := g.cfg.Movement

	if !motion.Moving || motion.Runs <= 0 {
		if motion.Moving {
			// Leaving a follow: finish the current leg as the last run
			motion.Runs = 1
		} else {
			if age < motion.WakeAge {
				return
			}
			motion.Moving = true
			motion.Runs = mv.MinRuns + g.rng.Intn(mv.MaxRuns-mv.MinRuns+1)
			g.newTarget(motion, pos)
		}
	}

	g.clockMap.Get(e).StepCount++
	if !systems.StepToward(pos, motion.TargetX, motion.TargetY, float32(g.cfg.Timing.Speed)) {
		return
	}

	motion.Runs--
	if motion.Runs > 0 {
		g.newTarget(motion, pos)
		return
	}
	motion.Moving = false
	motion.WakeAge = age + mv.MinRestYears + g.rng.Intn(mv.MaxRestYears-mv.MinRestYears+1)
}

func (g *Game) newTarget(motion *components.Motion, pos *components.Position) {
	motion.TargetX, motion.TargetY = g.bounds.RandomTarget(g.rng, pos.X, pos.Y, float32(g.cfg.Movement.WanderRadius))
}
