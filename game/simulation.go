package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/seeds/systems"
	"github.com/pthm-cable/seeds/telemetry"
)

// Tick advances the simulation by one tick and reports whether the run is still active.
// It must not be called concurrently.
func (g *Game) Tick() bool {
	if !g.running {
		return false
	}

	g.perf.StartTick()

	g.tick++
	g.counter = (g.counter + 1) % g.cfg.Timing.TicksPerYear
	yearEnd := g.counter == 0

	g.perf.StartPhase(telemetry.PhaseSweep)
	g.sweep(yearEnd)

	if yearEnd {
		g.perf.StartPhase(telemetry.PhaseCensus)
		g.endYear()
	}

	g.perf.StartPhase(telemetry.PhaseRender)
	g.render(yearEnd)

	g.perf.EndTick()
	return g.running
}

// sweep visits every grid slot once. Agents carry the stamp of the last tick
// that processed them, so an agent relocated into a slot the sweep has not
// reached yet is skipped there. Slot arrays may grow while they are iterated.
func (g *Game) sweep(yearEnd bool) {
	for cell := 0; cell < g.grid.Len(); cell++ {
		for slot := 0; slot < g.grid.CellLen(cell); slot++ {
			e := g.grid.At(cell, slot)
			if e == systems.Empty {
				continue
			}

			clock := g.clockMap.Get(e)
			if clock.LastTick == g.tick {
				continue
			}
			clock.LastTick = g.tick

			g.step(e, yearEnd)
		}
	}
}

// step runs one agent's lifecycle for the current tick.
func (g *Game) step(e ecs.Entity, yearEnd bool) {
	if yearEnd {
		g.seedMap.Get(e).Age++
	}

	clock := g.clockMap.Get(e)
	clock.TickCount++
	if g.scheduler.Due(clock.TickCount) {
		if !g.act(e) {
			return
		}
	}

	g.move(e)
	g.relocate(e)
}

// relocate moves an agent to the cell containing its position.
func (g *Game) relocate(e ecs.Entity) {
	pos := g.posMap.Get(e)
	slot := g.slotMap.Get(e)

	cell := g.grid.CellIndex(pos.X, pos.Y)
	if cell == slot.Cell {
		return
	}
	g.grid.Remove(slot.Cell, slot.Index)
	slot.Cell, slot.Index = g.grid.Insert(e, pos.X, pos.Y)
}
