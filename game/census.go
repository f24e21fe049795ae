package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/seeds/events"
	"github.com/pthm-cable/seeds/rules"
)

// endYear takes the census, updates the feedback state and emits yearElapsed.
// The run stops when no agent is left.
func (g *Game) endYear() {
	c := g.takeCensus()
	vitals := g.collector.Flush()
	g.rules.Update(c)

	report := events.Report{
		Year:       g.rules.Year,
		Tick:       g.tick,
		Census:     c,
		Ledger:     g.rules.Ledger,
		Modifiers:  g.rules.Modifiers,
		Births:     vitals.Births,
		Deaths:     vitals.Deaths,
		Marriages:  vitals.Marriages,
		MaleDeaths: vitals.MaleDeaths,
		DeathAges:  vitals.DeathAges,
	}
	g.bus.Emit(events.Event{Name: events.YearElapsed, Report: &report})

	if g.live == 0 {
		g.running = false
		slog.Info("population_extinct", "year", g.rules.Year, "tick", g.tick)
	}
}

// takeCensus counts the live agents by sex and age class.
func (g *Game) takeCensus() rules.Census {
	c := rules.Census{
		Ages:      make([]float64, 0, g.live),
		Aptitudes: make([]float64, 0, g.live),
	}
	maxChild := g.cfg.Ages.MaxChildAge

	query := g.seedFilter.Query()
	for query.Next() {
		pos, seed, _, motion, bond, _, _ := query.Get()
		c.Add(g.snapshotOf(seed, pos, motion, bond), maxChild)
	}
	return c
}

// CheckInvariants verifies pairing symmetry, grid placement and bounds of every agent.
func (g *Game) CheckInvariants() error {
	count := 0
	query := g.seedFilter.Query()
	for query.Next() {
		e := query.Entity()
		pos, seed, _, _, bond, slot, _ := query.Get()
		count++

		if bond.Paired() {
			if !g.world.Alive(bond.Partner) || g.bondMap.Get(bond.Partner).Partner != e {
				query.Close()
				return fmt.Errorf("seed %d: asymmetric pairing", seed.ID)
			}
		}
		if g.grid.At(slot.Cell, slot.Index) != e {
			query.Close()
			return fmt.Errorf("seed %d: grid slot (%d, %d) does not hold it", seed.ID, slot.Cell, slot.Index)
		}
		if !g.bounds.Contains(pos.X, pos.Y) {
			query.Close()
			return fmt.Errorf("seed %d: position (%v, %v) out of bounds", seed.ID, pos.X, pos.Y)
		}
	}
	if count != g.live {
		return fmt.Errorf("live count %d, found %d agents", g.live, count)
	}
	return nil
}
