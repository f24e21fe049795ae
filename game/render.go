package game

import "github.com/pthm-cable/seeds/components"

// Renderer is the render collaborator called once per agent when a frame is due.
type Renderer interface {
	BeginFrame(year int)
	DrawSeed(s components.Snapshot, pos components.Position, phase int)
	EndFrame()
}

// render draws every agent. Above the render limit frames are only drawn on year boundaries.
func (g *Game) render(yearEnd bool) {
	if g.renderer == nil {
		return
	}
	if g.live > g.cfg.Population.MaxRender && !yearEnd {
		return
	}

	g.renderer.BeginFrame(g.rules.Year)
	query := g.seedFilter.Query()
	for query.Next() {
		pos, seed, clock, motion, bond, _, _ := query.Get()
		g.renderer.DrawSeed(g.snapshotOf(seed, pos, motion, bond), *pos, clock.StepCount)
	}
	g.renderer.EndFrame()
}

// Snapshots appends a snapshot of every live agent to dst.
func (g *Game) Snapshots(dst []components.Snapshot) []components.Snapshot {
	query := g.seedFilter.Query()
	for query.Next() {
		pos, seed, _, motion, bond, _, _ := query.Get()
		dst = append(dst, g.snapshotOf(seed, pos, motion, bond))
	}
	return dst
}
