// Package game owns the simulation world: the agent arena, the scheduler sweep,
// the agent lifecycle and the year-end feedback pass.
package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/seeds/components"
	"github.com/pthm-cable/seeds/config"
	"github.com/pthm-cable/seeds/events"
	"github.com/pthm-cable/seeds/rules"
	"github.com/pthm-cable/seeds/systems"
	"github.com/pthm-cable/seeds/telemetry"
)

// Options holds the collaborators injected into a Game.
type Options struct {
	Seed     int64                    // Random source seed; 0 seeds from the clock
	Renderer Renderer                 // Optional render collaborator
	Perf     *telemetry.PerfCollector // Optional, a private collector is created when nil
}

// Game holds the complete simulation state of one run.
type Game struct {
	cfg *config.Config
	rng *rand.Rand

	world *ecs.World

	seedMapper *ecs.Map7[
		components.Position,
		components.Seed,
		components.Clock,
		components.Motion,
		components.Bond,
		components.Slot,
		components.Vitals,
	]
	seedFilter *ecs.Filter7[
		components.Position,
		components.Seed,
		components.Clock,
		components.Motion,
		components.Bond,
		components.Slot,
		components.Vitals,
	]

	posMap    *ecs.Map1[components.Position]
	seedMap   *ecs.Map1[components.Seed]
	clockMap  *ecs.Map1[components.Clock]
	motionMap *ecs.Map1[components.Motion]
	bondMap   *ecs.Map1[components.Bond]
	slotMap   *ecs.Map1[components.Slot]
	vitalsMap *ecs.Map1[components.Vitals]

	grid      *systems.Grid
	bounds    systems.Bounds
	chances   systems.ChanceTables
	scheduler *Scheduler

	bus       *events.Bus
	rules     *rules.Rules
	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	renderer  Renderer

	// State
	tick    int64 // Ticks since start
	counter int   // Tick within the current year, 0 on year boundaries
	nextID  uint32
	live    int
	running bool

	cells []int // Neighbor scratch buffer
}

// New creates a game from a configuration and spawns the initial population.
func New(cfg *config.Config, opts Options) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("creating game: %w", err)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	perf := opts.Perf
	if perf == nil {
		perf = telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)
	}

	world := ecs.NewWorld()

	g := &Game{
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(seed)),
		world: world,

		seedMapper: ecs.NewMap7[
			components.Position,
			components.Seed,
			components.Clock,
			components.Motion,
			components.Bond,
			components.Slot,
			components.Vitals,
		](world),
		seedFilter: ecs.NewFilter7[
			components.Position,
			components.Seed,
			components.Clock,
			components.Motion,
			components.Bond,
			components.Slot,
			components.Vitals,
		](world),

		posMap:    ecs.NewMap1[components.Position](world),
		seedMap:   ecs.NewMap1[components.Seed](world),
		clockMap:  ecs.NewMap1[components.Clock](world),
		motionMap: ecs.NewMap1[components.Motion](world),
		bondMap:   ecs.NewMap1[components.Bond](world),
		slotMap:   ecs.NewMap1[components.Slot](world),
		vitalsMap: ecs.NewMap1[components.Vitals](world),

		grid:      systems.NewGrid(float32(cfg.World.Width), float32(cfg.World.Height), float32(cfg.World.CellSize)),
		bounds:    systems.BoundsFromConfig(cfg),
		chances:   systems.NewChanceTables(cfg.Curves),
		scheduler: NewScheduler(cfg.Timing.TicksPerYear, cfg.Derived.ActionTicks),

		bus:       events.NewBus(),
		rules:     rules.New(cfg),
		collector: telemetry.NewCollector(),
		perf:      perf,
		renderer:  opts.Renderer,

		nextID:  1,
		running: true,
		cells:   make([]int, 0, 9),
	}

	g.spawnInitialPopulation()
	return g, nil
}

// Bus returns the event bus.
func (g *Game) Bus() *events.Bus { return g.bus }

// Rules returns the demographic feedback state. Policy hooks write through it.
func (g *Game) Rules() *rules.Rules { return g.rules }

// Config returns the configuration the game was built from.
func (g *Game) Config() *config.Config { return g.cfg }

// Perf returns the perf collector timing each tick.
func (g *Game) Perf() *telemetry.PerfCollector { return g.perf }

// Ticks returns the number of ticks advanced since start.
func (g *Game) Ticks() int64 { return g.tick }

// Year returns the number of elapsed years.
func (g *Game) Year() int { return g.rules.Year }

// Live returns the live agent count.
func (g *Game) Live() int { return g.live }

// Running reports whether the run is still active.
func (g *Game) Running() bool { return g.running }
