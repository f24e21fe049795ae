package telemetry

import (
	"log/slog"
	"time"
)

// Phase names timed within one tick.
const (
	PhaseSweep  = "sweep"
	PhaseCensus = "census"
	PhaseRender = "render"
)

var phases = []string{PhaseSweep, PhaseCensus, PhaseRender}

type tickSample struct {
	total  time.Duration
	phases [3]time.Duration
}

// PerfCollector keeps tick timings over a rolling window.
type PerfCollector struct {
	window  []tickSample
	next    int
	filled  int
	current tickSample

	tickStart  time.Time
	phaseStart time.Time
	phase      int // index into phases, -1 when idle

	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		window: make([]tickSample, windowSize),
		phase:  -1,
	}
}

// StartTick begins timing a tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.current = tickSample{}
	p.phase = -1
}

// StartPhase closes the running phase, if any, and starts timing the named one.
// Unknown names stop phase timing until the next known phase.
func (p *PerfCollector) StartPhase(name string) {
	now := time.Now()
	p.closePhase(now)
	p.phase = phaseIndex(name)
	p.phaseStart = now
}

// EndTick records the tick into the window.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.current.total = now.Sub(p.tickStart)

	p.window[p.next] = p.current
	p.next = (p.next + 1) % len(p.window)
	if p.filled < len(p.window) {
		p.filled++
	}
}

// RecordFrame marks a rendered frame in interactive mode.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase >= 0 {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
	}
	p.phase = -1
}

func phaseIndex(name string) int {
	for i, n := range phases {
		if n == name {
			return i
		}
	}
	return -1
}

// PerfStats aggregates the window.
type PerfStats struct {
	AvgTick time.Duration
	MinTick time.Duration
	MaxTick time.Duration

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64 // Share of the average tick, 0-100

	TicksPerSecond float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats computes the window aggregate.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg:      make(map[string]time.Duration, len(phases)),
		PhasePct:      make(map[string]float64, len(phases)),
		FrameDuration: p.frame,
	}
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.filled == 0 {
		return s
	}

	var total time.Duration
	var sums [3]time.Duration
	for i := 0; i < p.filled; i++ {
		t := p.window[i]
		total += t.total
		if i == 0 || t.total < s.MinTick {
			s.MinTick = t.total
		}
		s.MaxTick = max(s.MaxTick, t.total)
		for j, d := range t.phases {
			sums[j] += d
		}
	}

	n := time.Duration(p.filled)
	s.AvgTick = total / n
	for j, name := range phases {
		avg := sums[j] / n
		s.PhaseAvg[name] = avg
		if s.AvgTick > 0 {
			s.PhasePct[name] = float64(avg) / float64(s.AvgTick) * 100
		}
	}
	if s.AvgTick > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTick)
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTick.Microseconds()),
		slog.Int64("min_tick_us", s.MinTick.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTick.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, name := range phases {
		attrs = append(attrs, slog.Float64(name+"_pct", s.PhasePct[name]))
	}
	return slog.GroupValue(attrs...)
}

// LogStats logs the aggregate using slog.
func (s PerfStats) LogStats() {
	slog.Info("perf", "stats", s)
}

// PerfStatsCSV is the flat perf.csv row.
type PerfStatsCSV struct {
	Year        int     `csv:"year"`
	AvgTickUS   int64   `csv:"avg_tick_us"`
	MinTickUS   int64   `csv:"min_tick_us"`
	MaxTickUS   int64   `csv:"max_tick_us"`
	TicksPerSec float64 `csv:"ticks_per_sec"`
	FPS         float64 `csv:"fps"`
	SweepPct    float64 `csv:"sweep_pct"`
	CensusPct   float64 `csv:"census_pct"`
	RenderPct   float64 `csv:"render_pct"`
}

// ToCSV flattens the aggregate for the given year.
func (s PerfStats) ToCSV(year int) PerfStatsCSV {
	return PerfStatsCSV{
		Year:        year,
		AvgTickUS:   s.AvgTick.Microseconds(),
		MinTickUS:   s.MinTick.Microseconds(),
		MaxTickUS:   s.MaxTick.Microseconds(),
		TicksPerSec: s.TicksPerSecond,
		FPS:         s.FPS,
		SweepPct:    s.PhasePct[PhaseSweep],
		CensusPct:   s.PhasePct[PhaseCensus],
		RenderPct:   s.PhasePct[PhaseRender],
	}
}
