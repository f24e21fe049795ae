package telemetry

import (
	"log/slog"

	"github.com/pthm-cable/seeds/events"
)

// RecorderKey is the handler key the recorder registers under.
const RecorderKey = "telemetry"

// Recorder turns year reports into YearStats and forwards them to the sinks.
// Nil sinks are skipped.
type Recorder struct {
	Output   *OutputManager
	Archive  *Archive
	Perf     *PerfCollector
	LogStats bool

	last  YearStats
	years int
}

// Attach registers the recorder on the bus.
func (r *Recorder) Attach(bus *events.Bus) {
	bus.On(events.YearElapsed, RecorderKey, r.handle)
}

func (r *Recorder) handle(ev events.Event) {
	if ev.Report == nil {
		return
	}
	r.Record(*ev.Report)
}

// Record processes one year report.
func (r *Recorder) Record(rep events.Report) YearStats {
	s := NewYearStats(rep)
	r.last = s
	r.years++

	if r.LogStats {
		s.LogStats()
	}

	if err := r.Output.WriteYear(s); err != nil {
		slog.Error("failed to write census", "error", err)
	}
	if r.Archive != nil {
		if err := r.Archive.SaveYear(s); err != nil {
			slog.Error("failed to archive year", "year", s.Year, "error", err)
		}
	}

	if r.Perf != nil {
		ps := r.Perf.Stats()
		if r.LogStats {
			ps.LogStats()
		}
		if err := r.Output.WritePerf(ps, s.Year); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
	return s
}

// Last returns the most recent year stats and whether any year was recorded.
func (r *Recorder) Last() (YearStats, bool) {
	return r.last, r.years > 0
}
