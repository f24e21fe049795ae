package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/pthm-cable/seeds/config"
	"github.com/pthm-cable/seeds/game"
	"github.com/pthm-cable/seeds/telemetry"
)

// options holds the command line settings of a run.
type options struct {
	configPath     string
	headless       bool
	logStats       bool
	outputDir      string
	archivePath    string
	seed           int64
	maxYears       int
	maxTicks       int
	stepsPerUpdate int
}

func main() {
	var opts options

	// CLI flags
	flag.StringVar(&opts.configPath, "config", "", "Path to config.yaml (empty = use defaults)")
	flag.BoolVar(&opts.headless, "headless", false, "Run without graphics")
	flag.BoolVar(&opts.logStats, "log-stats", false, "Output yearly stats via slog")
	flag.StringVar(&opts.outputDir, "output-dir", "", "Output directory for CSV logs and config snapshot")
	flag.StringVar(&opts.archivePath, "archive", "", "SQLite file collecting yearly census rows (empty = disabled)")
	flag.Int64Var(&opts.seed, "seed", 0, "RNG seed (0 = time-based)")
	flag.IntVar(&opts.maxYears, "max-years", 0, "Stop after N years (0 = until extinction)")
	flag.IntVar(&opts.maxTicks, "max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	flag.IntVar(&opts.stepsPerUpdate, "steps-per-update", 1, "Simulation ticks per frame in windowed mode")

	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(opts); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

// run sets up the sinks and drives one simulation. Sinks are closed on every return path.
func run(opts options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	rngSeed := opts.seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	runID := uuid.New()

	out, err := telemetry.NewOutputManager(opts.outputDir)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := out.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	var archive *telemetry.Archive
	if opts.archivePath != "" {
		archive, err = telemetry.OpenArchive(opts.archivePath, runID, rngSeed)
		if err != nil {
			return fmt.Errorf("opening archive %s: %w", opts.archivePath, err)
		}
		defer archive.Close()
	}

	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)
	recorder := &telemetry.Recorder{
		Output:   out,
		Archive:  archive,
		Perf:     perf,
		LogStats: opts.logStats,
	}

	limits := runLimits{maxYears: opts.maxYears, maxTicks: opts.maxTicks}

	if !opts.headless {
		return runViewer(cfg, viewerOptions{
			seed:           rngSeed,
			runID:          runID,
			perf:           perf,
			recorder:       recorder,
			limits:         limits,
			stepsPerUpdate: max(opts.stepsPerUpdate, 1),
		})
	}

	g, err := game.New(cfg, game.Options{Seed: rngSeed, Perf: perf})
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	recorder.Attach(g.Bus())

	slog.Info("starting headless simulation",
		"run_id", runID.String(),
		"seed", rngSeed,
		"population", g.Live(),
		"max_years", opts.maxYears,
		"max_ticks", opts.maxTicks,
	)

	start := time.Now()
	for g.Tick() {
		if limits.reached(g) {
			break
		}
	}
	slog.Info("simulation finished",
		"run_id", runID.String(),
		"year", g.Year(),
		"tick", g.Ticks(),
		"population", g.Live(),
		"elapsed", time.Since(start).String(),
	)
	return nil
}

// runLimits stops a run after a number of years or ticks.
type runLimits struct {
	maxYears int
	maxTicks int
}

func (l runLimits) reached(g *game.Game) bool {
	if l.maxYears > 0 && g.Year() >= l.maxYears {
		slog.Info("max years reached", "year", g.Year())
		return true
	}
	if l.maxTicks > 0 && g.Ticks() >= int64(l.maxTicks) {
		slog.Info("max ticks reached", "tick", g.Ticks())
		return true
	}
	return false
}
