package main

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"

	"github.com/pthm-cable/seeds/camera"
	"github.com/pthm-cable/seeds/config"
	"github.com/pthm-cable/seeds/game"
	"github.com/pthm-cable/seeds/renderer"
	"github.com/pthm-cable/seeds/telemetry"
	"github.com/pthm-cable/seeds/ui"
)

const controlsText = "SPACE pause | +/- speed | drag pan | wheel zoom | R reset view"

type viewerOptions struct {
	seed           int64
	runID          uuid.UUID
	perf           *telemetry.PerfCollector
	recorder       *telemetry.Recorder
	limits         runLimits
	stepsPerUpdate int
}

// runViewer drives the simulation once per frame with a raylib window.
func runViewer(cfg *config.Config, opts viewerOptions) error {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Seeds")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	seeds := renderer.NewSeedRenderer(cfg.World.Width, cfg.World.Height,
		float32(cfg.World.Padding), float32(cfg.World.SeedSize), cfg.Ages.MaxChildAge)
	seeds.Init()
	defer seeds.Unload()

	g, err := game.New(cfg, game.Options{Seed: opts.seed, Renderer: seeds, Perf: opts.perf})
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	opts.recorder.Attach(g.Bus())

	slog.Info("starting simulation",
		"run_id", opts.runID.String(),
		"seed", opts.seed,
		"population", g.Live(),
	)

	cam := camera.New(float32(cfg.Screen.Width), float32(cfg.Screen.Height), float32(cfg.World.Width), float32(cfg.World.Height))
	hud := ui.NewHUD()
	policy := ui.NewPolicyPanel(float32(cfg.Screen.Width)-260, 20)

	steps := opts.stepsPerUpdate
	paused := false
	stopped := false

	for !rl.WindowShouldClose() {
		sw, sh := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
		cam.Resize(sw, sh)
		policy.SetPosition(sw-260, 20)

		// Input
		if rl.IsKeyPressed(rl.KeySpace) {
			paused = !paused
		}
		if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
			steps = min(steps*2, 64)
		}
		if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
			steps = max(steps/2, 1)
		}
		if rl.IsKeyPressed(rl.KeyR) {
			cam.Reset()
		}
		if rl.IsMouseButtonDown(rl.MouseButtonRight) {
			d := rl.GetMouseDelta()
			cam.Pan(-d.X, -d.Y)
		}
		if wheel := rl.GetMouseWheelMove(); wheel != 0 {
			cam.ZoomBy(1 + wheel*0.1)
		}

		// Simulation
		if !paused && !stopped {
			for i := 0; i < steps; i++ {
				if !g.Tick() || opts.limits.reached(g) {
					stopped = true
					break
				}
			}
		}
		opts.perf.RecordFrame()

		// Drawing
		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)

		seeds.Draw(cam)

		stats, ok := opts.recorder.Last()
		hud.Draw(ui.HUDData{
			Title:         "Seeds",
			Year:          g.Year(),
			Live:          g.Live(),
			Stats:         stats,
			HasStats:      ok,
			TicksPerFrame: steps,
			FPS:           rl.GetFPS(),
			Paused:        paused,
			Extinct:       !g.Running(),
		})
		hud.DrawControls(int32(sh), controlsText)

		if policy.Draw(g.Rules()) {
			paused = !paused
		}

		rl.EndDrawing()
	}
	return nil
}
