// Chance curve preview tool - plots the configured age-chance curves with a modifier slider.
//
// Usage: go run ./cmd/curvepreview [-config path]
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/seeds/components"
	"github.com/pthm-cable/seeds/config"
	"github.com/pthm-cable/seeds/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 640
	plotX        = 60
	plotY        = 40
	plotW        = 620
	plotH        = 480
	panelX       = plotX + plotW + 30
)

// series is one plotted curve.
type series struct {
	label string
	sex   components.Sex
	kind  systems.ChanceKind
	color color.RGBA
	shown bool
}

func main() {
	configPath := flag.String("config", "", "Path to config YAML file (uses embedded defaults if empty)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	tables := systems.NewChanceTables(cfg.Curves)

	all := []series{
		{"male death", components.Male, systems.ChanceDeath, rl.SkyBlue, true},
		{"male marriage", components.Male, systems.ChanceMarriage, rl.DarkBlue, true},
		{"female death", components.Female, systems.ChanceDeath, rl.Pink, true},
		{"female birth", components.Female, systems.ChanceBirth, rl.Maroon, true},
	}

	rl.InitWindow(windowWidth, windowHeight, "Chance Curve Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	var maxAge float32 = 90
	var maxChance float32 = 0.5
	var modifier float32

	for !rl.WindowShouldClose() {
		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		drawAxes(maxAge, maxChance)
		for _, s := range all {
			if s.shown {
				plot(&tables, s, float64(modifier), maxAge, maxChance)
			}
		}

		// Control panel
		y := float32(plotY)
		rl.DrawText("Curves", panelX, int32(y), 20, rl.DarkGray)
		y += 30
		for i := range all {
			rl.DrawRectangle(panelX, int32(y+4), 12, 12, all[i].color)
			all[i].shown = gui.CheckBox(rl.Rectangle{X: panelX + 20, Y: y, Width: 20, Height: 20}, all[i].label, all[i].shown)
			y += 28
		}
		y += 10

		rl.DrawText("Modifier (raw + raw * m)", panelX, int32(y), 14, rl.Gray)
		y += 18
		modifier = gui.SliderBar(rl.Rectangle{X: panelX + 30, Y: y, Width: 160, Height: 20}, "-1", "2", modifier, -1, 2)
		rl.DrawText(fmt.Sprintf("%+.2f", modifier), panelX+200, int32(y+2), 16, rl.DarkGray)
		y += 35

		rl.DrawText("Max age", panelX, int32(y), 14, rl.Gray)
		y += 18
		maxAge = gui.SliderBar(rl.Rectangle{X: panelX + 30, Y: y, Width: 160, Height: 20}, "20", "120", maxAge, 20, 120)
		rl.DrawText(fmt.Sprintf("%.0f", maxAge), panelX+200, int32(y+2), 16, rl.DarkGray)
		y += 35

		rl.DrawText("Max chance", panelX, int32(y), 14, rl.Gray)
		y += 18
		maxChance = gui.SliderBar(rl.Rectangle{X: panelX + 30, Y: y, Width: 160, Height: 20}, "0.05", "1", maxChance, 0.05, 1)
		rl.DrawText(fmt.Sprintf("%.2f", maxChance), panelX+200, int32(y+2), 16, rl.DarkGray)
		y += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: y, Width: 120, Height: 30}, "Reset") {
			maxAge, maxChance, modifier = 90, 0.5, 0
		}

		rl.EndDrawing()
	}
}

func toScreen(age, chance float64, maxAge, maxChance float32) (int32, int32) {
	x := plotX + float32(age)/maxAge*plotW
	y := plotY + plotH - float32(chance)/maxChance*plotH
	return int32(x), int32(min(max(y, plotY), plotY+plotH))
}

func drawAxes(maxAge, maxChance float32) {
	rl.DrawRectangleLines(plotX, plotY, plotW, plotH, rl.DarkGray)
	for i := 0; i <= 10; i++ {
		x := plotX + int32(float32(i)*plotW/10)
		rl.DrawLine(x, plotY, x, plotY+plotH, rl.LightGray)
		rl.DrawText(fmt.Sprintf("%.0f", maxAge*float32(i)/10), x-8, plotY+plotH+6, 12, rl.Gray)

		y := plotY + plotH - int32(float32(i)*plotH/10)
		rl.DrawLine(plotX, y, plotX+plotW, y, rl.LightGray)
		rl.DrawText(fmt.Sprintf("%.2f", maxChance*float32(i)/10), plotX-40, y-6, 12, rl.Gray)
	}
	rl.DrawText("age", plotX+plotW/2, plotY+plotH+24, 14, rl.DarkGray)
}

// plot draws one curve sampled per whole year, which is how the simulation evaluates it.
func plot(t *systems.ChanceTables, s series, modifier float64, maxAge, maxChance float32) {
	px, py := int32(-1), int32(-1)
	for age := 0; age <= int(maxAge); age++ {
		c := systems.Adjust(t.At(s.sex, s.kind, age), modifier)
		if !systems.Valid(c) {
			px = -1
			continue
		}
		x, y := toScreen(float64(age), c, maxAge, maxChance)
		if px >= 0 {
			rl.DrawLine(px, py, x, y, s.color)
		}
		px, py = x, y
	}
}
