// Package ui provides the viewer overlays drawn with raylib and raygui.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/seeds/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title         string
	Year          int
	Live          int
	Stats         telemetry.YearStats // Last completed year
	HasStats      bool
	TicksPerFrame int
	FPS           int32
	Paused        bool
	Extinct       bool
}

// HUD renders the main heads-up display.
type HUD struct {
	x, y int32
}

// NewHUD creates a HUD anchored at the top-left screen corner.
func NewHUD() *HUD {
	return &HUD{x: 10, y: 10}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	x, y := h.x, h.y

	rl.DrawText(data.Title, x, y, 20, rl.White)
	y += 25

	rl.DrawText(fmt.Sprintf("Year: %d | Seeds: %d", data.Year, data.Live), x, y, 16, rl.LightGray)
	y += 20

	if data.HasStats {
		s := data.Stats
		rl.DrawText(fmt.Sprintf("Men %d  Women %d  Boys %d  Girls %d  Paired %d",
			s.Men, s.Women, s.Boys, s.Girls, s.Paired), x, y, 14, rl.LightGray)
		y += 18
		rl.DrawText(fmt.Sprintf("Births %d  Deaths %d  Marriages %d  Life exp. %.1f",
			s.Births, s.Deaths, s.Marriages, s.LifeExpectancy), x, y, 14, rl.LightGray)
		y += 18

		foodColor := rl.LightGray
		if s.FoodBalance < 0 {
			foodColor = rl.Orange
		}
		rl.DrawText(fmt.Sprintf("Food %.0f (reserve %.0f, %+.0f/yr)", s.FoodBalance, s.FoodReserve, s.FoodDelta),
			x, y, 14, foodColor)
		y += 18
		rl.DrawText(fmt.Sprintf("Death modifier %+.2f", s.DeathModifier), x, y, 14, rl.LightGray)
		y += 18
	}

	rl.DrawText(fmt.Sprintf("Speed: %dx | FPS: %d", data.TicksPerFrame, data.FPS), x, y, 14, rl.Gray)
	y += 18

	switch {
	case data.Extinct:
		rl.DrawText("EXTINCT", x, y, 16, rl.Red)
	case data.Paused:
		rl.DrawText("PAUSED", x, y, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}
