package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/seeds/rules"
)

const (
	panelWidth  = 260
	sliderWidth = 170
	rowHeight   = 38
)

// DepositAmount is the food added to the reserve by the deposit button.
const DepositAmount = 200

// PolicyPanel exposes the externally settable feedback knobs.
type PolicyPanel struct {
	x, y float32
}

// NewPolicyPanel creates a panel at the given screen position.
func NewPolicyPanel(x, y float32) *PolicyPanel {
	return &PolicyPanel{x: x, y: y}
}

// SetPosition moves the panel, e.g. after a window resize.
func (p *PolicyPanel) SetPosition(x, y float32) {
	p.x, p.y = x, y
}

// Draw renders the panel and writes changed values to r.
// Returns true when the pause button was pressed.
func (p *PolicyPanel) Draw(r *rules.Rules) bool {
	x, y := p.x, p.y

	rl.DrawRectangle(int32(x-10), int32(y-10), panelWidth, 5*rowHeight+20, rl.Fade(rl.Black, 0.6))
	rl.DrawText("Population policy", int32(x), int32(y), 16, rl.White)
	y += 24

	current := float32(r.Modifiers.Birth)
	applySlider(current, p.slider(&y, "Birth modifier", current, -1, 1), r.SetBirthModifier)

	current = float32(r.Modifiers.Marriage)
	applySlider(current, p.slider(&y, "Marriage modifier", current, -1, 1), r.SetMarriageModifier)

	current = float32(r.Productivity)
	applySlider(current, p.slider(&y, "Productivity", current, 0, 2), r.SetProductivity)

	if gui.Button(rl.NewRectangle(x, y, 115, 24), fmt.Sprintf("Deposit %d food", DepositAmount)) {
		r.Deposit(DepositAmount)
	}
	return gui.Button(rl.NewRectangle(x+125, y, 115, 24), "Pause / resume")
}

func (p *PolicyPanel) slider(y *float32, label string, value, lo, hi float32) float32 {
	rl.DrawText(label, int32(p.x), int32(*y), 12, rl.LightGray)
	*y += 14
	v := gui.SliderBar(
		rl.NewRectangle(p.x+30, *y, sliderWidth, 16),
		fmt.Sprintf("%.0f", lo), fmt.Sprintf("%.0f", hi),
		value, lo, hi,
	)
	rl.DrawText(fmt.Sprintf("%+.2f", v), int32(p.x+sliderWidth+60), int32(*y+2), 12, rl.White)
	*y += rowHeight - 14
	return v
}

// applySlider writes a slider value back only when the user moved it.
func applySlider(shown, slid float32, set func(float64)) {
	if slid != shown {
		set(float64(slid))
	}
}
