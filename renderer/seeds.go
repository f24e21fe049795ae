// Package renderer draws the simulation with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/seeds/camera"
	"github.com/pthm-cable/seeds/components"
)

// Palette colors
var (
	surfaceColor = rl.NewColor(24, 28, 24, 255)
	borderColor  = rl.NewColor(60, 70, 60, 255)
	maleColor    = rl.NewColor(90, 160, 230, 255)
	femaleColor  = rl.NewColor(230, 120, 150, 255)
	pairedTint   = rl.NewColor(250, 220, 120, 255)
)

// SeedRenderer draws agents into a world-sized render texture.
// Frames skipped by the simulation keep showing the last drawn texture.
type SeedRenderer struct {
	target      rl.RenderTexture2D
	width       int32
	height      int32
	padding     float32
	seedSize    float32
	maxChildAge int
	initialized bool
	drawn       int
}

// NewSeedRenderer creates a renderer for a width x height surface.
func NewSeedRenderer(width, height int, padding, seedSize float32, maxChildAge int) *SeedRenderer {
	return &SeedRenderer{
		width:       int32(width),
		height:      int32(height),
		padding:     padding,
		seedSize:    seedSize,
		maxChildAge: maxChildAge,
	}
}

// Init allocates the render texture (must be called after the raylib window is created).
func (r *SeedRenderer) Init() {
	if r.initialized {
		return
	}
	r.target = rl.LoadRenderTexture(r.width, r.height)
	r.initialized = true
}

// BeginFrame starts drawing a new frame of the surface.
func (r *SeedRenderer) BeginFrame(year int) {
	if !r.initialized {
		r.Init()
	}
	r.drawn = 0
	rl.BeginTextureMode(r.target)
	rl.ClearBackground(surfaceColor)
	rl.DrawRectangleLines(int32(r.padding), int32(r.padding),
		r.width-2*int32(r.padding), r.height-2*int32(r.padding), borderColor)
}

// DrawSeed draws one agent. Juveniles are smaller; moving agents pulse with their step phase.
func (r *SeedRenderer) DrawSeed(s components.Snapshot, pos components.Position, phase int) {
	color := maleColor
	if s.Sex == components.Female {
		color = femaleColor
	}

	radius := r.seedSize / 2
	if s.Age < r.maxChildAge {
		radius *= 0.6
	}
	if s.Moving && phase%8 < 4 {
		radius *= 1.15
	}

	cx := int32(pos.X + r.seedSize/2)
	cy := int32(pos.Y + r.seedSize/2)
	rl.DrawCircle(cx, cy, radius, color)
	if s.Paired() {
		rl.DrawCircleLines(cx, cy, radius+1, pairedTint)
	}
	r.drawn++
}

// EndFrame finishes the surface frame.
func (r *SeedRenderer) EndFrame() {
	rl.EndTextureMode()
}

// Drawn returns the number of agents in the last frame.
func (r *SeedRenderer) Drawn() int {
	return r.drawn
}

// Draw blits the surface texture to the screen through the camera.
func (r *SeedRenderer) Draw(cam *camera.Camera) {
	if !r.initialized {
		return
	}
	// Render textures are stored upside down
	src := rl.NewRectangle(0, 0, float32(r.width), -float32(r.height))
	x, y := cam.WorldToScreen(0, 0)
	dst := rl.NewRectangle(x, y, float32(r.width)*cam.Zoom, float32(r.height)*cam.Zoom)
	rl.DrawTexturePro(r.target.Texture, src, dst, rl.NewVector2(0, 0), 0, rl.White)
}

// Unload frees resources.
func (r *SeedRenderer) Unload() {
	if r.initialized {
		rl.UnloadRenderTexture(r.target)
		r.initialized = false
	}
}
