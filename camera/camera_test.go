package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNewFitsWorld(t *testing.T) {
	cam := New(1280, 720, 1000, 760)

	if cam.X != 500 || cam.Y != 380 {
		t.Errorf("expected camera at (500, 380), got (%f, %f)", cam.X, cam.Y)
	}
	// Height is the tighter axis: 720/760
	if !near(cam.Zoom, 720.0/760.0) {
		t.Errorf("expected fit zoom %f, got %f", 720.0/760.0, cam.Zoom)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(1280, 720, 1000, 760)

	sx, sy := cam.WorldToScreen(cam.X, cam.Y)
	if !near(sx, 640) || !near(sy, 360) {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, 1000, 760)
	cam.SetZoom(2)
	cam.Pan(-200, 100)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},
		{100, 100},
		{1200, 600},
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)", tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestPanStaysOverWorld(t *testing.T) {
	cam := New(800, 600, 1000, 760)
	cam.SetZoom(2)

	cam.Pan(-10000, -10000)
	minX, minY, _, _ := cam.VisibleWorldBounds()
	if !near(minX, 0) || !near(minY, 0) {
		t.Errorf("expected view pinned to the top-left corner, got (%f, %f)", minX, minY)
	}

	cam.Pan(10000, 10000)
	_, _, maxX, maxY := cam.VisibleWorldBounds()
	if !near(maxX, 1000) || !near(maxY, 760) {
		t.Errorf("expected view pinned to the bottom-right corner, got (%f, %f)", maxX, maxY)
	}
}

func TestZoomClamped(t *testing.T) {
	cam := New(800, 600, 1000, 760)

	cam.ZoomBy(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("expected max zoom %f, got %f", cam.MaxZoom, cam.Zoom)
	}
	cam.ZoomBy(0.0001)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected min zoom %f, got %f", cam.MinZoom, cam.Zoom)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(800, 600, 1000, 760)
	cam.SetZoom(4)
	cam.X, cam.Y = 500, 380

	if !cam.IsVisible(500, 380, 1) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(10, 10, 1) {
		t.Error("far corner should not be visible at 4x zoom")
	}
}
