package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/seeds/components"
)

func TestStepToward(t *testing.T) {
	tests := []struct {
		name      string
		from      components.Position
		tx, ty    float32
		speed     float32
		want      components.Position
		wantThere bool
	}{
		{"both axes", components.Position{X: 0, Y: 0}, 10, 10, 2, components.Position{X: 2, Y: 2}, false},
		{"smaller gap closes first", components.Position{X: 0, Y: 0}, 10, 1, 2, components.Position{X: 2, Y: 1}, false},
		{"negative direction", components.Position{X: 5, Y: 5}, 0, 4, 2, components.Position{X: 3, Y: 4}, false},
		{"arrives", components.Position{X: 9, Y: 1}, 10, 1, 2, components.Position{X: 10, Y: 1}, true},
		{"already there", components.Position{X: 3, Y: 3}, 3, 3, 2, components.Position{X: 3, Y: 3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := tt.from
			there := StepToward(&pos, tt.tx, tt.ty, tt.speed)
			if pos != tt.want || there != tt.wantThere {
				t.Errorf("got %+v %v, want %+v %v", pos, there, tt.want, tt.wantThere)
			}
		})
	}
}

func TestBoundsRandomTargetStaysInside(t *testing.T) {
	b := Bounds{MinX: 10, MinY: 10, MaxX: 86, MaxY: 46}
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 1000; i++ {
		x, y := b.RandomPoint(rng)
		if !b.Contains(x, y) {
			t.Fatalf("random point (%v, %v) outside", x, y)
		}
		tx, ty := b.RandomTarget(rng, x, y, 60)
		if !b.Contains(tx, ty) {
			t.Fatalf("target (%v, %v) outside", tx, ty)
		}
	}
}

func TestBoundsClamp(t *testing.T) {
	b := Bounds{MinX: 10, MinY: 10, MaxX: 86, MaxY: 46}
	if x, y := b.Clamp(-5, 100); x != 10 || y != 46 {
		t.Errorf("Clamp = (%v, %v)", x, y)
	}
	if x, y := b.Clamp(20, 20); x != 20 || y != 20 {
		t.Errorf("Clamp moved an inside point to (%v, %v)", x, y)
	}
}
