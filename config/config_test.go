package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultLoads(t *testing.T) {
	cfg := Default()

	if cfg.Derived.ActionTicks != cfg.Timing.ActionInterval/cfg.Timing.Speed {
		t.Errorf("action ticks = %d", cfg.Derived.ActionTicks)
	}
	if cfg.Derived.MinX != float32(cfg.World.Padding) {
		t.Errorf("min x = %v", cfg.Derived.MinX)
	}
	wantMaxX := float32(float64(cfg.World.Width) - cfg.World.Padding - cfg.World.SeedSize)
	if cfg.Derived.MaxX != wantMaxX {
		t.Errorf("max x = %v, want %v", cfg.Derived.MaxX, wantMaxX)
	}
	if len(cfg.Curves.Male.Death) == 0 || len(cfg.Curves.Female.Birth) == 0 {
		t.Error("default curves missing")
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"speed does not divide interval", func(c *Config) { c.Timing.Speed = 7 }},
		{"ticks per year does not divide interval", func(c *Config) { c.Timing.TicksPerYear = 50 }},
		{"action ticks do not divide year", func(c *Config) {
			c.Timing.TicksPerYear = 60
			c.Timing.ActionInterval = 240
			c.Timing.Speed = 3
		}},
		{"single tick year", func(c *Config) { c.Timing.TicksPerYear = 1 }},
		{"zero speed", func(c *Config) { c.Timing.Speed = 0 }},
		{"single action tick", func(c *Config) { c.Timing.Speed = 60 }},
		{"padding fills surface", func(c *Config) { c.World.Padding = 500 }},
		{"zero cell size", func(c *Config) { c.World.CellSize = 0 }},
		{"runs reversed", func(c *Config) { c.Movement.MinRuns, c.Movement.MaxRuns = 5, 2 }},
		{"unsorted curve", func(c *Config) {
			c.Curves.Female.Birth = []CurvePoint{{Age: 30, Chance: 0.1}, {Age: 20, Chance: 0.2}}
		}},
		{"zero famine step", func(c *Config) { c.Pressure.FamineStep = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoadOverlaysUserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seeds.yaml")
	data := []byte("population:\n  initial: 42\ntiming:\n  speed: 4\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Population.Initial != 42 {
		t.Errorf("initial = %d, want 42", cfg.Population.Initial)
	}
	if cfg.Population.Limit != Default().Population.Limit {
		t.Error("fields missing from the file should keep their defaults")
	}
	if cfg.Derived.ActionTicks != cfg.Timing.ActionInterval/4 {
		t.Errorf("derived values not recomputed: %d", cfg.Derived.ActionTicks)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("timing:\n  speed: 7\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalid) {
		t.Errorf("Load() = %v, want ErrInvalid", err)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := Default()
	cfg.Population.Initial = 7

	if err := cfg.WriteYAML(path); err != nil {
		t.Fatal(err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if back.Population.Initial != 7 {
		t.Errorf("initial = %d, want 7", back.Population.Initial)
	}
}
