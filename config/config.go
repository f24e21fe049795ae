// Package config provides configuration loading and validation for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Timing     TimingConfig     `yaml:"timing"`
	Population PopulationConfig `yaml:"population"`
	Movement   MovementConfig   `yaml:"movement"`
	Ages       AgesConfig       `yaml:"ages"`
	Heredity   HeredityConfig   `yaml:"heredity"`
	Food       FoodConfig       `yaml:"food"`
	Pressure   PressureConfig   `yaml:"pressure"`
	Curves     CurvesConfig     `yaml:"curves"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings for the windowed driver.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds the surface dimensions in world units.
type WorldConfig struct {
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	Padding  float64 `yaml:"padding"`   // Border kept free on every side
	SeedSize float64 `yaml:"seed_size"` // Agent footprint, subtracted from the far bound
	CellSize float64 `yaml:"cell_size"` // Spatial grid cell edge
}

// TimingConfig holds the pacing knobs.
// TicksPerYear * Speed is the pacing constant of a game; both must divide ActionInterval.
type TimingConfig struct {
	TicksPerYear   int `yaml:"ticks_per_year"`
	Speed          int `yaml:"speed"`           // World units moved per tick
	ActionInterval int `yaml:"action_interval"` // Decision cadence in speed-1 ticks
}

// PopulationConfig holds population sizing parameters.
type PopulationConfig struct {
	Initial       int `yaml:"initial"`
	InitialMinAge int `yaml:"initial_min_age"`
	InitialMaxAge int `yaml:"initial_max_age"`
	Limit         int `yaml:"limit"`      // Overpopulation pressure starts above this
	MaxRender     int `yaml:"max_render"` // Rendering only on year boundaries above this
}

// MovementConfig holds wander behavior parameters.
type MovementConfig struct {
	WanderRadius float64 `yaml:"wander_radius"`
	MinRuns      int     `yaml:"min_runs"` // Bursts per active period
	MaxRuns      int     `yaml:"max_runs"`
	MinRestYears int     `yaml:"min_rest_years"`
	MaxRestYears int     `yaml:"max_rest_years"`
	FollowOffset float64 `yaml:"follow_offset"` // Distance kept from the followed partner/mother
}

// AgesConfig holds age thresholds.
type AgesConfig struct {
	MaxChildAge    int `yaml:"max_child_age"` // Juvenile below this age
	MinMarriageAge int `yaml:"min_marriage_age"`
	MinBirthAge    int `yaml:"min_birth_age"`
}

// HeredityConfig holds the inherited aptitude parameters.
type HeredityConfig struct {
	InitialMin int `yaml:"initial_min"`
	InitialMax int `yaml:"initial_max"`
	Increment  int `yaml:"increment"` // Max random bonus added to the parents' average
}

// FoodConfig holds the food economy parameters.
type FoodConfig struct {
	InitialBalance  float64 `yaml:"initial_balance"`
	InitialReserve  float64 `yaml:"initial_reserve"`
	PerAdult        float64 `yaml:"per_adult"` // Produced per adult per year
	PerChild        float64 `yaml:"per_child"` // Consumed per child per year
	DecayEveryYears int     `yaml:"decay_every_years"`
	DecayFraction   float64 `yaml:"decay_fraction"`
}

// PressureConfig holds the death-modifier pressure parameters.
type PressureConfig struct {
	FamineThreshold    float64 `yaml:"famine_threshold"`
	FamineStep         float64 `yaml:"famine_step"` // Food units per increment below threshold
	FamineIncr         float64 `yaml:"famine_incr"`
	OverpopulationStep int     `yaml:"overpopulation_step"` // Agents per increment above the limit
	OverpopulationIncr float64 `yaml:"overpopulation_incr"`
}

// CurvePoint is one breakpoint of an age-chance curve.
type CurvePoint struct {
	Age    float64 `yaml:"age"`
	Chance float64 `yaml:"chance"`
}

// MaleCurves holds the male chance curves.
type MaleCurves struct {
	Death    []CurvePoint `yaml:"death"`
	Marriage []CurvePoint `yaml:"marriage"`
}

// FemaleCurves holds the female chance curves.
type FemaleCurves struct {
	Death []CurvePoint `yaml:"death"`
	Birth []CurvePoint `yaml:"birth"`
}

// CurvesConfig holds the per-sex age-chance tables.
type CurvesConfig struct {
	Male   MaleCurves   `yaml:"male"`
	Female FemaleCurves `yaml:"female"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow int `yaml:"perf_window"` // Ticks averaged by the perf collector
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ActionTicks int     // Timing.ActionInterval / Timing.Speed
	MinX, MinY  float32 // Lowest valid agent position
	MaxX, MaxY  float32 // Highest valid agent position
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Default returns the embedded default configuration.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for inconsistencies and recomputes derived values.
func (c *Config) Validate() error {
	w, t := c.World, c.Timing

	switch {
	case w.Width <= 0 || w.Height <= 0:
		return fmt.Errorf("%w: world size %dx%d", ErrInvalid, w.Width, w.Height)
	case w.CellSize <= 0:
		return fmt.Errorf("%w: cell_size %v", ErrInvalid, w.CellSize)
	case w.Padding < 0 || w.SeedSize < 0:
		return fmt.Errorf("%w: negative padding or seed_size", ErrInvalid)
	case 2*w.Padding+w.SeedSize >= float64(min(w.Width, w.Height)):
		return fmt.Errorf("%w: padding %v leaves no room on a %dx%d surface", ErrInvalid, w.Padding, w.Width, w.Height)
	case t.TicksPerYear < 2:
		return fmt.Errorf("%w: ticks_per_year %d < 2", ErrInvalid, t.TicksPerYear)
	case t.Speed < 1:
		return fmt.Errorf("%w: speed %d < 1", ErrInvalid, t.Speed)
	case t.ActionInterval <= 0:
		return fmt.Errorf("%w: action_interval %d", ErrInvalid, t.ActionInterval)
	case t.ActionInterval%t.TicksPerYear != 0:
		return fmt.Errorf("%w: ticks_per_year %d does not divide action_interval %d", ErrInvalid, t.TicksPerYear, t.ActionInterval)
	case t.ActionInterval%t.Speed != 0:
		return fmt.Errorf("%w: speed %d does not divide action_interval %d", ErrInvalid, t.Speed, t.ActionInterval)
	case t.TicksPerYear%(t.ActionInterval/t.Speed) != 0:
		return fmt.Errorf("%w: action ticks %d do not divide ticks_per_year %d", ErrInvalid, t.ActionInterval/t.Speed, t.TicksPerYear)
	case t.ActionInterval/t.Speed < 2:
		return fmt.Errorf("%w: action ticks %d leave no decision tick besides the year end", ErrInvalid, t.ActionInterval/t.Speed)
	}

	m := c.Movement
	if m.MinRuns < 1 || m.MaxRuns < m.MinRuns {
		return fmt.Errorf("%w: runs range [%d, %d]", ErrInvalid, m.MinRuns, m.MaxRuns)
	}
	if m.MinRestYears < 0 || m.MaxRestYears < m.MinRestYears {
		return fmt.Errorf("%w: rest years range [%d, %d]", ErrInvalid, m.MinRestYears, m.MaxRestYears)
	}
	if c.Population.InitialMaxAge < c.Population.InitialMinAge || c.Population.InitialMinAge < 0 {
		return fmt.Errorf("%w: initial age range [%d, %d]", ErrInvalid, c.Population.InitialMinAge, c.Population.InitialMaxAge)
	}
	if c.Heredity.InitialMax < c.Heredity.InitialMin || c.Heredity.Increment < 0 {
		return fmt.Errorf("%w: heredity ranges", ErrInvalid)
	}
	if c.Pressure.FamineStep <= 0 || c.Pressure.OverpopulationStep <= 0 {
		return fmt.Errorf("%w: pressure steps must be positive", ErrInvalid)
	}

	curves := map[string][]CurvePoint{
		"male.death":    c.Curves.Male.Death,
		"male.marriage": c.Curves.Male.Marriage,
		"female.death":  c.Curves.Female.Death,
		"female.birth":  c.Curves.Female.Birth,
	}
	for name, pts := range curves {
		for i := 1; i < len(pts); i++ {
			if pts[i].Age < pts[i-1].Age {
				return fmt.Errorf("%w: curve %s breakpoints not sorted at %d", ErrInvalid, name, i)
			}
		}
	}

	c.computeDerived()
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	w := c.World
	c.Derived.ActionTicks = c.Timing.ActionInterval / c.Timing.Speed
	c.Derived.MinX = float32(w.Padding)
	c.Derived.MinY = float32(w.Padding)
	c.Derived.MaxX = float32(float64(w.Width) - w.Padding - w.SeedSize)
	c.Derived.MaxY = float32(float64(w.Height) - w.Padding - w.SeedSize)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
