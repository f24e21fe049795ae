package systems

import (
	"math"

	"github.com/pthm-cable/seeds/components"
	"github.com/pthm-cable/seeds/config"
)

// ChanceKind identifies an age-dependent event.
type ChanceKind uint8

const (
	ChanceDeath ChanceKind = iota
	ChanceMarriage
	ChanceBirth
)

// String returns the kind name.
func (k ChanceKind) String() string {
	switch k {
	case ChanceDeath:
		return "death"
	case ChanceMarriage:
		return "marriage"
	case ChanceBirth:
		return "birth"
	}
	return "unknown"
}

// Curve is a piecewise-linear age-to-chance function.
// Breakpoints apply from their age inclusive; below the first one the chance is 0
// and past the last one the final segment's slope keeps extrapolating.
type Curve []config.CurvePoint

// At evaluates the curve at the given age.
// A zero-width segment yields NaN; callers keep their previous value in that case.
func (c Curve) At(age float64) float64 {
	n := len(c)
	if n == 0 || age < c[0].Age {
		return 0
	}
	if n == 1 {
		return c[0].Chance
	}

	// Segment containing age, or the last one for extrapolation
	i := 0
	for i < n-2 && age >= c[i+1].Age {
		i++
	}

	a, b := c[i], c[i+1]
	if b.Age == a.Age {
		return math.NaN()
	}
	return a.Chance + (age-a.Age)*(b.Chance-a.Chance)/(b.Age-a.Age)
}

// Adjust applies a demographic modifier to a raw chance.
func Adjust(raw, modifier float64) float64 {
	return raw + raw*modifier
}

// ChanceTables holds the curves of both sexes indexed by kind.
// A sex without a curve for a kind always evaluates to 0.
type ChanceTables [2][3]Curve

// NewChanceTables builds the tables from the configured curves.
func NewChanceTables(cfg config.CurvesConfig) ChanceTables {
	var t ChanceTables
	t[components.Male][ChanceDeath] = Curve(cfg.Male.Death)
	t[components.Male][ChanceMarriage] = Curve(cfg.Male.Marriage)
	t[components.Female][ChanceDeath] = Curve(cfg.Female.Death)
	t[components.Female][ChanceBirth] = Curve(cfg.Female.Birth)
	return t
}

// At evaluates the curve for sex and kind at age.
func (t *ChanceTables) At(sex components.Sex, kind ChanceKind, age int) float64 {
	return t[sex][kind].At(float64(age))
}

// Valid reports whether a chance can be used for a roll.
func Valid(chance float64) bool {
	return !math.IsNaN(chance) && !math.IsInf(chance, 0)
}
