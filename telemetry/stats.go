package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/seeds/events"
)

// YearStats holds the aggregated statistics of one elapsed year.
type YearStats struct {
	Year int   `csv:"year"`
	Tick int64 `csv:"tick"`

	// Population counts at year end
	Population int `csv:"population"`
	Men        int `csv:"men"`
	Women      int `csv:"women"`
	Boys       int `csv:"boys"`
	Girls      int `csv:"girls"`
	Paired     int `csv:"paired"`

	// Vital events during the year
	Births     int `csv:"births"`
	Deaths     int `csv:"deaths"`
	MaleDeaths int `csv:"male_deaths"`
	Marriages  int `csv:"marriages"`

	// Age distribution
	AgeMean float64 `csv:"age_mean"`
	AgeStd  float64 `csv:"age_std"`
	AgeP10  float64 `csv:"age_p10"`
	AgeP50  float64 `csv:"age_p50"`
	AgeP90  float64 `csv:"age_p90"`

	LifeExpectancy float64 `csv:"life_expectancy"` // Mean age at death this year
	AptitudeMean   float64 `csv:"aptitude_mean"`

	// Feedback state after the update
	FoodBalance      float64 `csv:"food_balance"`
	FoodReserve      float64 `csv:"food_reserve"`
	FoodDelta        float64 `csv:"food_delta"`
	DeathModifier    float64 `csv:"death_modifier"`
	MarriageModifier float64 `csv:"marriage_modifier"`
	BirthModifier    float64 `csv:"birth_modifier"`
}

// NewYearStats computes the statistics of a year report.
func NewYearStats(r events.Report) YearStats {
	c := r.Census
	s := YearStats{
		Year:       r.Year,
		Tick:       r.Tick,
		Population: c.Total(),
		Men:        c.Men,
		Women:      c.Women,
		Boys:       c.Boys,
		Girls:      c.Girls,
		Paired:     c.Paired,
		Births:     r.Births,
		Deaths:     r.Deaths,
		Marriages:  r.Marriages,
		MaleDeaths: r.MaleDeaths,

		FoodBalance:      r.Ledger.Balance,
		FoodReserve:      r.Ledger.Reserve,
		FoodDelta:        r.Ledger.Delta,
		DeathModifier:    r.Modifiers.Death,
		MarriageModifier: r.Modifiers.Marriage,
		BirthModifier:    r.Modifiers.Birth,
	}

	s.AgeMean, s.AgeStd, s.AgeP10, s.AgeP50, s.AgeP90 = Distribution(c.Ages)
	if len(r.DeathAges) > 0 {
		s.LifeExpectancy = stat.Mean(r.DeathAges, nil)
	}
	if len(c.Aptitudes) > 0 {
		s.AptitudeMean = stat.Mean(c.Aptitudes, nil)
	}
	return s
}

// Distribution returns mean, population standard deviation and the 10/50/90th percentiles.
// Returns zeros for an empty sample.
func Distribution(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	mean, std = stat.PopMeanStdDev(values, nil)

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	p10 = stat.Quantile(0.10, stat.LinInterp, sorted, nil)
	p50 = stat.Quantile(0.50, stat.LinInterp, sorted, nil)
	p90 = stat.Quantile(0.90, stat.LinInterp, sorted, nil)

	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s YearStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("year", s.Year),
		slog.Int64("tick", s.Tick),
		slog.Int("population", s.Population),
		slog.Int("men", s.Men),
		slog.Int("women", s.Women),
		slog.Int("boys", s.Boys),
		slog.Int("girls", s.Girls),
		slog.Int("paired", s.Paired),
		slog.Int("births", s.Births),
		slog.Int("deaths", s.Deaths),
		slog.Int("male_deaths", s.MaleDeaths),
		slog.Int("marriages", s.Marriages),
		slog.Float64("age_mean", s.AgeMean),
		slog.Float64("age_p50", s.AgeP50),
		slog.Float64("life_expectancy", s.LifeExpectancy),
		slog.Float64("aptitude_mean", s.AptitudeMean),
		slog.Float64("food_balance", s.FoodBalance),
		slog.Float64("food_reserve", s.FoodReserve),
		slog.Float64("death_modifier", s.DeathModifier),
	)
}

// LogStats logs the year stats using slog.
func (s YearStats) LogStats() {
	slog.Info("year", "stats", s)
}
