// Package rules couples aggregate population state back into individual chances.
package rules

import (
	"math"

	"github.com/pthm-cable/seeds/config"
)

// Modifiers are additive multipliers applied to raw chance curves.
type Modifiers struct {
	Death    float64
	Marriage float64
	Birth    float64
}

// Ledger is the food economy state.
type Ledger struct {
	Balance float64
	Reserve float64 // Bonus reserve drawn from before the balance goes down
	Delta   float64 // Last applied yearly change of the balance
}

// Rules holds the demographic feedback state. It is updated once per year
// and read by every chance evaluation.
type Rules struct {
	food     config.FoodConfig
	pressure config.PressureConfig
	limit    int

	Year         int
	Ledger       Ledger
	Modifiers    Modifiers
	Productivity float64 // Knowledge hook: scales adult food production by 1+Productivity
	Census       Census  // Census of the last update
}

// New creates the feedback state from config.
func New(cfg *config.Config) *Rules {
	return &Rules{
		food:     cfg.Food,
		pressure: cfg.Pressure,
		limit:    cfg.Population.Limit,
		Ledger: Ledger{
			Balance: cfg.Food.InitialBalance,
			Reserve: cfg.Food.InitialReserve,
		},
	}
}

// Update applies one year of feedback from a fresh census.
func (r *Rules) Update(c Census) {
	r.Year++
	r.Census = c

	delta := float64(c.Adults())*r.food.PerAdult*(1+r.Productivity) - float64(c.Children())*r.food.PerChild
	if !math.IsNaN(delta) {
		r.applyFood(delta)
	}

	if r.food.DecayEveryYears > 0 && r.Year%r.food.DecayEveryYears == 0 {
		r.Ledger.Reserve *= 1 - r.food.DecayFraction
	}

	death := r.FaminePressure(r.Ledger.Balance) + r.OverpopulationPressure(c.Total())
	if !math.IsNaN(death) {
		r.Modifiers.Death = death
	}
}

// applyFood adds a yearly food delta; deficits are covered from the reserve first.
func (r *Rules) applyFood(delta float64) {
	if delta < 0 && r.Ledger.Reserve > 0 {
		covered := min(-delta, r.Ledger.Reserve)
		r.Ledger.Reserve -= covered
		delta += covered
	}
	r.Ledger.Balance += delta
	r.Ledger.Delta = delta
}

// FaminePressure returns the death modifier for a food balance.
// Each full famine step below the threshold adds one famine increment.
func (r *Rules) FaminePressure(balance float64) float64 {
	p := r.pressure
	if balance >= p.FamineThreshold {
		return 0
	}
	return math.Floor((p.FamineThreshold-balance)/p.FamineStep) * p.FamineIncr
}

// OverpopulationPressure returns the death modifier for a live population.
// Each full step above the limit adds one overpopulation increment.
func (r *Rules) OverpopulationPressure(total int) float64 {
	p := r.pressure
	if total <= r.limit {
		return 0
	}
	return float64((total-r.limit)/p.OverpopulationStep) * p.OverpopulationIncr
}

// SetBirthModifier sets the externally controlled childbirth modifier.
func (r *Rules) SetBirthModifier(v float64) {
	if !math.IsNaN(v) {
		r.Modifiers.Birth = v
	}
}

// SetMarriageModifier sets the externally controlled marriage modifier.
func (r *Rules) SetMarriageModifier(v float64) {
	if !math.IsNaN(v) {
		r.Modifiers.Marriage = v
	}
}

// SetProductivity sets the knowledge multiplier on adult food production.
func (r *Rules) SetProductivity(v float64) {
	if !math.IsNaN(v) {
		r.Productivity = v
	}
}

// Deposit adds food to the bonus reserve.
func (r *Rules) Deposit(amount float64) {
	if amount > 0 {
		r.Ledger.Reserve += amount
	}
}
