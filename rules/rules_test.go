package rules

import (
	"math"
	"testing"

	"github.com/pthm-cable/seeds/components"
	"github.com/pthm-cable/seeds/config"
)

func newTestRules(t *testing.T) *Rules {
	t.Helper()
	cfg := config.Default()
	cfg.Pressure = config.PressureConfig{
		FamineThreshold:    -100,
		FamineStep:         10,
		FamineIncr:         0.05,
		OverpopulationStep: 50,
		OverpopulationIncr: 0.02,
	}
	cfg.Population.Limit = 1000
	return New(cfg)
}

func TestFaminePressure(t *testing.T) {
	r := newTestRules(t)

	tests := []struct {
		name    string
		balance float64
		want    float64
	}{
		{"surplus", 50, 0},
		{"exactly at threshold", -100, 0},
		{"less than one step below", -109, 0},
		{"one step below", -110, 0.05},
		{"three steps below", -135, 0.15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.FaminePressure(tt.balance); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("FaminePressure(%v) = %v, want %v", tt.balance, got, tt.want)
			}
		})
	}
}

func TestOverpopulationPressure(t *testing.T) {
	r := newTestRules(t)

	tests := []struct {
		total int
		want  float64
	}{
		{500, 0},
		{1000, 0},
		{1049, 0},
		{1050, 0.02},
		{1220, 0.08},
	}
	for _, tt := range tests {
		if got := r.OverpopulationPressure(tt.total); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("OverpopulationPressure(%d) = %v, want %v", tt.total, got, tt.want)
		}
	}
}

func census(men, women, boys, girls int) Census {
	return Census{Men: men, Women: women, Boys: boys, Girls: girls}
}

func TestUpdateFoodLedger(t *testing.T) {
	cfg := config.Default()
	cfg.Food = config.FoodConfig{
		InitialBalance: 0,
		InitialReserve: 30,
		PerAdult:       1,
		PerChild:       2,
	}
	r := New(cfg)

	// 10 adults produce 10, 30 children eat 60: deficit 50, reserve covers 30
	r.Update(census(5, 5, 15, 15))
	if r.Ledger.Reserve != 0 || r.Ledger.Balance != -20 || r.Ledger.Delta != -20 {
		t.Fatalf("after deficit: %+v", r.Ledger)
	}

	// Surplus goes to the balance
	r.Update(census(20, 20, 0, 0))
	if r.Ledger.Balance != 20 || r.Ledger.Delta != 40 {
		t.Errorf("after surplus: %+v", r.Ledger)
	}
	if r.Year != 2 {
		t.Errorf("year = %d, want 2", r.Year)
	}
}

func TestUpdateReserveDecay(t *testing.T) {
	cfg := config.Default()
	cfg.Food = config.FoodConfig{InitialReserve: 100, DecayEveryYears: 2, DecayFraction: 0.5}
	r := New(cfg)

	r.Update(Census{})
	if r.Ledger.Reserve != 100 {
		t.Errorf("year 1 reserve = %v, want 100", r.Ledger.Reserve)
	}
	r.Update(Census{})
	if r.Ledger.Reserve != 50 {
		t.Errorf("year 2 reserve = %v, want 50", r.Ledger.Reserve)
	}
}

func TestUpdateDeathModifierSumsPressures(t *testing.T) {
	cfg := config.Default()
	cfg.Food = config.FoodConfig{InitialBalance: -120}
	cfg.Pressure = config.PressureConfig{
		FamineThreshold:    -100,
		FamineStep:         10,
		FamineIncr:         0.05,
		OverpopulationStep: 10,
		OverpopulationIncr: 0.01,
	}
	cfg.Population.Limit = 10
	r := New(cfg)

	// Food production is off, so the balance stays at -120
	c := Census{}
	for i := 0; i < 30; i++ {
		c.Add(components.Snapshot{Sex: components.Male, Age: 70}, 14)
	}
	r.Update(c)

	want := 0.10 + 0.02
	if math.Abs(r.Modifiers.Death-want) > 1e-9 {
		t.Errorf("death modifier = %v, want %v", r.Modifiers.Death, want)
	}
}

func TestPolicyHooks(t *testing.T) {
	r := newTestRules(t)

	r.SetBirthModifier(-0.5)
	r.SetMarriageModifier(0.25)
	r.SetProductivity(1)
	r.Deposit(40)
	r.Deposit(-10)

	if r.Modifiers.Birth != -0.5 || r.Modifiers.Marriage != 0.25 {
		t.Errorf("modifiers = %+v", r.Modifiers)
	}
	if r.Ledger.Reserve != config.Default().Food.InitialReserve+40 {
		t.Errorf("reserve = %v", r.Ledger.Reserve)
	}

	r.SetBirthModifier(math.NaN())
	if r.Modifiers.Birth != -0.5 {
		t.Error("NaN modifier should be ignored")
	}
}

func TestCensusAdd(t *testing.T) {
	var c Census
	c.Add(components.Snapshot{Sex: components.Male, Age: 30, PartnerID: 2}, 14)
	c.Add(components.Snapshot{Sex: components.Female, Age: 28, PartnerID: 1}, 14)
	c.Add(components.Snapshot{Sex: components.Male, Age: 3}, 14)
	c.Add(components.Snapshot{Sex: components.Female, Age: 13}, 14)
	c.Add(components.Snapshot{Sex: components.Female, Age: 14}, 14)

	if c.Men != 1 || c.Women != 2 || c.Boys != 1 || c.Girls != 1 {
		t.Errorf("census = %+v", c)
	}
	if c.Paired != 2 || c.Total() != 5 || c.Adults() != 3 || c.Children() != 2 {
		t.Errorf("totals wrong: %+v", c)
	}
	if c.Males() != 2 || c.Females() != 3 {
		t.Errorf("males %d females %d", c.Males(), c.Females())
	}
	if len(c.Ages) != 5 {
		t.Errorf("ages = %v", c.Ages)
	}
}
