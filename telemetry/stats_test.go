package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/seeds/events"
	"github.com/pthm-cable/seeds/rules"
)

func TestDistribution(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		wantMean float64
		wantStd  float64
	}{
		{"empty", nil, 0, 0},
		{"single", []float64{7}, 7, 0},
		{"constant", []float64{3, 3, 3, 3}, 3, 0},
		{"spread", []float64{2, 4, 4, 4, 5, 5, 7, 9}, 5, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, std, p10, p50, p90 := Distribution(tt.values)
			if math.Abs(mean-tt.wantMean) > 1e-9 {
				t.Errorf("mean = %v, want %v", mean, tt.wantMean)
			}
			if math.Abs(std-tt.wantStd) > 1e-9 {
				t.Errorf("std = %v, want %v", std, tt.wantStd)
			}
			if p10 > p50 || p50 > p90 {
				t.Errorf("percentiles out of order: %v %v %v", p10, p50, p90)
			}
		})
	}
}

func TestDistributionDoesNotSortInput(t *testing.T) {
	values := []float64{9, 1, 5}
	Distribution(values)
	if values[0] != 9 || values[1] != 1 || values[2] != 5 {
		t.Errorf("input was modified: %v", values)
	}
}

func TestNewYearStats(t *testing.T) {
	rep := events.Report{
		Year: 3,
		Tick: 180,
		Census: rules.Census{
			Men: 2, Women: 1, Boys: 1, Girls: 0, Paired: 2,
			Ages:      []float64{20, 30, 40, 10},
			Aptitudes: []float64{100, 110, 90, 100},
		},
		Ledger:     rules.Ledger{Balance: -12, Reserve: 5, Delta: -3},
		Modifiers:  rules.Modifiers{Death: 0.1, Birth: -0.2},
		Births:     1,
		Deaths:     2,
		Marriages:  1,
		MaleDeaths: 1,
		DeathAges:  []float64{60, 70},
	}

	s := NewYearStats(rep)

	if s.Population != 4 {
		t.Errorf("population = %d, want 4", s.Population)
	}
	if s.AgeMean != 25 {
		t.Errorf("age mean = %v, want 25", s.AgeMean)
	}
	if s.Deaths != 2 || s.MaleDeaths != 1 {
		t.Errorf("deaths = %d (%d male), want 2 (1 male)", s.Deaths, s.MaleDeaths)
	}
	if s.LifeExpectancy != 65 {
		t.Errorf("life expectancy = %v, want 65", s.LifeExpectancy)
	}
	if s.AptitudeMean != 100 {
		t.Errorf("aptitude mean = %v, want 100", s.AptitudeMean)
	}
	if s.FoodBalance != -12 || s.DeathModifier != 0.1 || s.BirthModifier != -0.2 {
		t.Errorf("feedback state not copied: %+v", s)
	}
}

func TestNewYearStatsEmptyYear(t *testing.T) {
	s := NewYearStats(events.Report{Year: 1})
	if s.Population != 0 || s.LifeExpectancy != 0 || s.AgeMean != 0 {
		t.Errorf("expected zero stats, got %+v", s)
	}
}
