// Package telemetry provides yearly population statistics, performance tracking and output sinks.
package telemetry

import "github.com/pthm-cable/seeds/components"

// Vitals holds the vital events counted during one year.
type Vitals struct {
	Births     int
	Deaths     int
	Marriages  int
	MaleDeaths int
	DeathAges  []float64
}

// Collector accumulates vital events until the next year boundary.
type Collector struct {
	births     int
	deaths     int
	marriages  int
	maleDeaths int
	deathAges  []float64
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// RecordBirth records a birth.
func (c *Collector) RecordBirth() {
	c.births++
}

// RecordDeath records a death at the given age.
func (c *Collector) RecordDeath(sex components.Sex, age int) {
	c.deaths++
	if sex == components.Male {
		c.maleDeaths++
	}
	c.deathAges = append(c.deathAges, float64(age))
}

// RecordMarriage records a new pairing.
func (c *Collector) RecordMarriage() {
	c.marriages++
}

// Flush returns the counts for the elapsed year and resets the collector.
func (c *Collector) Flush() Vitals {
	v := Vitals{
		Births:     c.births,
		Deaths:     c.deaths,
		Marriages:  c.marriages,
		MaleDeaths: c.maleDeaths,
		DeathAges:  c.deathAges,
	}

	c.births = 0
	c.deaths = 0
	c.marriages = 0
	c.maleDeaths = 0
	c.deathAges = nil

	return v
}
