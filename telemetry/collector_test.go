package telemetry

import (
	"testing"

	"github.com/pthm-cable/seeds/components"
)

func TestCollectorFlush(t *testing.T) {
	c := NewCollector()
	c.RecordBirth()
	c.RecordBirth()
	c.RecordMarriage()
	c.RecordDeath(components.Male, 61)
	c.RecordDeath(components.Female, 4)

	v := c.Flush()
	if v.Births != 2 || v.Marriages != 1 || v.Deaths != 2 || v.MaleDeaths != 1 {
		t.Errorf("unexpected vitals %+v", v)
	}
	if len(v.DeathAges) != 2 || v.DeathAges[0] != 61 || v.DeathAges[1] != 4 {
		t.Errorf("death ages = %v", v.DeathAges)
	}

	if next := c.Flush(); next.Births != 0 || next.Deaths != 0 || next.DeathAges != nil {
		t.Errorf("collector not reset: %+v", next)
	}
}
