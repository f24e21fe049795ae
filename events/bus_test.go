package events

import (
	"slices"
	"testing"
)

func TestEmitOrder(t *testing.T) {
	b := NewBus()
	var got []string
	for _, key := range []string{"render", "ui", "tech"} {
		b.On(YearElapsed, key, func(Event) { got = append(got, key) })
	}

	b.Emit(Event{Name: YearElapsed})
	if want := []string{"render", "ui", "tech"}; !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}

	got = nil
	b.Emit(Event{Name: AgentAdded})
	if len(got) != 0 {
		t.Errorf("handlers of another event fired: %v", got)
	}
}

func TestOnReplacesInPlace(t *testing.T) {
	b := NewBus()
	var got []string
	b.On(AgentAdded, "a", func(Event) { got = append(got, "a1") })
	b.On(AgentAdded, "b", func(Event) { got = append(got, "b") })
	b.On(AgentAdded, "a", func(Event) { got = append(got, "a2") })

	b.Emit(Event{Name: AgentAdded})
	if want := []string{"a2", "b"}; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if b.Len(AgentAdded) != 2 {
		t.Errorf("len = %d, want 2", b.Len(AgentAdded))
	}
}

func TestOff(t *testing.T) {
	b := NewBus()
	calls := 0
	b.On(AgentRemoved, "count", func(Event) { calls++ })

	if !b.Off(AgentRemoved, "count") {
		t.Fatal("Off returned false for a registered key")
	}
	if b.Off(AgentRemoved, "count") {
		t.Error("Off returned true for a removed key")
	}
	if b.Has(AgentRemoved, "count") {
		t.Error("Has after Off")
	}

	b.Emit(Event{Name: AgentRemoved})
	if calls != 0 {
		t.Errorf("removed handler fired %d times", calls)
	}
}

func TestOffDuringEmit(t *testing.T) {
	b := NewBus()
	var got []string
	b.On(YearElapsed, "first", func(Event) {
		got = append(got, "first")
		b.Off(YearElapsed, "second")
	})
	b.On(YearElapsed, "second", func(Event) { got = append(got, "second") })

	b.Emit(Event{Name: YearElapsed})
	b.Emit(Event{Name: YearElapsed})

	if want := []string{"first", "second", "first"}; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestReplaceDuringEmit(t *testing.T) {
	b := NewBus()
	var got []string
	b.On(YearElapsed, "first", func(Event) {
		got = append(got, "first")
		b.On(YearElapsed, "second", func(Event) { got = append(got, "replaced") })
	})
	b.On(YearElapsed, "second", func(Event) { got = append(got, "second") })

	b.Emit(Event{Name: YearElapsed})
	b.Emit(Event{Name: YearElapsed})

	if want := []string{"first", "second", "first", "replaced"}; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTimes(t *testing.T) {
	b := NewBus()
	var years []int
	b.Times(YearElapsed, "decree", 3, func(ev Event) { years = append(years, ev.Report.Year) })

	for year := 1; year <= 5; year++ {
		b.Emit(Event{Name: YearElapsed, Report: &Report{Year: year}})
	}

	if want := []int{1, 2, 3}; !slices.Equal(years, want) {
		t.Errorf("fired for years %v, want %v", years, want)
	}
	if b.Has(YearElapsed, "decree") {
		t.Error("countdown handler still registered")
	}
}

func TestTimesNonPositiveIgnored(t *testing.T) {
	b := NewBus()
	b.Times(YearElapsed, "never", 0, func(Event) { t.Error("fired") })
	if b.Has(YearElapsed, "never") {
		t.Error("registered with n = 0")
	}
}
