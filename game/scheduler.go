package game

// Scheduler spreads agent decision ticks over the year.
// Each agent is assigned to one of ticksPerYear-1 buckets; the last tick of
// the year is left to the year-end pass.
type Scheduler struct {
	buckets     []int
	actionTicks int
}

// NewScheduler creates a scheduler for the given year length and decision cadence.
func NewScheduler(ticksPerYear, actionTicks int) *Scheduler {
	return &Scheduler{
		buckets:     make([]int, ticksPerYear-1),
		actionTicks: actionTicks,
	}
}

// Assign places a new agent in the least occupied bucket, lowest index on ties.
func (s *Scheduler) Assign() int {
	best := 0
	for i, n := range s.buckets {
		if n < s.buckets[best] {
			best = i
		}
	}
	s.buckets[best]++
	return best
}

// Release frees a bucket slot of a removed agent.
func (s *Scheduler) Release(bucket int) {
	if s.buckets[bucket] > 0 {
		s.buckets[bucket]--
	}
}

// Decision returns the counter residue, modulo the action cadence, on which
// agents of a bucket decide. Residue 0 holds the year-end tick and is never used.
func (s *Scheduler) Decision(bucket int) int {
	return 1 + bucket%(s.actionTicks-1)
}

// Phase returns the initial tick count of an agent created while the year
// counter reads counter. The agent then decides on every counter value
// congruent to Decision(bucket) modulo the action cadence.
func (s *Scheduler) Phase(counter, bucket int) int {
	p := (counter - s.Decision(bucket)) % s.actionTicks
	if p < 0 {
		p += s.actionTicks
	}
	return p
}

// Due reports whether a tick count falls on a decision tick.
func (s *Scheduler) Due(tickCount int) bool {
	return tickCount%s.actionTicks == 0
}

// Counts returns a copy of the bucket occupancy.
func (s *Scheduler) Counts() []int {
	out := make([]int, len(s.buckets))
	copy(out, s.buckets)
	return out
}

// Spread returns the difference between the fullest and emptiest bucket.
func (s *Scheduler) Spread() int {
	if len(s.buckets) == 0 {
		return 0
	}
	lo, hi := s.buckets[0], s.buckets[0]
	for _, n := range s.buckets[1:] {
		lo = min(lo, n)
		hi = max(hi, n)
	}
	return hi - lo
}
