package rules

import "github.com/pthm-cable/seeds/components"

// Census is the population count taken at a year boundary.
type Census struct {
	Men    int // Adult males
	Women  int // Adult females
	Boys   int
	Girls  int
	Paired int // Agents with a partner

	// Per-agent samples for distribution statistics
	Ages      []float64
	Aptitudes []float64
}

// Add classifies one live agent; ages below maxChildAge count as children.
func (c *Census) Add(s components.Snapshot, maxChildAge int) {
	child := s.Age < maxChildAge
	switch {
	case s.Sex == components.Male && child:
		c.Boys++
	case s.Sex == components.Male:
		c.Men++
	case child:
		c.Girls++
	default:
		c.Women++
	}
	if s.Paired() {
		c.Paired++
	}
	c.Ages = append(c.Ages, float64(s.Age))
	c.Aptitudes = append(c.Aptitudes, float64(s.Aptitude))
}

// Adults returns the adult count.
func (c Census) Adults() int { return c.Men + c.Women }

// Children returns the juvenile count.
func (c Census) Children() int { return c.Boys + c.Girls }

// Males returns the male count.
func (c Census) Males() int { return c.Men + c.Boys }

// Females returns the female count.
func (c Census) Females() int { return c.Women + c.Girls }

// Total returns the live population.
func (c Census) Total() int { return c.Adults() + c.Children() }
