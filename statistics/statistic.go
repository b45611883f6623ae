// Package statistics provides the host side of a simulation's statistics
// configuration. A Host holds the statistic load level and the selected
// output, and writes every enabled statistic to that output when it closes.
package statistics

import (
	"math"

	"github.com/rs/xid"
)

// A Statistic accumulates the values reported by a single component.
type Statistic struct {
	ID        string
	Component string
	Name      string
	Level     int

	enabled bool
	count   uint64
	sum     float64
	min     float64
	max     float64
}

func newStatistic(component, name string, level int, enabled bool) *Statistic {
	return &Statistic{
		ID:        xid.New().String(),
		Component: component,
		Name:      name,
		Level:     level,
		enabled:   enabled,
		min:       math.Inf(1),
		max:       math.Inf(-1),
	}
}

// Enabled tells if the statistic collects data.
func (s *Statistic) Enabled() bool {
	return s.enabled
}

// AddData adds one value to the statistic. Values added to a disabled
// statistic are dropped.
func (s *Statistic) AddData(v float64) {
	if !s.enabled {
		return
	}

	s.count++
	s.sum += v
	s.min = math.Min(s.min, v)
	s.max = math.Max(s.max, v)
}

// Count returns the number of values added.
func (s *Statistic) Count() uint64 {
	return s.count
}

// Sum returns the sum of the values added.
func (s *Statistic) Sum() float64 {
	return s.sum
}

// Min returns the smallest value added, or 0 if nothing was added.
func (s *Statistic) Min() float64 {
	if s.count == 0 {
		return 0
	}

	return s.min
}

// Max returns the largest value added, or 0 if nothing was added.
func (s *Statistic) Max() float64 {
	if s.count == 0 {
		return 0
	}

	return s.max
}

// Record is a snapshot of a statistic as handed to an Output.
type Record struct {
	ID        string
	Component string
	Name      string
	Count     uint64
	Sum       float64
	Min       float64
	Max       float64
}

func (s *Statistic) record() Record {
	return Record{
		ID:        s.ID,
		Component: s.Component,
		Name:      s.Name,
		Count:     s.Count(),
		Sum:       s.Sum(),
		Min:       s.Min(),
		Max:       s.Max(),
	}
}
