package sched

import (
	"github.com/minima-ml/minima/internal/optim"
)

const kindMultiStep = "multistep"

// MultiStep multiplies every group's learning rate by gamma when the tick
// counter reaches each milestone.
//
// Milestones compound: with milestones {6, 11} and gamma 0.1 an initial lr
// of 0.1 becomes 0.01 on the 6th tick and 0.001 on the 11th, because each
// decay multiplies the lr established by the previous one.
type MultiStep struct {
	base
	milestones map[int64]struct{}
	gamma      float64
}

// NewMultiStep creates a multi-milestone step decay schedule.
//
// Milestones must be positive and strictly increasing; gamma must be in
// (0, 1]. Violations fail with ConfigError.
func NewMultiStep(opt *optim.Optimizer, milestones []int64, gamma float64) (*MultiStep, error) {
	if len(milestones) == 0 {
		return nil, &optim.ConfigError{Field: "milestones", Reason: "at least one milestone is required"}
	}
	set := make(map[int64]struct{}, len(milestones))
	prev := int64(0)
	for _, m := range milestones {
		if m <= prev {
			return nil, &optim.ConfigError{Field: "milestones", Value: m,
				Reason: "must be positive and strictly increasing"}
		}
		set[m] = struct{}{}
		prev = m
	}
	if err := validateGamma(gamma); err != nil {
		return nil, err
	}
	return &MultiStep{
		base:       base{opt: opt},
		milestones: set,
		gamma:      gamma,
	}, nil
}

// Tick advances the counter and applies the decay if a milestone is hit.
func (m *MultiStep) Tick() {
	m.counter++
	if _, hit := m.milestones[m.counter]; hit {
		m.scaleLRs(m.gamma)
	}
}

// Snapshot exports the scheduler state.
func (m *MultiStep) Snapshot() Snapshot { return m.snapshot(kindMultiStep) }

// Restore replaces the scheduler state from a snapshot.
func (m *MultiStep) Restore(snap Snapshot) error { return m.restore(kindMultiStep, snap) }
