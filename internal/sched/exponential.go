package sched

import "github.com/minima-ml/minima/internal/optim"

const kindExponential = "exponential"

// Exponential multiplies every group's learning rate by gamma on each tick.
type Exponential struct {
	base
	gamma float64
}

// NewExponential creates an exponential decay schedule. Gamma must be in
// (0, 1].
func NewExponential(opt *optim.Optimizer, gamma float64) (*Exponential, error) {
	if err := validateGamma(gamma); err != nil {
		return nil, err
	}
	return &Exponential{base: base{opt: opt}, gamma: gamma}, nil
}

// Tick advances the counter and applies one decay factor.
func (e *Exponential) Tick() {
	e.counter++
	e.scaleLRs(e.gamma)
}

// Snapshot exports the scheduler state.
func (e *Exponential) Snapshot() Snapshot { return e.snapshot(kindExponential) }

// Restore replaces the scheduler state from a snapshot.
func (e *Exponential) Restore(snap Snapshot) error { return e.restore(kindExponential, snap) }
