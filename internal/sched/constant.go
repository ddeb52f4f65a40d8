package sched

import "github.com/minima-ml/minima/internal/optim"

const kindConstant = "constant"

// Constant keeps every group's learning rate fixed. Ticks advance the
// counter and nothing else.
type Constant struct {
	base
}

// NewConstant creates a constant (no-op) schedule.
func NewConstant(opt *optim.Optimizer) *Constant {
	return &Constant{base: base{opt: opt}}
}

// Tick advances the counter.
func (c *Constant) Tick() {
	c.counter++
}

// Snapshot exports the scheduler state.
func (c *Constant) Snapshot() Snapshot { return c.snapshot(kindConstant) }

// Restore replaces the scheduler state from a snapshot.
func (c *Constant) Restore(snap Snapshot) error { return c.restore(kindConstant, snap) }
