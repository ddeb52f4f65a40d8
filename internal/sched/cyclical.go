package sched

import (
	"math"

	"github.com/minima-ml/minima/internal/optim"
)

const kindCyclical = "cyclical"

// CycleDecay selects how a Cyclical schedule shrinks the peak learning rate
// across cycles.
type CycleDecay int

// Supported peak decay modes.
const (
	// DecayNone restarts every cycle at the original peak.
	DecayNone CycleDecay = iota
	// DecayGeometric multiplies the peak by a fixed factor each cycle.
	DecayGeometric
	// DecayLogarithmic divides the original peak by 1 + ln(1 + cycle).
	DecayLogarithmic
)

// Factory builds a fresh base schedule over the optimizer. Cyclical invokes
// it at construction and again at every cycle boundary, after resetting the
// group learning rates to the cycle's peak, so schedules that capture base
// rates at construction (such as Cosine) restart cleanly.
type Factory func(*optim.Optimizer) (Scheduler, error)

// Cyclical composes a base schedule with periodic restarts.
//
// Every cycleLen ticks the tick position resets: group learning rates are
// set to the cycle's peak (optionally decayed) and the base schedule is
// rebuilt through the factory. Ticks in between delegate to the base
// schedule.
type Cyclical struct {
	base
	cycleLen int64
	decay    CycleDecay
	factor   float64
	factory  Factory
	peaks0   []float64 // peaks of the first cycle
	peaks    []float64 // peaks of the current cycle
	cycle    int64
	inner    Scheduler
}

// NewCyclical creates a cyclical schedule. cycleLen must be positive; for
// DecayGeometric the factor must be in (0, 1].
func NewCyclical(opt *optim.Optimizer, cycleLen int64, decay CycleDecay, factor float64, factory Factory) (*Cyclical, error) {
	if cycleLen <= 0 {
		return nil, &optim.ConfigError{Field: "cycle_len", Value: cycleLen, Reason: "must be > 0"}
	}
	if factory == nil {
		return nil, &optim.ConfigError{Field: "factory", Reason: "cyclical requires a base schedule factory"}
	}
	if decay == DecayGeometric {
		if factor <= 0 || factor > 1 {
			return nil, &optim.ConfigError{Field: "factor", Value: factor, Reason: "must be in (0, 1]"}
		}
	}
	c := &Cyclical{
		base:     base{opt: opt},
		cycleLen: cycleLen,
		decay:    decay,
		factor:   factor,
		factory:  factory,
	}
	c.peaks0 = c.lrs()
	c.peaks = append([]float64(nil), c.peaks0...)
	inner, err := factory(opt)
	if err != nil {
		return nil, err
	}
	c.inner = inner
	return c, nil
}

// Tick delegates to the base schedule, restarting it with a decayed peak at
// each cycle boundary.
func (c *Cyclical) Tick() {
	c.counter++
	if c.counter%c.cycleLen != 0 {
		c.inner.Tick()
		return
	}

	c.cycle++
	switch c.decay {
	case DecayGeometric:
		for i := range c.peaks {
			c.peaks[i] *= c.factor
		}
	case DecayLogarithmic:
		for i := range c.peaks {
			c.peaks[i] = c.peaks0[i] / (1 + math.Log(1+float64(c.cycle)))
		}
	}
	c.setLRs(c.peaks)

	// Factory failure cannot happen here: the configuration was already
	// accepted at construction, and Tick must not fail. Keep the previous
	// inner schedule in the degenerate case.
	if inner, err := c.factory(c.opt); err == nil {
		c.inner = inner
	}
}

// Snapshot exports the cycle bookkeeping and the base schedule's state.
func (c *Cyclical) Snapshot() Snapshot {
	snap := c.snapshot(kindCyclical)
	snap.Cycle = c.cycle
	snap.Peaks = append([]float64(nil), c.peaks...)
	inner := c.inner.Snapshot()
	snap.Inner = &inner
	return snap
}

// Restore replaces the cycle bookkeeping and rebuilds the base schedule in
// the state it held at snapshot time.
func (c *Cyclical) Restore(snap Snapshot) error {
	if snap.Inner == nil {
		return &optim.ConfigError{Field: "inner", Reason: "cyclical snapshot is missing the base schedule state"}
	}
	if len(snap.Peaks) != c.opt.GroupCount() {
		return &optim.ConfigError{Field: "peaks", Value: len(snap.Peaks),
			Reason: "snapshot group count does not match the optimizer"}
	}

	c.cycle = snap.Cycle
	c.peaks = append([]float64(nil), snap.Peaks...)

	// Rebuild the base schedule as it was created at the snapshot's cycle
	// boundary: base rates were the cycle peaks at that point.
	c.setLRs(c.peaks)
	inner, err := c.factory(c.opt)
	if err != nil {
		return err
	}
	if err := inner.Restore(*snap.Inner); err != nil {
		return err
	}
	c.inner = inner

	return c.restore(kindCyclical, snap)
}
