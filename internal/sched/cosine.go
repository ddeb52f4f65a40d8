package sched

import (
	"math"

	"github.com/minima-ml/minima/internal/optim"
)

const kindCosine = "cosine"

// Cosine anneals each group's learning rate from its construction-time
// value down to etaMin along half a cosine period over horizon T:
//
//	lr(t) = etaMin + 0.5 * (base - etaMin) * (1 + cos(pi * t / T))
//
// The base lr per group is captured at construction and the lr is recomputed
// from it on every tick, so repeated in-place multiplication cannot
// accumulate drift. Ticks beyond T clamp at etaMin.
type Cosine struct {
	base
	horizon int64
	etaMin  float64
	baseLRs []float64
}

// NewCosine creates a cosine annealing schedule. The horizon T must be
// positive and etaMin non-negative.
func NewCosine(opt *optim.Optimizer, horizon int64, etaMin float64) (*Cosine, error) {
	if horizon <= 0 {
		return nil, &optim.ConfigError{Field: "T", Value: horizon, Reason: "must be > 0"}
	}
	if etaMin < 0 {
		return nil, &optim.ConfigError{Field: "eta_min", Value: etaMin, Reason: "must be >= 0"}
	}
	c := &Cosine{
		base:    base{opt: opt},
		horizon: horizon,
		etaMin:  etaMin,
	}
	c.baseLRs = c.lrs()
	return c, nil
}

// Tick advances the counter and recomputes every group's lr from its
// captured base value.
func (c *Cosine) Tick() {
	c.counter++
	t := c.counter
	if t > c.horizon {
		t = c.horizon
	}
	frac := float64(t) / float64(c.horizon)
	for i, g := range c.opt.Groups() {
		g.SetLR(c.etaMin + 0.5*(c.baseLRs[i]-c.etaMin)*(1+math.Cos(math.Pi*frac)))
	}
}

// Snapshot exports the scheduler state.
func (c *Cosine) Snapshot() Snapshot { return c.snapshot(kindCosine) }

// Restore replaces the scheduler state from a snapshot.
func (c *Cosine) Restore(snap Snapshot) error { return c.restore(kindCosine, snap) }
