package sched

import (
	"github.com/minima-ml/minima/internal/optim"
)

const kindWarmup = "warmup"

// Warmup is a decorator that ramps each group's learning rate linearly from
// zero to its construction-time value over warmupTicks ticks, then hands
// every subsequent tick to the wrapped scheduler.
//
// For tick u in 1..U the lr is u * target / U, where target is the lr the
// group held when the warmup was constructed. The inner scheduler should be
// built over the same optimizer before the warmup starts mutating it, so
// the inner policy's captured base rates equal the warmup targets.
type Warmup struct {
	base
	warmupTicks int64
	targets     []float64
	inner       Scheduler
}

// NewWarmup wraps inner with a linear warm-up of warmupTicks ticks.
// warmupTicks must be positive and inner non-nil.
func NewWarmup(opt *optim.Optimizer, warmupTicks int64, inner Scheduler) (*Warmup, error) {
	if warmupTicks <= 0 {
		return nil, &optim.ConfigError{Field: "U", Value: warmupTicks, Reason: "must be > 0"}
	}
	if inner == nil {
		return nil, &optim.ConfigError{Field: "inner", Reason: "warmup requires a wrapped scheduler"}
	}
	w := &Warmup{
		base:        base{opt: opt},
		warmupTicks: warmupTicks,
		inner:       inner,
	}
	w.targets = w.lrs()
	return w, nil
}

// Tick ramps the lr while the warm-up phase lasts, then delegates to the
// wrapped scheduler.
func (w *Warmup) Tick() {
	w.counter++
	if w.counter <= w.warmupTicks {
		frac := float64(w.counter) / float64(w.warmupTicks)
		for i, g := range w.opt.Groups() {
			g.SetLR(frac * w.targets[i])
		}
		return
	}
	w.inner.Tick()
}

// Snapshot exports the warmup state together with the wrapped scheduler's.
func (w *Warmup) Snapshot() Snapshot {
	snap := w.snapshot(kindWarmup)
	inner := w.inner.Snapshot()
	snap.Inner = &inner
	return snap
}

// Restore replaces the warmup state and the wrapped scheduler's from a
// snapshot.
func (w *Warmup) Restore(snap Snapshot) error {
	if snap.Inner == nil {
		return &optim.ConfigError{Field: "inner", Reason: "warmup snapshot is missing the wrapped scheduler state"}
	}
	if err := w.inner.Restore(*snap.Inner); err != nil {
		return err
	}
	// The decorator's own LRs win: restore them after the inner scheduler.
	return w.restore(kindWarmup, snap)
}
