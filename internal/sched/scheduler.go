// Package sched implements learning-rate schedules over an optimizer's
// parameter groups.
//
// A scheduler owns an integer tick counter and, on each Tick, rewrites the
// lr hyperparameter of every group. It never reads or writes gradients or
// parameter values. The discretization of a tick (per epoch or per step) is
// the caller's choice; the variants here are conventionally ticked once per
// epoch.
//
// Example usage:
//
//	opt, _ := optim.NewSingle(optim.SGD{}, params, optim.Hyperparams{LR: 0.1})
//	sch, _ := sched.NewMultiStep(opt, []int64{30, 60}, 0.1)
//
//	for epoch := range epochs {
//	    trainOneEpoch(opt)
//	    sch.Tick()
//	}
package sched

import (
	"fmt"

	"github.com/minima-ml/minima/internal/optim"
)

// Scheduler is a stateful learning-rate policy over an optimizer's groups.
//
// Tick never fails; it is a pure state mutation. Construction validates the
// policy configuration and fails with ConfigError on violations.
type Scheduler interface {
	// Tick advances the schedule by one step and rewrites group learning
	// rates accordingly. The counter increases by exactly one per call.
	Tick()

	// CurrentLR returns the learning rate group gi currently holds.
	CurrentLR(gi int) (float64, error)

	// Snapshot exports the scheduler's mutable state for checkpointing.
	Snapshot() Snapshot

	// Restore replaces the scheduler's mutable state from a snapshot taken
	// from a scheduler of the same kind over a same-shaped optimizer.
	Restore(Snapshot) error
}

// Snapshot is the serializable mutable state of a scheduler: the tick
// counter, the group learning rates at snapshot time, and decorator /
// cycle bookkeeping where applicable. Policy configuration (milestones,
// gamma, horizons) lives in code and is not part of the snapshot.
type Snapshot struct {
	Kind    string    `json:"kind"`
	Counter int64     `json:"counter"`
	LRs     []float64 `json:"lrs"`
	Cycle   int64     `json:"cycle,omitempty"`
	Peaks   []float64 `json:"peaks,omitempty"`
	Inner   *Snapshot `json:"inner,omitempty"`
}

// base carries the bookkeeping shared by all variants.
type base struct {
	opt     *optim.Optimizer
	counter int64
}

func (b *base) CurrentLR(gi int) (float64, error) {
	return b.opt.Hyperparam(gi, optim.KeyLR)
}

// Counter returns the number of Tick calls applied so far.
func (b *base) Counter() int64 { return b.counter }

func (b *base) lrs() []float64 {
	groups := b.opt.Groups()
	out := make([]float64, len(groups))
	for i, g := range groups {
		out[i] = g.LR()
	}
	return out
}

func (b *base) setLRs(lrs []float64) {
	for i, g := range b.opt.Groups() {
		g.SetLR(lrs[i])
	}
}

func (b *base) scaleLRs(gamma float64) {
	for _, g := range b.opt.Groups() {
		g.SetLR(g.LR() * gamma)
	}
}

func (b *base) snapshot(kind string) Snapshot {
	return Snapshot{Kind: kind, Counter: b.counter, LRs: b.lrs()}
}

func (b *base) restore(kind string, snap Snapshot) error {
	if snap.Kind != kind {
		return &optim.ConfigError{Field: "kind", Value: snap.Kind,
			Reason: fmt.Sprintf("snapshot belongs to a %q scheduler, not %q", snap.Kind, kind)}
	}
	if len(snap.LRs) != b.opt.GroupCount() {
		return &optim.ConfigError{Field: "lrs", Value: len(snap.LRs),
			Reason: fmt.Sprintf("snapshot covers %d groups, optimizer has %d", len(snap.LRs), b.opt.GroupCount())}
	}
	b.counter = snap.Counter
	b.setLRs(snap.LRs)
	return nil
}

func validateGamma(gamma float64) error {
	if gamma <= 0 || gamma > 1 {
		return &optim.ConfigError{Field: "gamma", Value: gamma, Reason: "must be in (0, 1]"}
	}
	return nil
}
