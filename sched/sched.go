// Copyright 2026 The Minima Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package sched provides the public API for learning-rate schedules.
//
// # Basic Usage
//
//	opt, _ := optim.NewSingle(optim.SGD{}, params, optim.Hyperparams{LR: 0.1})
//	sch, _ := sched.NewMultiStep(opt, []int64{30, 60}, 0.1)
//
//	for epoch := range epochs {
//	    trainOneEpoch(opt)
//	    sch.Tick()
//	}
//
// # Composition
//
// Warmup decorates any schedule with a linear ramp; Cyclical restarts a
// base schedule periodically with an optionally decaying peak:
//
//	inner, _ := sched.NewCosine(opt, 90, 0)
//	sch, _ := sched.NewWarmup(opt, 5, inner)
package sched

import (
	"github.com/minima-ml/minima/internal/optim"
	"github.com/minima-ml/minima/internal/sched"
)

// Scheduler is a stateful learning-rate policy over an optimizer's groups.
type Scheduler = sched.Scheduler

// Snapshot is the serializable mutable state of a scheduler.
type Snapshot = sched.Snapshot

// Schedule variants.
type (
	// Constant keeps every learning rate fixed.
	Constant = sched.Constant
	// MultiStep decays at fixed milestones.
	MultiStep = sched.MultiStep
	// Exponential decays by gamma every tick.
	Exponential = sched.Exponential
	// Cosine anneals along half a cosine period.
	Cosine = sched.Cosine
	// Warmup ramps linearly, then delegates to a wrapped schedule.
	Warmup = sched.Warmup
	// Cyclical restarts a base schedule with an optionally decaying peak.
	Cyclical = sched.Cyclical
)

// CycleDecay selects how Cyclical shrinks the peak lr across cycles.
type CycleDecay = sched.CycleDecay

// Peak decay modes for Cyclical.
const (
	DecayNone        = sched.DecayNone
	DecayGeometric   = sched.DecayGeometric
	DecayLogarithmic = sched.DecayLogarithmic
)

// Factory builds a fresh base schedule for Cyclical.
type Factory = sched.Factory

// NewConstant creates a constant (no-op) schedule.
func NewConstant(opt *optim.Optimizer) *Constant {
	return sched.NewConstant(opt)
}

// NewMultiStep creates a multi-milestone step decay schedule.
func NewMultiStep(opt *optim.Optimizer, milestones []int64, gamma float64) (*MultiStep, error) {
	return sched.NewMultiStep(opt, milestones, gamma)
}

// NewExponential creates an exponential decay schedule.
func NewExponential(opt *optim.Optimizer, gamma float64) (*Exponential, error) {
	return sched.NewExponential(opt, gamma)
}

// NewCosine creates a cosine annealing schedule over horizon T.
func NewCosine(opt *optim.Optimizer, horizon int64, etaMin float64) (*Cosine, error) {
	return sched.NewCosine(opt, horizon, etaMin)
}

// NewWarmup wraps inner with a linear warm-up phase.
func NewWarmup(opt *optim.Optimizer, warmupTicks int64, inner Scheduler) (*Warmup, error) {
	return sched.NewWarmup(opt, warmupTicks, inner)
}

// NewCyclical creates a cyclical schedule around a base schedule factory.
func NewCyclical(opt *optim.Optimizer, cycleLen int64, decay CycleDecay, factor float64, factory Factory) (*Cyclical, error) {
	return sched.NewCyclical(opt, cycleLen, decay, factor, factory)
}
