// Copyright 2026 The Minima Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the public API of the gradient-based parameter
// optimization engine.
//
// # Overview
//
// This package contains:
//   - SGD: stochastic gradient descent with momentum and weight decay
//   - RMSProp: root-mean-square propagation
//   - Adam: adaptive moment estimation with bias correction
//   - Optimizer: parameter groups, per-parameter state, Step/ZeroGrad,
//     hyperparameter access and state export/import
//
// # Basic Usage
//
//	opt, err := optim.New(optim.Adam{}, []optim.GroupConfig{
//	    {Name: "weights", Params: weights, Hyperparams: optim.Hyperparams{LR: 1e-3, WeightDecay: 1e-4}},
//	    {Name: "biases", Params: biases, Hyperparams: optim.Hyperparams{LR: 1e-3}},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Training loop, gradients supplied by an external differentiation
//	// engine:
//	for batch := range batches {
//	    opt.ZeroGrad()
//	    backward(loss(batch))
//	    opt.Step()
//	}
package optim

import (
	"github.com/minima-ml/minima/internal/nn"
	"github.com/minima-ml/minima/internal/optim"
)

// Optimizer orchestrates parameter groups, per-parameter state and an
// update rule.
type Optimizer = optim.Optimizer

// Rule is the polymorphic update algorithm contract. SGD, RMSProp and Adam
// implement it; a custom rule may be supplied to New.
type Rule = optim.Rule

// Update rules.
type (
	// SGD is stochastic gradient descent with momentum and weight decay.
	SGD = optim.SGD
	// RMSProp divides the step by a running average of squared gradients.
	RMSProp = optim.RMSProp
	// Adam combines first/second moment estimates with bias correction.
	Adam = optim.Adam
)

// Hyperparams is the closed per-group hyperparameter record.
type Hyperparams = optim.Hyperparams

// GroupConfig describes one parameter group at optimizer construction.
type GroupConfig = optim.GroupConfig

// Group is a live parameter group handle.
type Group = optim.Group

// Record is the persistent per-parameter optimizer state.
type Record = optim.Record

// Snapshot is a self-contained export of accumulated optimizer state.
type Snapshot = optim.Snapshot

// RecordSnapshot is a deep copy of one Record inside a Snapshot.
type RecordSnapshot = optim.RecordSnapshot

// ConfigError reports invalid configuration at construction or access time.
type ConfigError = optim.ConfigError

// StateMismatchError reports an imported snapshot incompatible with the
// live parameter set.
type StateMismatchError = optim.StateMismatchError

// ErrGroupIndex is returned for out-of-range group indices.
var ErrGroupIndex = optim.ErrGroupIndex

// Hyperparameter key names for Hyperparam/SetHyperparam.
const (
	KeyLR          = optim.KeyLR
	KeyMomentum    = optim.KeyMomentum
	KeyWeightDecay = optim.KeyWeightDecay
	KeyAlpha       = optim.KeyAlpha
	KeyBeta1       = optim.KeyBeta1
	KeyBeta2       = optim.KeyBeta2
	KeyEps         = optim.KeyEps
)

// New creates an optimizer from an update rule and one or more parameter
// groups.
func New(rule Rule, groups []GroupConfig) (*Optimizer, error) {
	return optim.New(rule, groups)
}

// NewSingle creates an optimizer with a single parameter group.
func NewSingle(rule Rule, params []*nn.Parameter, hp Hyperparams) (*Optimizer, error) {
	return optim.NewSingle(rule, params, hp)
}
