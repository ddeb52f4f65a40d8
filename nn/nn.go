// Copyright 2026 The Minima Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the public API for trainable parameters.
//
// A Parameter wraps a value tensor owned by the model together with a
// gradient slot filled by an external differentiation engine:
//
//	w, _ := tensor.FromSlice([]float64{0.5, -0.3}, tensor.Shape{2})
//	weight := nn.NewParameter("linear.weight", w)
package nn

import (
	"github.com/minima-ml/minima/internal/nn"
	"github.com/minima-ml/minima/internal/tensor"
)

// Parameter represents a trainable parameter: a value tensor plus the
// gradient slot the optimizer consumes.
type Parameter = nn.Parameter

// NewParameter creates a trainable parameter around an initialized tensor.
func NewParameter(name string, value *tensor.Tensor) *Parameter {
	return nn.NewParameter(name, value)
}
