// Copyright 2026 The Minima Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for the dense float64 tensors the
// optimization engine operates on.
//
// Example:
//
//	x, _ := tensor.FromSlice([]float64{1, 2, 3}, tensor.Shape{3})
//	y := tensor.Zeros(tensor.Shape{3})
//	_ = y.CopyFrom(x)
package tensor

import (
	"github.com/minima-ml/minima/internal/tensor"
)

// Shape represents the dimensions of a tensor.
type Shape = tensor.Shape

// Tensor is a dense float64 tensor with row-major layout.
type Tensor = tensor.Tensor

// New creates a zero-filled tensor with the given shape.
func New(shape Shape) (*Tensor, error) {
	return tensor.New(shape)
}

// FromSlice creates a tensor from existing data. The data is copied.
func FromSlice(data []float64, shape Shape) (*Tensor, error) {
	return tensor.FromSlice(data, shape)
}

// Zeros creates a zero-filled tensor, panicking on an invalid shape.
func Zeros(shape Shape) *Tensor {
	return tensor.Zeros(shape)
}

// Full creates a tensor with every element set to v.
func Full(shape Shape, v float64) *Tensor {
	return tensor.Full(shape, v)
}
