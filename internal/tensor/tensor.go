// Package tensor provides the flat float64 tensor type the optimization
// engine operates on.
//
// Parameters, gradients and optimizer accumulators are all dense float64
// buffers with an attached shape. The package deliberately stays small:
// creation, cloning, and the handful of element-wise helpers the update
// rules need. Anything fancier (broadcasting, views, devices) belongs to
// the differentiation engine that produces the gradients, not here.
package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Tensor is a dense float64 tensor with row-major layout.
//
// The data buffer is owned by the tensor and always has exactly
// Shape().NumElements() elements.
type Tensor struct {
	data  []float64
	shape Shape
}

// New creates a zero-filled tensor with the given shape.
func New(shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	return &Tensor{
		data:  make([]float64, shape.NumElements()),
		shape: shape.Clone(),
	}, nil
}

// FromSlice creates a tensor from existing data. The data is copied.
//
// Returns an error if len(data) does not match the shape's element count.
func FromSlice(data []float64, shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %s (%d elements)",
			len(data), shape, shape.NumElements())
	}
	t := &Tensor{
		data:  make([]float64, len(data)),
		shape: shape.Clone(),
	}
	copy(t.data, data)
	return t, nil
}

// Zeros creates a zero-filled tensor, panicking on an invalid shape.
//
// Intended for internal callers that construct shapes from live tensors,
// where validity is already established.
func Zeros(shape Shape) *Tensor {
	t, err := New(shape)
	if err != nil {
		panic(err)
	}
	return t
}

// Full creates a tensor with every element set to v.
func Full(shape Shape, v float64) *Tensor {
	t := Zeros(shape)
	t.Fill(v)
	return t
}

// Shape returns the tensor's shape.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return t.shape.NumElements()
}

// Data returns the underlying buffer. Mutations are visible to the tensor.
func (t *Tensor) Data() []float64 {
	return t.data
}

// At returns the element at flat index i.
func (t *Tensor) At(i int) float64 {
	return t.data[i]
}

// Clone returns a deep copy of the tensor.
func (t *Tensor) Clone() *Tensor {
	c := &Tensor{
		data:  make([]float64, len(t.data)),
		shape: t.shape.Clone(),
	}
	copy(c.data, t.data)
	return c
}

// Fill sets every element to v.
func (t *Tensor) Fill(v float64) {
	for i := range t.data {
		t.data[i] = v
	}
}

// Zero resets every element to 0.
func (t *Tensor) Zero() {
	t.Fill(0)
}

// CopyFrom overwrites the tensor's data with src's. Shapes must match.
func (t *Tensor) CopyFrom(src *Tensor) error {
	if !t.shape.Equal(src.shape) {
		return fmt.Errorf("shape mismatch: %s vs %s", t.shape, src.shape)
	}
	copy(t.data, src.data)
	return nil
}

// AddScaled computes t += alpha * other element-wise. Shapes must match.
func (t *Tensor) AddScaled(alpha float64, other *Tensor) error {
	if !t.shape.Equal(other.shape) {
		return fmt.Errorf("shape mismatch: %s vs %s", t.shape, other.shape)
	}
	floats.AddScaled(t.data, alpha, other.data)
	return nil
}

// Scale computes t *= alpha element-wise.
func (t *Tensor) Scale(alpha float64) {
	floats.Scale(alpha, t.data)
}
