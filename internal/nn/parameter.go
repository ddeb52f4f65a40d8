// Package nn holds the trainable parameter type shared between the model
// owner and the optimization engine.
package nn

import (
	"fmt"

	"github.com/minima-ml/minima/internal/tensor"
)

// Parameter represents a trainable parameter.
//
// The value tensor is owned by the model; the optimizer mutates it in place
// during Step. The gradient slot is filled by the external differentiation
// engine before Step and cleared by ZeroGrad. A nil gradient means the
// parameter did not participate in the current loss and is skipped.
//
// Example:
//
//	w, _ := tensor.FromSlice([]float64{0.5, -0.3}, tensor.Shape{2})
//	weight := nn.NewParameter("linear.weight", w)
//
//	// Differentiation engine fills the gradient:
//	g, _ := tensor.FromSlice([]float64{0.1, 0.2}, tensor.Shape{2})
//	weight.SetGrad(g)
type Parameter struct {
	name  string
	value *tensor.Tensor
	grad  *tensor.Tensor
}

// NewParameter creates a trainable parameter around an initialized tensor.
//
// The gradient slot starts empty; it is allocated by the differentiation
// engine on the first backward pass.
func NewParameter(name string, value *tensor.Tensor) *Parameter {
	return &Parameter{
		name:  name,
		value: value,
	}
}

// Name returns the parameter name (e.g. "linear1.weight").
func (p *Parameter) Name() string {
	return p.name
}

// Value returns the parameter tensor.
func (p *Parameter) Value() *tensor.Tensor {
	return p.value
}

// Grad returns the gradient tensor, or nil if none has been set since the
// last ZeroGrad.
func (p *Parameter) Grad() *tensor.Tensor {
	return p.grad
}

// SetGrad installs a gradient for the parameter.
//
// The gradient shape must match the value shape; this is the one invariant
// the engine enforces on behalf of the differentiation engine.
func (p *Parameter) SetGrad(grad *tensor.Tensor) error {
	if grad != nil && !grad.Shape().Equal(p.value.Shape()) {
		return fmt.Errorf("gradient shape %s does not match parameter %q shape %s",
			grad.Shape(), p.name, p.value.Shape())
	}
	p.grad = grad
	return nil
}

// ZeroGrad clears the gradient slot.
//
// Called once per training iteration, before the backward pass, so stale
// gradients never leak into the next update.
func (p *Parameter) ZeroGrad() {
	p.grad = nil
}
