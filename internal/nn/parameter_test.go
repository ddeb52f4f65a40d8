package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minima-ml/minima/internal/tensor"
)

func TestParameter_GradLifecycle(t *testing.T) {
	v, err := tensor.FromSlice([]float64{1, 2}, tensor.Shape{2})
	require.NoError(t, err)
	p := NewParameter("w", v)

	assert.Nil(t, p.Grad(), "fresh parameter has no gradient")

	g, err := tensor.FromSlice([]float64{0.1, 0.2}, tensor.Shape{2})
	require.NoError(t, err)
	require.NoError(t, p.SetGrad(g))
	assert.Same(t, g, p.Grad())

	p.ZeroGrad()
	assert.Nil(t, p.Grad())
}

func TestParameter_SetGradShapeMismatch(t *testing.T) {
	v, _ := tensor.FromSlice([]float64{1, 2}, tensor.Shape{2})
	p := NewParameter("w", v)

	bad := tensor.Zeros(tensor.Shape{3})
	err := p.SetGrad(bad)
	require.Error(t, err)
	assert.Nil(t, p.Grad(), "failed SetGrad must not install the gradient")
}

func TestParameter_SetGradNil(t *testing.T) {
	v, _ := tensor.FromSlice([]float64{1}, tensor.Shape{1})
	p := NewParameter("b", v)

	g := tensor.Zeros(tensor.Shape{1})
	require.NoError(t, p.SetGrad(g))
	require.NoError(t, p.SetGrad(nil), "nil clears the slot")
	assert.Nil(t, p.Grad())
}
