package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShape_NumElements(t *testing.T) {
	assert.Equal(t, 1, Shape{}.NumElements(), "scalar shape has one element")
	assert.Equal(t, 4, Shape{4}.NumElements())
	assert.Equal(t, 12, Shape{3, 4}.NumElements())
	assert.Equal(t, 24, Shape{2, 3, 4}.NumElements())
}

func TestShape_Validate(t *testing.T) {
	assert.NoError(t, Shape{3, 4}.Validate())
	assert.Error(t, Shape{3, 0}.Validate())
	assert.Error(t, Shape{-1}.Validate())
}

func TestShape_Equal(t *testing.T) {
	assert.True(t, Shape{2, 3}.Equal(Shape{2, 3}))
	assert.False(t, Shape{2, 3}.Equal(Shape{3, 2}))
	assert.False(t, Shape{2, 3}.Equal(Shape{2, 3, 1}))
}

func TestNew_ZeroFilled(t *testing.T) {
	x, err := New(Shape{2, 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0, 0}, x.Data())

	_, err = New(Shape{0})
	assert.Error(t, err, "zero dimension is invalid")
}

func TestFromSlice(t *testing.T) {
	x, err := FromSlice([]float64{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 3}, x.Shape())
	assert.Equal(t, 3.0, x.At(2))

	_, err = FromSlice([]float64{1, 2}, Shape{3})
	assert.Error(t, err, "length/shape mismatch must fail")
}

func TestFromSlice_CopiesData(t *testing.T) {
	src := []float64{1, 2, 3}
	x, err := FromSlice(src, Shape{3})
	require.NoError(t, err)

	src[0] = 99
	assert.Equal(t, 1.0, x.At(0), "tensor must not alias the source slice")
}

func TestClone_IsDeep(t *testing.T) {
	x, err := FromSlice([]float64{1, 2}, Shape{2})
	require.NoError(t, err)

	y := x.Clone()
	y.Data()[0] = 42
	assert.Equal(t, 1.0, x.At(0))
	assert.Equal(t, 42.0, y.At(0))
}

func TestAddScaled(t *testing.T) {
	x, _ := FromSlice([]float64{1, 2, 3}, Shape{3})
	y, _ := FromSlice([]float64{10, 20, 30}, Shape{3})

	require.NoError(t, x.AddScaled(0.5, y))
	assert.Equal(t, []float64{6, 12, 18}, x.Data())

	z := Zeros(Shape{2})
	assert.Error(t, x.AddScaled(1, z), "shape mismatch must fail")
}

func TestScaleAndFill(t *testing.T) {
	x := Full(Shape{3}, 2)
	x.Scale(3)
	assert.Equal(t, []float64{6, 6, 6}, x.Data())

	x.Zero()
	assert.Equal(t, []float64{0, 0, 0}, x.Data())
}

func TestCopyFrom(t *testing.T) {
	x := Zeros(Shape{2})
	y, _ := FromSlice([]float64{7, 8}, Shape{2})

	require.NoError(t, x.CopyFrom(y))
	assert.Equal(t, []float64{7, 8}, x.Data())

	z := Zeros(Shape{3})
	assert.Error(t, x.CopyFrom(z))
}
