package checkpoint_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minima-ml/minima/internal/checkpoint"
	"github.com/minima-ml/minima/internal/nn"
	"github.com/minima-ml/minima/internal/optim"
	"github.com/minima-ml/minima/internal/sched"
	"github.com/minima-ml/minima/internal/tensor"
)

func trainedOptimizer(t *testing.T) (*optim.Optimizer, []*nn.Parameter) {
	t.Helper()
	w := nn.NewParameter("w", tensor.Zeros(tensor.Shape{2, 2}))
	b := nn.NewParameter("b", tensor.Zeros(tensor.Shape{2}))
	opt, err := optim.New(optim.Adam{}, []optim.GroupConfig{
		{Name: "weights", Params: []*nn.Parameter{w}, Hyperparams: optim.Hyperparams{LR: 0.01, WeightDecay: 0.1}},
		{Name: "biases", Params: []*nn.Parameter{b}, Hyperparams: optim.Hyperparams{LR: 0.01}},
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		opt.ZeroGrad()
		g1, _ := tensor.FromSlice([]float64{1, -2, 0.5, 3}, tensor.Shape{2, 2})
		g2, _ := tensor.FromSlice([]float64{0.1, -0.1}, tensor.Shape{2})
		require.NoError(t, w.SetGrad(g1))
		require.NoError(t, b.SetGrad(g2))
		opt.Step()
	}
	return opt, []*nn.Parameter{w, b}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	opt, _ := trainedOptimizer(t)
	schedSnap := sched.Snapshot{Kind: "exponential", Counter: 3, LRs: []float64{0.01, 0.01}}

	var buf bytes.Buffer
	require.NoError(t, checkpoint.Save(&buf, &checkpoint.Checkpoint{
		Epoch:     7,
		Optimizer: opt.ExportState(),
		Scheduler: &schedSnap,
	}))

	loaded, err := checkpoint.Load(&buf)
	require.NoError(t, err)

	assert.Equal(t, 7, loaded.Epoch)
	require.NotNil(t, loaded.Scheduler)
	assert.Equal(t, schedSnap, *loaded.Scheduler)
	assert.Equal(t, "adam", loaded.Optimizer.Rule)

	want := opt.ExportState()
	require.Len(t, loaded.Optimizer.Records, len(want.Records))
	for id, rec := range want.Records {
		got, ok := loaded.Optimizer.Records[id]
		require.True(t, ok, "record %d missing", id)
		assert.Equal(t, rec.Step, got.Step)
		assert.Equal(t, rec.ExpAvg.Data(), got.ExpAvg.Data())
		assert.Equal(t, rec.ExpAvgSq.Data(), got.ExpAvgSq.Data())
	}
}

func TestRoundTrip_BitIdenticalNextStep(t *testing.T) {
	// Persisting through the binary container and importing back must not
	// perturb the next Step by a single bit.
	step := func(t *testing.T, throughBytes bool) []float64 {
		t.Helper()
		opt, params := trainedOptimizer(t)

		if throughBytes {
			var buf bytes.Buffer
			require.NoError(t, checkpoint.Save(&buf, &checkpoint.Checkpoint{Optimizer: opt.ExportState()}))
			loaded, err := checkpoint.Load(&buf)
			require.NoError(t, err)
			require.NoError(t, opt.ImportState(loaded.Optimizer))
		}

		opt.ZeroGrad()
		g, _ := tensor.FromSlice([]float64{-1, 0.25, 2, -0.5}, tensor.Shape{2, 2})
		require.NoError(t, params[0].SetGrad(g))
		opt.Step()
		return params[0].Value().Data()
	}

	assert.Equal(t, step(t, false), step(t, true))
}

func TestLoad_InvalidMagic(t *testing.T) {
	_, err := checkpoint.Load(bytes.NewReader([]byte("NOPE\x01\x00\x00\x00")))
	assert.ErrorIs(t, err, checkpoint.ErrInvalidMagic)
}

func TestLoad_UnsupportedVersion(t *testing.T) {
	opt, _ := trainedOptimizer(t)
	var buf bytes.Buffer
	require.NoError(t, checkpoint.Save(&buf, &checkpoint.Checkpoint{Optimizer: opt.ExportState()}))

	raw := buf.Bytes()
	raw[4] = 99 // bump the version field

	_, err := checkpoint.Load(bytes.NewReader(raw))
	assert.ErrorIs(t, err, checkpoint.ErrUnsupportedVersion)
}

func TestLoad_DetectsCorruption(t *testing.T) {
	opt, _ := trainedOptimizer(t)
	var buf bytes.Buffer
	require.NoError(t, checkpoint.Save(&buf, &checkpoint.Checkpoint{Optimizer: opt.ExportState()}))

	raw := buf.Bytes()
	raw[len(raw)-1] ^= 0xFF // flip bits in the data section

	_, err := checkpoint.Load(bytes.NewReader(raw))
	assert.ErrorIs(t, err, checkpoint.ErrChecksumMismatch)
}

func TestLoad_Truncated(t *testing.T) {
	opt, _ := trainedOptimizer(t)
	var buf bytes.Buffer
	require.NoError(t, checkpoint.Save(&buf, &checkpoint.Checkpoint{Optimizer: opt.ExportState()}))

	raw := buf.Bytes()
	_, err := checkpoint.Load(bytes.NewReader(raw[:20]))
	assert.Error(t, err)
}

func TestSaveLoad_EmptyState(t *testing.T) {
	// A checkpoint taken before any Step has no records; it must still
	// round-trip cleanly.
	p := nn.NewParameter("x", tensor.Zeros(tensor.Shape{1}))
	opt, err := optim.NewSingle(optim.SGD{}, []*nn.Parameter{p}, optim.Hyperparams{LR: 0.1})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, checkpoint.Save(&buf, &checkpoint.Checkpoint{Epoch: 0, Optimizer: opt.ExportState()}))

	loaded, err := checkpoint.Load(&buf)
	require.NoError(t, err)
	assert.Empty(t, loaded.Optimizer.Records)
	require.NoError(t, opt.ImportState(loaded.Optimizer))
}
