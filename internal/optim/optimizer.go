// Package optim implements the gradient-based parameter optimization engine.
//
// The engine mutates trainable parameters in place from externally computed
// gradients. It is built from four pieces:
//
//   - Group: a named partition of parameters sharing one hyperparameter set
//   - Record: lazily created per-parameter persistent state (momentum
//     buffers, moment estimates, timesteps)
//   - Rule: the update algorithm (SGD, RMSProp, Adam)
//   - Optimizer: the orchestrator exposing Step, ZeroGrad, hyperparameter
//     access and state export/import
//
// Example usage:
//
//	opt, err := optim.New(optim.Adam{}, []optim.GroupConfig{
//	    {Name: "weights", Params: weights, Hyperparams: optim.Hyperparams{LR: 1e-3, WeightDecay: 1e-4}},
//	    {Name: "biases", Params: biases, Hyperparams: optim.Hyperparams{LR: 1e-3}},
//	})
//
//	// Training loop, driven externally:
//	for batch := range batches {
//	    opt.ZeroGrad()
//	    backward(loss(batch))  // differentiation engine fills gradients
//	    opt.Step()
//	}
//
// The optimizer is driven by a single logical thread: ZeroGrad, Step and
// scheduler ticks are strictly sequential by protocol, so no locking is
// done here.
package optim

import (
	"fmt"

	"github.com/minima-ml/minima/internal/nn"
)

// Optimizer orchestrates parameter groups, per-parameter state and an
// update rule.
type Optimizer struct {
	rule   Rule
	groups []*Group
	params []*nn.Parameter // flat parameter set; index is the dense parameter id
	st     *state
}

// New creates an optimizer from an update rule and one or more parameter
// groups.
//
// Each group's hyperparameters are completed with the rule's defaults and
// validated; group membership is checked for emptiness and cross-group
// duplicates. Any violation fails with ConfigError before training begins.
func New(rule Rule, configs []GroupConfig) (*Optimizer, error) {
	if rule == nil {
		return nil, &ConfigError{Field: "rule", Reason: "update rule is required"}
	}
	groups, flat, err := buildGroups(rule, configs)
	if err != nil {
		return nil, err
	}
	return &Optimizer{
		rule:   rule,
		groups: groups,
		params: flat,
		st:     newState(len(flat)),
	}, nil
}

// NewSingle creates an optimizer with a single parameter group. Convenience
// wrapper over New for the common case.
func NewSingle(rule Rule, params []*nn.Parameter, hp Hyperparams) (*Optimizer, error) {
	return New(rule, []GroupConfig{{Params: params, Hyperparams: hp}})
}

// Rule returns the optimizer's update rule.
func (o *Optimizer) Rule() Rule { return o.rule }

// Groups returns the ordered group handles. The slice is shared; callers
// must not reorder it.
func (o *Optimizer) Groups() []*Group { return o.groups }

// GroupCount returns the number of parameter groups.
func (o *Optimizer) GroupCount() int { return len(o.groups) }

// ZeroGrad clears the gradient of every tracked parameter.
func (o *Optimizer) ZeroGrad() {
	for _, p := range o.params {
		p.ZeroGrad()
	}
}

// Step applies the update rule to every parameter carrying a gradient.
//
// Groups are visited in construction order, parameters in group order.
// Parameters with a nil gradient are skipped entirely: their value and
// state record are left untouched.
func (o *Optimizer) Step() {
	for _, g := range o.groups {
		for j, p := range g.params {
			grad := p.Grad()
			if grad == nil {
				continue
			}
			o.rule.Apply(p.Value(), grad, o.st.record(g.ids[j]), g.hp)
		}
	}
}

// Hyperparam reads hyperparameter key of group gi.
//
// An out-of-range index fails with ErrGroupIndex, an unknown key with
// ConfigError.
func (o *Optimizer) Hyperparam(gi int, key string) (float64, error) {
	if gi < 0 || gi >= len(o.groups) {
		return 0, fmt.Errorf("group %d of %d: %w", gi, len(o.groups), ErrGroupIndex)
	}
	return o.groups[gi].Get(key)
}

// SetHyperparam writes hyperparameter key of group gi. The new value takes
// effect on the next Step.
func (o *Optimizer) SetHyperparam(gi int, key string, v float64) error {
	if gi < 0 || gi >= len(o.groups) {
		return fmt.Errorf("group %d of %d: %w", gi, len(o.groups), ErrGroupIndex)
	}
	return o.groups[gi].Set(key, v)
}

// ExportState produces a self-contained snapshot of all accumulated
// per-parameter state, suitable for checkpointing.
func (o *Optimizer) ExportState() Snapshot {
	return o.st.export(o.rule.Name())
}

// ImportState atomically replaces the optimizer's state with a snapshot.
//
// The snapshot must have been produced by an optimizer over a
// model-compatible parameter set: same rule, ids within range, tensor
// shapes matching the live parameters. On StateMismatchError the current
// state is left untouched.
func (o *Optimizer) ImportState(snap Snapshot) error {
	return o.st.importSnapshot(snap, o.rule.Name(), o.params)
}
