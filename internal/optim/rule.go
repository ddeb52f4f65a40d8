package optim

import (
	"github.com/minima-ml/minima/internal/tensor"
)

// Rule is the update algorithm applied to each parameter during Step.
//
// A Rule is pure with respect to everything outside its arguments: it reads
// the parameter value, its gradient, the per-parameter state record and the
// group's hyperparameters, and mutates only the parameter value and the
// record. It is invoked once per parameter per Step, only for parameters
// carrying a gradient.
//
// The set of rules is closed by convention (SGD, RMSProp, Adam); a custom
// fourth rule is supported by implementing this interface and passing it to
// New.
type Rule interface {
	// Name identifies the rule in state snapshots and checkpoints.
	Name() string

	// Defaults returns hp with the rule's unset (zero) fields replaced by
	// the rule's defaults. Called once per group at construction, before
	// Validate.
	Defaults(hp Hyperparams) Hyperparams

	// Validate checks the fields the rule consumes. A violation is reported
	// as ConfigError and aborts optimizer construction.
	Validate(hp Hyperparams) error

	// Apply performs the in-place update of one parameter. The gradient is
	// never nil and always has the parameter's shape; the record belongs to
	// this parameter and persists across steps.
	Apply(param, grad *tensor.Tensor, rec *Record, hp Hyperparams)
}

func validateLR(hp Hyperparams) error {
	if hp.LR <= 0 {
		return &ConfigError{Field: KeyLR, Value: hp.LR, Reason: "must be > 0"}
	}
	return nil
}

func validateWeightDecay(hp Hyperparams) error {
	if hp.WeightDecay < 0 {
		return &ConfigError{Field: KeyWeightDecay, Value: hp.WeightDecay, Reason: "must be >= 0"}
	}
	return nil
}

func validateEps(hp Hyperparams) error {
	if hp.Eps <= 0 {
		return &ConfigError{Field: KeyEps, Value: hp.Eps, Reason: "must be > 0"}
	}
	return nil
}
