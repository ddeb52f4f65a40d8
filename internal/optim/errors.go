package optim

import (
	"errors"
	"fmt"

	"github.com/minima-ml/minima/internal/tensor"
)

// Common errors.
var (
	ErrGroupIndex  = errors.New("group index out of range")
	ErrEmptyGroup  = errors.New("parameter group is empty")
	ErrDuplicate   = errors.New("parameter appears in more than one group")
	ErrNilSnapshot = errors.New("nil state snapshot")
)

// ConfigError reports an invalid or missing hyperparameter or an invalid
// group/scheduler configuration. It is raised at construction time, before
// any training begins, or on access with an unknown hyperparameter key.
type ConfigError struct {
	Field  string // Offending field or key (e.g. "lr", "milestones")
	Value  any    // The rejected value, if meaningful
	Reason string // Why the value was rejected
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("invalid config %q = %v: %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid config %q: %s", e.Field, e.Reason)
}

// StateMismatchError reports an imported state snapshot that is incompatible
// with the live parameter set. Import is atomic: when this error is returned
// no part of the snapshot has been applied.
type StateMismatchError struct {
	ParamID int          // Dense parameter id the record belongs to
	Field   string       // State field involved (e.g. "exp_avg"), or "" for id/rule issues
	Want    tensor.Shape // Expected shape (live parameter)
	Got     tensor.Shape // Shape found in the snapshot
	Detail  string       // Additional detail for non-shape mismatches
}

// Error implements the error interface.
func (e *StateMismatchError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("state mismatch: %s", e.Detail)
	}
	return fmt.Sprintf("state mismatch: parameter %d field %q: expected shape %s, got %s",
		e.ParamID, e.Field, e.Want, e.Got)
}
