package optim

import (
	"math"

	"github.com/minima-ml/minima/internal/tensor"
)

// RMSProp implements the RMSProp optimizer.
//
// Update rule (per element, g = grad + weight_decay * param):
//
//	V = alpha * V_prev + (1 - alpha) * g²
//	param = param - lr * g / (sqrt(V) + eps)
//
// The running average V is zero-initialized before the first blend, so the
// first update is deliberately under-weighted by (1 - alpha). This is the
// torch.optim.RMSprop convention; the alternative of seeding V with the
// first squared gradient is not used.
//
// Reference: Tieleman & Hinton, "Lecture 6.5 - rmsprop", COURSERA 2012.
type RMSProp struct{}

// Name identifies the rule in snapshots.
func (RMSProp) Name() string { return "rmsprop" }

// Defaults fills the RMSProp defaults: alpha 0.99, eps 1e-8.
func (RMSProp) Defaults(hp Hyperparams) Hyperparams {
	if hp.Alpha == 0 {
		hp.Alpha = 0.99
	}
	if hp.Eps == 0 {
		hp.Eps = 1e-8
	}
	return hp
}

// Validate checks lr, alpha, eps and weight decay domains.
func (RMSProp) Validate(hp Hyperparams) error {
	if err := validateLR(hp); err != nil {
		return err
	}
	if hp.Alpha <= 0 || hp.Alpha >= 1 {
		return &ConfigError{Field: KeyAlpha, Value: hp.Alpha, Reason: "must be in (0, 1)"}
	}
	if err := validateEps(hp); err != nil {
		return err
	}
	return validateWeightDecay(hp)
}

// Apply performs the RMSProp update in place.
func (RMSProp) Apply(param, grad *tensor.Tensor, rec *Record, hp Hyperparams) {
	if rec.SquareAvg == nil {
		rec.SquareAvg = tensor.Zeros(param.Shape())
	}

	p := param.Data()
	g := grad.Data()
	v := rec.SquareAvg.Data()

	for i := range p {
		gi := g[i]
		if hp.WeightDecay != 0 {
			gi += hp.WeightDecay * p[i]
		}
		v[i] = hp.Alpha*v[i] + (1-hp.Alpha)*gi*gi
		p[i] -= hp.LR * gi / (math.Sqrt(v[i]) + hp.Eps)
	}
}
