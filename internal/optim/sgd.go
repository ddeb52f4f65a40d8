package optim

import (
	"gonum.org/v1/gonum/floats"

	"github.com/minima-ml/minima/internal/tensor"
)

// SGD implements stochastic gradient descent with momentum and L2 weight
// decay.
//
// Update rule (per element, g = grad + weight_decay * param):
//
//	M = momentum * M_prev + lr * g
//	param = param - M
//
// The velocity buffer carries the lr factor, so the very first update with
// an empty buffer reduces to M = lr * g. With momentum = 0 and
// weight_decay = 0 this is plain gradient descent: param -= lr * grad.
type SGD struct{}

// Name identifies the rule in snapshots.
func (SGD) Name() string { return "sgd" }

// Defaults returns hp unchanged: SGD has no non-zero defaults. Momentum and
// weight decay both default to off.
func (SGD) Defaults(hp Hyperparams) Hyperparams { return hp }

// Validate checks lr, momentum and weight decay domains.
func (SGD) Validate(hp Hyperparams) error {
	if err := validateLR(hp); err != nil {
		return err
	}
	if hp.Momentum < 0 || hp.Momentum >= 1 {
		return &ConfigError{Field: KeyMomentum, Value: hp.Momentum, Reason: "must be in [0, 1)"}
	}
	return validateWeightDecay(hp)
}

// Apply performs the momentum-SGD update in place.
func (SGD) Apply(param, grad *tensor.Tensor, rec *Record, hp Hyperparams) {
	if rec.MomentumBuf == nil {
		rec.MomentumBuf = tensor.Zeros(param.Shape())
	}

	p := param.Data()
	g := grad.Data()
	m := rec.MomentumBuf.Data()

	if hp.WeightDecay == 0 {
		// M = momentum*M + lr*g; param -= M
		floats.Scale(hp.Momentum, m)
		floats.AddScaled(m, hp.LR, g)
		floats.Sub(p, m)
		return
	}

	for i := range p {
		gi := g[i] + hp.WeightDecay*p[i]
		m[i] = hp.Momentum*m[i] + hp.LR*gi
		p[i] -= m[i]
	}
}
