package optim

import (
	"math"

	"github.com/minima-ml/minima/internal/tensor"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Update rule (per element, g = grad + weight_decay * param, t incremented
// once per step the parameter receives a gradient):
//
//	M = beta1 * M_prev + (1 - beta1) * g       // first moment
//	V = beta2 * V_prev + (1 - beta2) * g²      // second moment
//	m_hat = M / (1 - beta1^t)                  // bias correction
//	v_hat = V / (1 - beta2^t)
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)
//
// The timestep lives in the per-parameter record, so a parameter that sits
// out an iteration (nil gradient) keeps its bias-correction schedule intact.
//
// Reference: Kingma & Ba, "Adam: A Method for Stochastic Optimization", 2014.
type Adam struct{}

// Name identifies the rule in snapshots.
func (Adam) Name() string { return "adam" }

// Defaults fills the Adam defaults: beta1 0.9, beta2 0.999, eps 1e-8.
func (Adam) Defaults(hp Hyperparams) Hyperparams {
	if hp.Beta1 == 0 {
		hp.Beta1 = 0.9
	}
	if hp.Beta2 == 0 {
		hp.Beta2 = 0.999
	}
	if hp.Eps == 0 {
		hp.Eps = 1e-8
	}
	return hp
}

// Validate checks lr, betas, eps and weight decay domains.
func (Adam) Validate(hp Hyperparams) error {
	if err := validateLR(hp); err != nil {
		return err
	}
	if hp.Beta1 <= 0 || hp.Beta1 >= 1 {
		return &ConfigError{Field: KeyBeta1, Value: hp.Beta1, Reason: "must be in (0, 1)"}
	}
	if hp.Beta2 <= 0 || hp.Beta2 >= 1 {
		return &ConfigError{Field: KeyBeta2, Value: hp.Beta2, Reason: "must be in (0, 1)"}
	}
	if err := validateEps(hp); err != nil {
		return err
	}
	return validateWeightDecay(hp)
}

// Apply performs the Adam update in place.
func (Adam) Apply(param, grad *tensor.Tensor, rec *Record, hp Hyperparams) {
	if rec.ExpAvg == nil {
		rec.ExpAvg = tensor.Zeros(param.Shape())
	}
	if rec.ExpAvgSq == nil {
		rec.ExpAvgSq = tensor.Zeros(param.Shape())
	}
	rec.Step++

	biasCorrection1 := 1 - math.Pow(hp.Beta1, float64(rec.Step))
	biasCorrection2 := 1 - math.Pow(hp.Beta2, float64(rec.Step))

	p := param.Data()
	g := grad.Data()
	m := rec.ExpAvg.Data()
	v := rec.ExpAvgSq.Data()

	for i := range p {
		gi := g[i]
		if hp.WeightDecay != 0 {
			gi += hp.WeightDecay * p[i]
		}
		m[i] = hp.Beta1*m[i] + (1-hp.Beta1)*gi
		v[i] = hp.Beta2*v[i] + (1-hp.Beta2)*gi*gi

		mHat := m[i] / biasCorrection1
		vHat := v[i] / biasCorrection2
		p[i] -= hp.LR * mHat / (math.Sqrt(vHat) + hp.Eps)
	}
}
