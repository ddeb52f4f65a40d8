package optim

// Hyperparameter key names accepted by Hyperparam/SetHyperparam.
const (
	KeyLR          = "lr"
	KeyMomentum    = "momentum"
	KeyWeightDecay = "weight_decay"
	KeyAlpha       = "alpha"
	KeyBeta1       = "beta1"
	KeyBeta2       = "beta2"
	KeyEps         = "eps"
)

// Hyperparams is the closed per-group hyperparameter record.
//
// Each update rule validates the subset of fields it consumes at optimizer
// construction; fields a rule ignores may be left zero. Values are mutable
// at any time (directly or through a scheduler) and take effect on the next
// Step. Mutation is never validated retroactively, only construction is.
type Hyperparams struct {
	LR          float64 // Learning rate (all rules; must be > 0)
	Momentum    float64 // Momentum factor (SGD; range [0, 1))
	WeightDecay float64 // L2 penalty coefficient (all rules; >= 0)
	Alpha       float64 // Smoothing constant (RMSProp; range (0, 1), default 0.99)
	Beta1       float64 // First-moment decay (Adam; range (0, 1), default 0.9)
	Beta2       float64 // Second-moment decay (Adam; range (0, 1), default 0.999)
	Eps         float64 // Denominator stabilizer (RMSProp/Adam; default 1e-8)
}

// Get returns the value stored under a hyperparameter key.
//
// Unknown keys fail with ConfigError.
func (h *Hyperparams) Get(key string) (float64, error) {
	switch key {
	case KeyLR:
		return h.LR, nil
	case KeyMomentum:
		return h.Momentum, nil
	case KeyWeightDecay:
		return h.WeightDecay, nil
	case KeyAlpha:
		return h.Alpha, nil
	case KeyBeta1:
		return h.Beta1, nil
	case KeyBeta2:
		return h.Beta2, nil
	case KeyEps:
		return h.Eps, nil
	default:
		return 0, &ConfigError{Field: key, Reason: "unknown hyperparameter"}
	}
}

// Set stores a value under a hyperparameter key.
//
// Unknown keys fail with ConfigError. The value's domain is not re-checked:
// schedulers legitimately drive lr toward values (e.g. a cosine floor of 0)
// that would be rejected as a starting configuration.
func (h *Hyperparams) Set(key string, v float64) error {
	switch key {
	case KeyLR:
		h.LR = v
	case KeyMomentum:
		h.Momentum = v
	case KeyWeightDecay:
		h.WeightDecay = v
	case KeyAlpha:
		h.Alpha = v
	case KeyBeta1:
		h.Beta1 = v
	case KeyBeta2:
		h.Beta2 = v
	case KeyEps:
		h.Eps = v
	default:
		return &ConfigError{Field: key, Reason: "unknown hyperparameter"}
	}
	return nil
}
