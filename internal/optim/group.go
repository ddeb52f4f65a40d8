package optim

import (
	"fmt"

	"github.com/minima-ml/minima/internal/nn"
)

// GroupConfig describes one parameter group at optimizer construction.
//
// Groups partition the parameter set: a parameter may belong to exactly one
// group. Name is optional and used only for diagnostics.
type GroupConfig struct {
	Name        string
	Params      []*nn.Parameter
	Hyperparams Hyperparams
}

// Group is a live parameter group inside an optimizer: an immutable ordered
// set of parameters plus a mutable hyperparameter record.
type Group struct {
	name   string
	ids    []int // dense parameter ids, indices into the optimizer's flat set
	params []*nn.Parameter
	hp     Hyperparams
}

// Name returns the group's diagnostic name.
func (g *Group) Name() string { return g.name }

// Len returns the number of parameters in the group.
func (g *Group) Len() int { return len(g.params) }

// Hyperparams returns a copy of the group's current hyperparameters.
func (g *Group) Hyperparams() Hyperparams { return g.hp }

// LR returns the group's current learning rate.
func (g *Group) LR() float64 { return g.hp.LR }

// SetLR overwrites the group's learning rate. Takes effect on the next Step.
func (g *Group) SetLR(lr float64) { g.hp.LR = lr }

// Get reads one hyperparameter by key name.
func (g *Group) Get(key string) (float64, error) { return g.hp.Get(key) }

// Set writes one hyperparameter by key name. Takes effect on the next Step.
func (g *Group) Set(key string, v float64) error { return g.hp.Set(key, v) }

func buildGroups(rule Rule, configs []GroupConfig) ([]*Group, []*nn.Parameter, error) {
	if len(configs) == 0 {
		return nil, nil, &ConfigError{Field: "groups", Reason: "at least one parameter group is required"}
	}

	groups := make([]*Group, 0, len(configs))
	var flat []*nn.Parameter
	seen := make(map[*nn.Parameter]string)

	for gi, cfg := range configs {
		name := cfg.Name
		if name == "" {
			name = fmt.Sprintf("group%d", gi)
		}
		if len(cfg.Params) == 0 {
			return nil, nil, fmt.Errorf("group %q: %w", name, ErrEmptyGroup)
		}

		hp := rule.Defaults(cfg.Hyperparams)
		if err := rule.Validate(hp); err != nil {
			return nil, nil, fmt.Errorf("group %q: %w", name, err)
		}

		g := &Group{
			name:   name,
			ids:    make([]int, 0, len(cfg.Params)),
			params: make([]*nn.Parameter, 0, len(cfg.Params)),
			hp:     hp,
		}
		for _, p := range cfg.Params {
			if p == nil {
				return nil, nil, &ConfigError{Field: "params", Reason: fmt.Sprintf("group %q contains a nil parameter", name)}
			}
			if prev, dup := seen[p]; dup {
				return nil, nil, fmt.Errorf("parameter %q in groups %q and %q: %w",
					p.Name(), prev, name, ErrDuplicate)
			}
			seen[p] = name
			g.ids = append(g.ids, len(flat))
			g.params = append(g.params, p)
			flat = append(flat, p)
		}
		groups = append(groups, g)
	}
	return groups, flat, nil
}
