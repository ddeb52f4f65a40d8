package optim

import (
	"github.com/minima-ml/minima/internal/nn"
	"github.com/minima-ml/minima/internal/tensor"
)

// Record is the persistent per-parameter optimizer state.
//
// Tensor fields stay nil until the owning rule first touches them; absence
// means "no history yet", not an error. Every non-nil tensor field has the
// parameter's shape.
type Record struct {
	MomentumBuf *tensor.Tensor // SGD velocity buffer (carries the lr factor)
	SquareAvg   *tensor.Tensor // RMSProp running average of squared gradients
	ExpAvg      *tensor.Tensor // Adam first moment estimate
	ExpAvgSq    *tensor.Tensor // Adam second moment estimate
	Step        int64          // Adam per-parameter timestep for bias correction
}

func (r *Record) clone() RecordSnapshot {
	snap := RecordSnapshot{Step: r.Step}
	if r.MomentumBuf != nil {
		snap.MomentumBuf = r.MomentumBuf.Clone()
	}
	if r.SquareAvg != nil {
		snap.SquareAvg = r.SquareAvg.Clone()
	}
	if r.ExpAvg != nil {
		snap.ExpAvg = r.ExpAvg.Clone()
	}
	if r.ExpAvgSq != nil {
		snap.ExpAvgSq = r.ExpAvgSq.Clone()
	}
	return snap
}

// RecordSnapshot is a deep copy of one Record, detached from the live state.
type RecordSnapshot struct {
	MomentumBuf *tensor.Tensor
	SquareAvg   *tensor.Tensor
	ExpAvg      *tensor.Tensor
	ExpAvgSq    *tensor.Tensor
	Step        int64
}

// Snapshot is a self-contained, order-independent export of optimizer state,
// keyed by the dense parameter id assigned at optimizer construction.
type Snapshot struct {
	Rule    string
	Records map[int]RecordSnapshot
}

// state is the arena of per-parameter records, indexed by parameter id.
// Records are created lazily on the first Step that touches a parameter.
type state struct {
	records []*Record
}

func newState(numParams int) *state {
	return &state{records: make([]*Record, numParams)}
}

// record returns the record for a parameter id, creating an empty one on
// first access.
func (s *state) record(id int) *Record {
	if s.records[id] == nil {
		s.records[id] = &Record{}
	}
	return s.records[id]
}

// export deep-copies all non-empty records into a Snapshot.
func (s *state) export(rule string) Snapshot {
	snap := Snapshot{
		Rule:    rule,
		Records: make(map[int]RecordSnapshot),
	}
	for id, rec := range s.records {
		if rec == nil {
			continue
		}
		snap.Records[id] = rec.clone()
	}
	return snap
}

// importSnapshot atomically replaces the arena's contents with the snapshot.
//
// Every record is validated against the live parameter set before anything
// is applied: an unknown id, a rule mismatch, or a tensor field whose shape
// differs from its parameter's fails with StateMismatchError and leaves the
// current state untouched.
func (s *state) importSnapshot(snap Snapshot, rule string, params []*nn.Parameter) error {
	if snap.Records == nil {
		return ErrNilSnapshot
	}
	if snap.Rule != "" && snap.Rule != rule {
		return &StateMismatchError{
			Detail: "snapshot was taken with rule " + snap.Rule + ", optimizer uses " + rule,
		}
	}

	fresh := make([]*Record, len(params))
	for id, rec := range snap.Records {
		if id < 0 || id >= len(params) {
			return &StateMismatchError{
				ParamID: id,
				Detail:  "snapshot references a parameter id outside the live model",
			}
		}
		want := params[id].Value().Shape()
		restored := &Record{Step: rec.Step}
		fields := []struct {
			name string
			src  *tensor.Tensor
			dst  **tensor.Tensor
		}{
			{"momentum_buffer", rec.MomentumBuf, &restored.MomentumBuf},
			{"square_avg", rec.SquareAvg, &restored.SquareAvg},
			{"exp_avg", rec.ExpAvg, &restored.ExpAvg},
			{"exp_avg_sq", rec.ExpAvgSq, &restored.ExpAvgSq},
		}
		for _, f := range fields {
			if f.src == nil {
				continue
			}
			if !f.src.Shape().Equal(want) {
				return &StateMismatchError{
					ParamID: id,
					Field:   f.name,
					Want:    want,
					Got:     f.src.Shape(),
				}
			}
			*f.dst = f.src.Clone()
		}
		fresh[id] = restored
	}

	s.records = fresh
	return nil
}
