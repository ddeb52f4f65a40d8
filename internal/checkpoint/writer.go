package checkpoint

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/minima-ml/minima/internal/optim"
	"github.com/minima-ml/minima/internal/sched"
	"github.com/minima-ml/minima/internal/tensor"
)

// Checkpoint bundles the engine state persisted between training runs.
type Checkpoint struct {
	Epoch     int
	Optimizer optim.Snapshot
	Scheduler *sched.Snapshot
}

// Save writes the checkpoint to w in the .minima container format.
func Save(w io.Writer, ckpt *Checkpoint) error {
	hdr := header{
		FormatVersion: FormatVersion,
		Epoch:         ckpt.Epoch,
		Rule:          ckpt.Optimizer.Rule,
		Scheduler:     ckpt.Scheduler,
	}

	// Deterministic output: records sorted by parameter id.
	ids := make([]int, 0, len(ckpt.Optimizer.Records))
	for id := range ckpt.Optimizer.Records {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var data bytes.Buffer
	for _, id := range ids {
		rec := ckpt.Optimizer.Records[id]
		meta := recordMeta{ParamID: id, Step: rec.Step}
		for _, f := range []struct {
			name string
			t    *tensor.Tensor
		}{
			{FieldMomentumBuf, rec.MomentumBuf},
			{FieldSquareAvg, rec.SquareAvg},
			{FieldExpAvg, rec.ExpAvg},
			{FieldExpAvgSq, rec.ExpAvgSq},
		} {
			if f.t == nil {
				continue
			}
			meta.Tensors = append(meta.Tensors, tensorMeta{
				Field:  f.name,
				Shape:  f.t.Shape().Clone(),
				Offset: int64(data.Len()),
				Size:   int64(f.t.NumElements() * 8),
			})
			writeFloat64s(&data, f.t.Data())
		}
		hdr.Records = append(hdr.Records, meta)
	}

	hdrBytes, err := json.Marshal(hdr)
	if err != nil {
		return fmt.Errorf("encoding checkpoint header: %w", err)
	}
	if len(hdrBytes) > MaxHeaderSize {
		return ErrHeaderTooLarge
	}

	sum := sha256.New()
	sum.Write(hdrBytes)
	sum.Write(data.Bytes())

	if _, err := io.WriteString(w, MagicBytes); err != nil {
		return fmt.Errorf("writing magic: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(FormatVersion)); err != nil {
		return fmt.Errorf("writing version: %w", err)
	}
	if _, err := w.Write(sum.Sum(nil)); err != nil {
		return fmt.Errorf("writing checksum: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(hdrBytes))); err != nil {
		return fmt.Errorf("writing header length: %w", err)
	}
	if _, err := w.Write(hdrBytes); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if _, err := w.Write(data.Bytes()); err != nil {
		return fmt.Errorf("writing data section: %w", err)
	}
	return nil
}

func writeFloat64s(buf *bytes.Buffer, vals []float64) {
	var scratch [8]byte
	for _, v := range vals {
		binary.LittleEndian.PutUint64(scratch[:], math.Float64bits(v))
		buf.Write(scratch[:])
	}
}
