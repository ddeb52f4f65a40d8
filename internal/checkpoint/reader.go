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
	"github.com/minima-ml/minima/internal/tensor"
)

// Load reads a checkpoint from r, validating magic, version, checksum and
// tensor bounds before reconstructing the snapshots.
func Load(r io.Reader) (*Checkpoint, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("reading magic: %w", err)
	}
	if string(magic[:]) != MagicBytes {
		return nil, ErrInvalidMagic
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("reading version: %w", err)
	}
	if version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	var stored [sha256.Size]byte
	if _, err := io.ReadFull(r, stored[:]); err != nil {
		return nil, fmt.Errorf("reading checksum: %w", err)
	}

	var hdrLen uint32
	if err := binary.Read(r, binary.LittleEndian, &hdrLen); err != nil {
		return nil, fmt.Errorf("reading header length: %w", err)
	}
	if hdrLen > MaxHeaderSize {
		return nil, ErrHeaderTooLarge
	}

	hdrBytes := make([]byte, hdrLen)
	if _, err := io.ReadFull(r, hdrBytes); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, ErrTruncated
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading data section: %w", err)
	}

	sum := sha256.New()
	sum.Write(hdrBytes)
	sum.Write(data)
	if !bytes.Equal(sum.Sum(nil), stored[:]) {
		return nil, ErrChecksumMismatch
	}

	var hdr header
	if err := json.Unmarshal(hdrBytes, &hdr); err != nil {
		return nil, fmt.Errorf("decoding checkpoint header: %w", err)
	}
	if err := validateLayout(&hdr, int64(len(data))); err != nil {
		return nil, err
	}

	ckpt := &Checkpoint{
		Epoch:     hdr.Epoch,
		Scheduler: hdr.Scheduler,
		Optimizer: optim.Snapshot{
			Rule:    hdr.Rule,
			Records: make(map[int]optim.RecordSnapshot, len(hdr.Records)),
		},
	}
	for _, meta := range hdr.Records {
		rec := optim.RecordSnapshot{Step: meta.Step}
		for _, tm := range meta.Tensors {
			t, err := readTensor(data, tm)
			if err != nil {
				return nil, err
			}
			switch tm.Field {
			case FieldMomentumBuf:
				rec.MomentumBuf = t
			case FieldSquareAvg:
				rec.SquareAvg = t
			case FieldExpAvg:
				rec.ExpAvg = t
			case FieldExpAvgSq:
				rec.ExpAvgSq = t
			default:
				return nil, fmt.Errorf("unknown state field %q for parameter %d", tm.Field, meta.ParamID)
			}
		}
		ckpt.Optimizer.Records[meta.ParamID] = rec
	}
	return ckpt, nil
}

// validateLayout checks every tensor against the data section: in bounds,
// size consistent with its shape, and no two tensors overlapping.
func validateLayout(hdr *header, dataLen int64) error {
	type span struct{ start, end int64 }
	var spans []span

	for _, meta := range hdr.Records {
		for _, tm := range meta.Tensors {
			shape := tensor.Shape(tm.Shape)
			if err := shape.Validate(); err != nil {
				return fmt.Errorf("parameter %d field %q: %w", meta.ParamID, tm.Field, err)
			}
			if tm.Offset < 0 || tm.Size < 0 {
				return fmt.Errorf("parameter %d field %q: %w", meta.ParamID, tm.Field, ErrOutOfBounds)
			}
			if tm.Size != int64(shape.NumElements()*8) {
				return fmt.Errorf("parameter %d field %q: size %d does not match shape %s",
					meta.ParamID, tm.Field, tm.Size, shape)
			}
			if tm.Offset+tm.Size > dataLen {
				return fmt.Errorf("parameter %d field %q: %w", meta.ParamID, tm.Field, ErrOutOfBounds)
			}
			spans = append(spans, span{tm.Offset, tm.Offset + tm.Size})
		}
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	for i := 1; i < len(spans); i++ {
		if spans[i].start < spans[i-1].end {
			return ErrOffsetOverlap
		}
	}
	return nil
}

func readTensor(data []byte, tm tensorMeta) (*tensor.Tensor, error) {
	n := int(tm.Size / 8)
	vals := make([]float64, n)
	for i := 0; i < n; i++ {
		bits := binary.LittleEndian.Uint64(data[tm.Offset+int64(i)*8:])
		vals[i] = math.Float64frombits(bits)
	}
	t, err := tensor.FromSlice(vals, tensor.Shape(tm.Shape))
	if err != nil {
		return nil, fmt.Errorf("reconstructing %q: %w", tm.Field, err)
	}
	return t, nil
}
