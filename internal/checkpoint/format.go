// Package checkpoint serializes the engine's training state (optimizer
// snapshot, scheduler snapshot and epoch counter) to a compact binary
// container.
//
// Container layout (.minima, version 1):
//
//	[magic "MNMA" 4B][version uint32 LE][checksum 32B][header length uint32 LE]
//	[JSON header][float64 data section, little-endian]
//
// The checksum is SHA-256 over the JSON header and the data section. The
// JSON header carries the epoch, the rule name, the scheduler snapshot and
// per-record tensor metadata (field, shape, offset, size); the data section
// holds the raw accumulator values. Load validates magic, version, checksum
// and tensor bounds before reconstructing anything, so a corrupted file
// never yields a partially restored state.
package checkpoint

import (
	"github.com/minima-ml/minima/internal/sched"
)

// Format constants.
const (
	MagicBytes    = "MNMA"
	FormatVersion = 1
	MaxHeaderSize = 16 << 20 // sanity bound for the JSON header
)

// State field names used in tensor metadata.
const (
	FieldMomentumBuf = "momentum_buffer"
	FieldSquareAvg   = "square_avg"
	FieldExpAvg      = "exp_avg"
	FieldExpAvgSq    = "exp_avg_sq"
)

// header is the JSON header of a .minima file.
type header struct {
	FormatVersion int             `json:"format_version"`
	Epoch         int             `json:"epoch"`
	Rule          string          `json:"rule"`
	Scheduler     *sched.Snapshot `json:"scheduler,omitempty"`
	Records       []recordMeta    `json:"records"`
}

// recordMeta describes one parameter's state record.
type recordMeta struct {
	ParamID int          `json:"param_id"`
	Step    int64        `json:"step"`
	Tensors []tensorMeta `json:"tensors"`
}

// tensorMeta describes one accumulator tensor in the data section.
type tensorMeta struct {
	Field  string `json:"field"`
	Shape  []int  `json:"shape"`
	Offset int64  `json:"offset"` // bytes from the start of the data section
	Size   int64  `json:"size"`   // bytes
}
