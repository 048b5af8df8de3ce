// Package formats provides encoders for the runtime's binary asset formats:
// the CMSH collision mesh and the chunked SCNE scene description.
//
// All multi-byte fields are big-endian.
package formats

import (
	"errors"
	"math"
)

// Shared encoder errors.
var (
	ErrCapacityOverflow = errors.New("count exceeds field capacity")
	ErrIndexOutOfRange  = errors.New("vertex index out of range")
)

// MaxCount16 is the largest count or index a 16-bit field can hold.
const MaxCount16 = math.MaxUint16

// MaxCount32 is the largest count a 32-bit field can hold.
const MaxCount32 = math.MaxUint32
