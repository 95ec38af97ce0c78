// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

// Package format parses the supported tracker module containers (IT,
// S3M, XM, MOD, UMX, and the IT-superset MPTM) into a uniform sample
// table, retaining the original file bytes so PCM can be sliced (or, for
// compressed IT/MPTM samples, decompressed) on demand.
package format

// Depth describes a sample's bit width and signedness.
type Depth int

const (
	U8 Depth = iota
	I8
	U16
	I16
)

// Bits returns the bit width of one sample.
func (d Depth) Bits() int {
	if d == U8 || d == I8 {
		return 8
	}
	return 16
}

// Bytes returns the byte width of one sample.
func (d Depth) Bytes() int { return d.Bits() / 8 }

// Is8Bit reports whether d is an 8-bit depth.
func (d Depth) Is8Bit() bool { return d == U8 || d == I8 }

// IsSigned reports whether d is a signed depth.
func (d Depth) IsSigned() bool { return d == I8 || d == I16 }

func (d Depth) String() string {
	switch d {
	case U8:
		return "U8"
	case I8:
		return "I8"
	case U16:
		return "U16"
	case I16:
		return "I16"
	default:
		return "Depth(?)"
	}
}

// Channel describes mono/stereo layout, and for stereo whether the PCM
// is interleaved (LRLR…) or planar (LLLL…RRRR…).
type Channel struct {
	Stereo      bool
	Interleaved bool
}

// Channels returns 1 for mono, 2 for stereo.
func (c Channel) Channels() int {
	if c.Stereo {
		return 2
	}
	return 1
}

// LoopKind enumerates how a sample's loop region plays back.
type LoopKind int

const (
	LoopOff LoopKind = iota
	LoopForward
	LoopBackward
	LoopPingPong
)

// Loop describes a sample's loop region, in frames.
type Loop struct {
	Start uint32
	Stop  uint32
	Kind  LoopKind
}

// Sample is one row of a module's sample table.
type Sample struct {
	// Filename is the raw on-disk name as embedded by the source
	// format, when that format records one separately from Name.
	Filename    string
	HasFilename bool

	Name string

	// Length is the PCM length in bytes, normalized at parse time
	// (frames * channels * depth.Bytes()) even for compressed samples,
	// where it's the expected decompressed length.
	Length uint32

	// Rate is the sample rate in Hz.
	Rate uint32

	// Pointer is the byte offset of the sample's PCM (or, if
	// Compressed, its bitstream) inside the module's raw buffer.
	Pointer uint32

	Depth   Depth
	Channel Channel

	// IndexRaw is this sample's zero-based slot in the module's native
	// sample table; some native slots may be absent from Samples when
	// they were empty or out of bounds.
	IndexRaw uint16

	// Compressed is true when the PCM at Pointer is an IT bitstream,
	// not raw PCM.
	Compressed bool

	// DeltaCoded is true when the PCM at Pointer is stored as
	// successive differences (XM's sample encoding) rather than
	// absolute values, and must be prefix-summed back to real PCM
	// before it's usable.
	DeltaCoded bool

	Looping Loop
}

// IndexRaw1 returns the sample's 1-based position, as displayed by the
// tools that originally wrote the module.
func (s *Sample) IndexRaw1() int { return int(s.IndexRaw) + 1 }

// DisplayName returns Name, falling back to Filename when Name is
// empty (mirrors the convention of formats, like S3M, that always
// carry a filename but not always a readable name).
func (s *Sample) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	if s.HasFilename {
		return s.Filename
	}
	return ""
}

// PointerRange returns the [Pointer, Pointer+Length) byte range this
// sample occupies in the module's raw buffer. Meaningless for
// compressed samples, whose true extent is only known after decoding.
func (s *Sample) PointerRange() (start, end uint32) {
	return s.Pointer, s.Pointer + s.Length
}

// Equal reports whether two samples reference the same PCM region,
// the only equality tracker formats make meaningful.
func (s *Sample) Equal(other *Sample) bool {
	return s.Pointer == other.Pointer
}

// Parsed is the uniform result of parsing any supported module
// container.
type Parsed struct {
	DisplayName string
	FormatLabel string
	Raw         []byte
	Samples     []Sample

	// IT215 selects the IT2.15 chained-integrator decompression
	// variant for any Compressed sample; meaningless otherwise.
	IT215 bool
}
