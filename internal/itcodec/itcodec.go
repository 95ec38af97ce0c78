// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

// Package itcodec implements the Impulse Tracker compressed-sample
// bitstream decoder: a variable-width bit reader feeding one or two
// chained integrator accumulators, in both the 8-bit and 16-bit
// variants (IT2.14 and the IT2.15 second-integrator extension).
//
// Ported and generalized from the mukunda/modlib Go port of OpenMPT's
// ITCompression.cpp, cross-checked against the width-update regimes of
// B0ney/xmodits-lib's Rust decompressor (the canonical reference for
// the exact border/shift arithmetic below).
package itcodec

import (
	"io"

	"github.com/charmbracelet/log"
)

// Options selects the decompression variant.
type Options struct {
	// IT215 selects the IT2.15 chained second-integrator output; when
	// false, the plain IT2.14 first-integrator output is emitted.
	IT215 bool
	// Logger receives a warning when a block soft-aborts on an invalid
	// bit width. A nil Logger discards these.
	Logger *log.Logger
}

var discardLogger = log.New(io.Discard)

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return discardLogger
}

// Decode8 decompresses an IT2.14/IT2.15 8-bit bitstream starting at the
// front of buf, producing exactly up to n signed 8-bit PCM bytes. On a
// malformed bit width it returns whatever was decoded so far and a nil
// error (soft abort, per spec); only a truncated/corrupt block
// structure (premature EOF) is a hard error.
func Decode8(buf []byte, n int, opt Options) ([]byte, error) {
	out := make([]byte, 0, n)
	r := newBitReader(buf)
	remaining := n

	for remaining > 0 {
		if err := r.readNextBlock(); err != nil {
			return out, err
		}

		blockLen := remaining
		if blockLen > 0x8000 {
			blockLen = 0x8000
		}

		width := uint8(9)
		var d1, d2 int8

		for pos := 0; pos < blockLen; {
			if width > 9 {
				opt.logger().Warn("it sample decode: invalid bit width, soft-aborting", "width", width)
				return out, nil
			}

			value, err := r.readBits(width)
			if err != nil {
				return out, err
			}

			switch {
			case width < 7: // mode A: 1-6 bits
				if value == uint32(1)<<(width-1) {
					v, err := r.readBits(3)
					if err != nil {
						return out, err
					}
					width = nextWidth(uint8(v+1), width)
					continue
				}
			case width < 9: // mode B: 7-8 bits
				border := uint32(0xFF>>(9-width)) - 4
				if value > border && value <= border+8 {
					width = nextWidth(uint8(value-border), width)
					continue
				}
			default: // mode C: 9 bits
				if value&0x100 != 0 {
					width = uint8((value + 1) & 0xFF)
					continue
				}
			}

			var sample int8
			if width < 8 {
				shift := 8 - width
				sample = int8(uint8(value) << shift)
				sample >>= shift
			} else {
				sample = int8(uint8(value))
			}

			d1 += sample
			d2 += d1
			if opt.IT215 {
				out = append(out, byte(d2))
			} else {
				out = append(out, byte(d1))
			}
			pos++
		}

		remaining -= blockLen
	}
	return out, nil
}

// Decode16 is the 16-bit counterpart of Decode8, emitting n native
// little-endian int16 samples (2*n bytes).
func Decode16(buf []byte, n int, opt Options) ([]byte, error) {
	out := make([]byte, 0, n*2)
	r := newBitReader(buf)
	remaining := n

	for remaining > 0 {
		if err := r.readNextBlock(); err != nil {
			return out, err
		}

		blockLen := remaining
		if blockLen > 0x4000 {
			blockLen = 0x4000
		}

		width := uint8(17)
		var d1, d2 int16

		for pos := 0; pos < blockLen; {
			if width > 17 {
				opt.logger().Warn("it sample decode: invalid bit width, soft-aborting", "width", width)
				return out, nil
			}

			value, err := r.readBits(width)
			if err != nil {
				return out, err
			}

			switch {
			case width < 7: // mode A: 1-6 bits
				if value == uint32(1)<<(width-1) {
					v, err := r.readBits(4)
					if err != nil {
						return out, err
					}
					width = nextWidth(uint8(v+1), width)
					continue
				}
			case width < 17: // mode B: 7-16 bits
				border := uint32(0xFFFF>>(17-width)) - 8
				if value > border && value <= border+16 {
					width = nextWidth(uint8(value-border), width)
					continue
				}
			default: // mode C: 17 bits
				if value&0x10000 != 0 {
					width = uint8((value + 1) & 0xFF)
					continue
				}
			}

			var sample int16
			if width < 16 {
				shift := 16 - width
				sample = int16(uint16(value) << shift)
				sample >>= shift
			} else {
				sample = int16(uint16(value))
			}

			d1 += sample
			d2 += d1
			var emit int16
			if opt.IT215 {
				emit = d2
			} else {
				emit = d1
			}
			out = append(out, byte(emit), byte(emit>>8))
			pos++
		}

		remaining -= blockLen
	}
	return out, nil
}

// nextWidth applies the shared "insert a gap past the current width"
// rule used by all three width-update regimes.
func nextWidth(val, width uint8) uint8 {
	if val < width {
		return val
	}
	return val + 1
}
