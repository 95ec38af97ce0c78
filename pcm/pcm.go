// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

// Package pcm implements the byte-level transforms needed to move raw
// tracker-module sample data between the sign, endianness, depth and
// channel-layout conventions of different source formats and target
// audio containers.
package pcm

import "encoding/binary"

// AlignU16 pads b with one trailing zero byte when its length is odd,
// so it can be safely reinterpreted as a sequence of 16-bit words.
// Returns the (possibly unmodified) slice and whether padding occurred.
func AlignU16(b []byte) ([]byte, bool) {
	if len(b)%2 == 0 {
		return b, false
	}
	return append(b, 0), true
}

// FlipSign8 adds 0x80 (with wrap) to every byte, converting signed
// 8-bit PCM to unsigned or back again. Involutive.
func FlipSign8(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[i] = v + 0x80
	}
	return out
}

// FlipSign16 adds 0x8000 (with wrap) to every 16-bit sample, native
// byte order. Involutive. b is aligned to an even length first.
func FlipSign16(b []byte) []byte {
	b, _ = AlignU16(b)
	out := make([]byte, len(b))
	for i := 0; i < len(b); i += 2 {
		v := binary.LittleEndian.Uint16(b[i:])
		binary.LittleEndian.PutUint16(out[i:], v+0x8000)
	}
	return out
}

// ToBE16 byte-swaps each native little-endian 16-bit sample into
// big-endian. b is aligned to an even length first.
func ToBE16(b []byte) []byte {
	b, _ = AlignU16(b)
	out := make([]byte, len(b))
	for i := 0; i < len(b); i += 2 {
		v := binary.LittleEndian.Uint16(b[i:])
		binary.BigEndian.PutUint16(out[i:], v)
	}
	return out
}

// ToLE16 is the inverse of ToBE16: byte-swaps big-endian 16-bit samples
// back to native little-endian.
func ToLE16(b []byte) []byte {
	b, _ = AlignU16(b)
	out := make([]byte, len(b))
	for i := 0; i < len(b); i += 2 {
		v := binary.BigEndian.Uint16(b[i:])
		binary.LittleEndian.PutUint16(out[i:], v)
	}
	return out
}

// scale16to8 is u16::MAX / u8::MAX, the quantization divisor used to
// reduce 16-bit samples to 8-bit.
const scale16to8 = 65535 / 255

// Reduce16To8 quantizes each native-endian u16 sample down to a single
// byte, halving the buffer length. Sign convention of the input is
// preserved in the output; callers follow with FlipSign8 if the source
// was signed and the target expects unsigned, or vice versa.
func Reduce16To8(b []byte) []byte {
	b, _ = AlignU16(b)
	out := make([]byte, len(b)/2)
	for i := 0; i < len(out); i++ {
		v := binary.LittleEndian.Uint16(b[i*2:])
		out[i] = byte(float64(v)/float64(scale16to8) + 0.5)
	}
	return out
}

// Interleave8 converts planar LLLL…RRRR… 8-bit PCM (equal-length
// halves) into interleaved LRLR….
func Interleave8(b []byte) []byte {
	half := len(b) / 2
	left, right := b[:half], b[half:]
	out := make([]byte, len(b))
	for i := 0; i < half; i++ {
		out[2*i] = left[i]
		out[2*i+1] = right[i]
	}
	return out
}

// Deinterleave8 converts interleaved LRLR… 8-bit PCM into planar
// LLLL…RRRR….
func Deinterleave8(b []byte) []byte {
	half := len(b) / 2
	out := make([]byte, len(b))
	for i := 0; i < half; i++ {
		out[i] = b[2*i]
		out[half+i] = b[2*i+1]
	}
	return out
}

// Interleave16 converts planar 16-bit PCM (equal-length halves, each a
// whole number of samples) into interleaved form.
func Interleave16(b []byte) []byte {
	b, _ = AlignU16(b)
	half := len(b) / 2
	halfSamples := half / 2
	out := make([]byte, len(b))
	for i := 0; i < halfSamples; i++ {
		copy(out[4*i:], b[2*i:2*i+2])
		copy(out[4*i+2:], b[half+2*i:half+2*i+2])
	}
	return out
}

// Deinterleave16 converts interleaved 16-bit PCM into planar form.
func Deinterleave16(b []byte) []byte {
	b, _ = AlignU16(b)
	half := len(b) / 2
	halfSamples := half / 2
	out := make([]byte, len(b))
	for i := 0; i < halfSamples; i++ {
		copy(out[2*i:], b[4*i:4*i+2])
		copy(out[half+2*i:], b[4*i+2:4*i+4])
	}
	return out
}

// DeltaDecode8 prefix-sums each byte with wrap, seeded at zero: the
// standard decode for XM's delta-coded 8-bit samples.
func DeltaDecode8(b []byte) []byte {
	out := make([]byte, len(b))
	var old byte
	for i, v := range b {
		old += v
		out[i] = old
	}
	return out
}

// DeltaDecode16 prefix-sums each native-endian 16-bit word with wrap,
// seeded at zero.
func DeltaDecode16(b []byte) []byte {
	b, _ = AlignU16(b)
	out := make([]byte, len(b))
	var old uint16
	for i := 0; i < len(b); i += 2 {
		v := binary.LittleEndian.Uint16(b[i:])
		old += v
		binary.LittleEndian.PutUint16(out[i:], old)
	}
	return out
}

// DeltaEncode8 is the inverse of DeltaDecode8 (adjacent difference);
// used by the XI encoder and by round-trip tests.
func DeltaEncode8(b []byte) []byte {
	out := make([]byte, len(b))
	var prev byte
	for i, v := range b {
		out[i] = v - prev
		prev = v
	}
	return out
}

// DeltaEncode16 is the inverse of DeltaDecode16; used by the XI
// encoder and by round-trip tests.
func DeltaEncode16(b []byte) []byte {
	b, _ = AlignU16(b)
	out := make([]byte, len(b))
	var prev uint16
	for i := 0; i < len(b); i += 2 {
		v := binary.LittleEndian.Uint16(b[i:])
		binary.LittleEndian.PutUint16(out[i:], v-prev)
		prev = v
	}
	return out
}
