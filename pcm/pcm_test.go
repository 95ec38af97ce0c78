// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package pcm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlipSign8_Involutive(t *testing.T) {
	src := []byte{0x00, 0x40, 0x80, 0xC0, 0xFF}
	once := FlipSign8(src)
	twice := FlipSign8(once)
	assert.Equal(t, src, twice)
}

func TestFlipSign8_KnownVector(t *testing.T) {
	// matches spec boundary scenario S7
	got := FlipSign8([]byte{0x00, 0x40, 0xC0, 0xFF})
	assert.Equal(t, []byte{0x80, 0xC0, 0x40, 0x7F}, got)
}

func TestFlipSign16_Involutive(t *testing.T) {
	src := []byte{0x00, 0x00, 0xFF, 0x7F, 0x00, 0x80}
	once := FlipSign16(src)
	twice := FlipSign16(once)
	assert.Equal(t, src, twice)
}

func TestToBEToLE_RoundTrip(t *testing.T) {
	src := []byte{0x01, 0x02, 0x03, 0x04}
	be := ToBE16(src)
	back := ToLE16(be)
	assert.Equal(t, src, back)
}

func TestAlignU16_PadsOddLength(t *testing.T) {
	out, padded := AlignU16([]byte{0x01, 0x02, 0x03})
	assert.True(t, padded)
	assert.Equal(t, 0, len(out)%2)
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x00}, out)
}

func TestAlignU16_EvenUnchanged(t *testing.T) {
	out, padded := AlignU16([]byte{0x01, 0x02})
	assert.False(t, padded)
	assert.Equal(t, []byte{0x01, 0x02}, out)
}

func TestInterleaveDeinterleave8_RoundTrip(t *testing.T) {
	planar := []byte{1, 1, 1, 1, 1, 0, 0, 0, 0, 0}
	interleaved := Interleave8(planar)
	assert.Equal(t, []byte{1, 0, 1, 0, 1, 0, 1, 0, 1, 0}, interleaved)
	assert.Equal(t, planar, Deinterleave8(interleaved))
}

func TestInterleaveDeinterleave16_RoundTrip(t *testing.T) {
	planar := []byte{0x01, 0x00, 0x02, 0x00, 0xAA, 0x00, 0xBB, 0x00}
	interleaved := Interleave16(planar)
	assert.Equal(t, planar, Deinterleave16(interleaved))
}

func TestDeltaDecode8_RoundTrip(t *testing.T) {
	encoded := []byte{5, 250, 10, 0}
	decoded := DeltaDecode8(encoded)
	reencoded := DeltaEncode8(decoded)
	assert.Equal(t, encoded, reencoded)
}

func TestDeltaDecode16_RoundTrip(t *testing.T) {
	encoded := []byte{0x10, 0x00, 0xF0, 0xFF, 0x20, 0x00}
	decoded := DeltaDecode16(encoded)
	reencoded := DeltaEncode16(decoded)
	assert.Equal(t, encoded, reencoded)
}

func TestReduce16To8_HalvesLength(t *testing.T) {
	src := []byte{0x00, 0x00, 0xFF, 0xFF, 0x00, 0x80}
	out := Reduce16To8(src)
	assert.Equal(t, 3, len(out))
}
