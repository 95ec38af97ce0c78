// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectAndParse_UnrecognizedReturnsError(t *testing.T) {
	_, err := DetectAndParse([]byte("definitely not a tracker module"))
	assert.ErrorIs(t, err, ErrUnrecognized)
}

func TestDepth_BitsAndBytes(t *testing.T) {
	assert.Equal(t, 8, U8.Bits())
	assert.Equal(t, 1, U8.Bytes())
	assert.Equal(t, 16, I16.Bits())
	assert.Equal(t, 2, I16.Bytes())
	assert.True(t, U8.Is8Bit())
	assert.False(t, I16.Is8Bit())
	assert.True(t, I8.IsSigned())
	assert.False(t, U16.IsSigned())
}

func TestSample_IndexRaw1(t *testing.T) {
	s := Sample{IndexRaw: 0}
	assert.Equal(t, 1, s.IndexRaw1())
}

func TestSample_DisplayNameFallsBackToFilename(t *testing.T) {
	s := Sample{Filename: "raw.wav", HasFilename: true}
	assert.Equal(t, "raw.wav", s.DisplayName())

	s2 := Sample{Name: "pretty name"}
	assert.Equal(t, "pretty name", s2.DisplayName())
}

func TestSample_Equal(t *testing.T) {
	a := Sample{Pointer: 10, Length: 4}
	b := Sample{Pointer: 10, Length: 999}
	c := Sample{Pointer: 11}
	assert.True(t, a.Equal(&b))
	assert.False(t, a.Equal(&c))
}
