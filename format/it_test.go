// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package format

import (
	"testing"

	"github.com/kelindar/modrip/internal/rippertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIT_ParsesMinimalModule(t *testing.T) {
	pcm := []byte{0x10, 0x20, 0x30, 0x40}
	data := rippertest.ITModule(rippertest.ITOptions{
		Title: "demo tune",
		PCM:   pcm,
		Rate:  22050,
	})

	parsed, err := DetectAndParse(data)
	require.NoError(t, err)
	assert.Equal(t, "IT", parsed.FormatLabel)
	assert.Equal(t, "demo tune", parsed.DisplayName)
	require.Len(t, parsed.Samples, 1)

	s := parsed.Samples[0]
	assert.Equal(t, uint32(22050), s.Rate)
	assert.Equal(t, uint32(len(pcm)), s.Length)
	assert.False(t, s.Compressed)
	assert.Equal(t, I8, s.Depth)
	assert.Equal(t, pcm, parsed.Raw[s.Pointer:s.Pointer+s.Length])
}

func TestIT_MarksMPTMCompatibilityMarker(t *testing.T) {
	data := rippertest.ITModule(rippertest.ITOptions{
		PCM:       []byte{1, 2},
		CompatVer: 0x0888,
	})
	parsed, err := DetectAndParse(data)
	require.NoError(t, err)
	assert.Equal(t, "MPTM", parsed.FormatLabel)
}

func TestIT_IT215FlagFromCompatVersion(t *testing.T) {
	data := rippertest.ITModule(rippertest.ITOptions{PCM: []byte{1, 2}, CompatVer: 0x0215})
	parsed, err := DetectAndParse(data)
	require.NoError(t, err)
	assert.True(t, parsed.IT215)
}

func TestIT_StereoAnd16BitFlags(t *testing.T) {
	data := rippertest.ITModule(rippertest.ITOptions{
		PCM:    []byte{0, 0, 1, 0, 2, 0, 3, 0},
		Stereo: true,
		Bits16: true,
	})
	parsed, err := DetectAndParse(data)
	require.NoError(t, err)
	require.Len(t, parsed.Samples, 1)
	s := parsed.Samples[0]
	assert.Equal(t, I16, s.Depth)
	assert.True(t, s.Channel.Stereo)
	assert.Equal(t, 2, s.Channel.Channels())
}

func TestIT_RejectsZirconia(t *testing.T) {
	data := append([]byte("ziRCONia"), make([]byte, 32)...)
	_, err := DetectAndParse(data)
	assert.Error(t, err)
}

func TestIT_RejectsGarbageMagic(t *testing.T) {
	_, err := DetectAndParse([]byte("not a module at all, just garbage bytes"))
	assert.Error(t, err)
}

func TestIT_CompressedFlagPreserved(t *testing.T) {
	data := rippertest.ITModule(rippertest.ITOptions{
		PCM:        []byte{0x00, 0x01}, // not real bitstream, just presence
		Compressed: true,
	})
	parsed, err := DetectAndParse(data)
	require.NoError(t, err)
	require.Len(t, parsed.Samples, 1)
	assert.True(t, parsed.Samples[0].Compressed)
}
