// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package format

import (
	"testing"

	"github.com/kelindar/modrip/internal/rippertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestS3M_ParsesMinimalModule(t *testing.T) {
	pcm := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}
	data := rippertest.S3MModule(rippertest.S3MOptions{
		Title:  "s3m demo",
		PCM:    pcm,
		Rate:   32000,
		Signed: true,
	})

	parsed, err := DetectAndParse(data)
	require.NoError(t, err)
	assert.Equal(t, "S3M", parsed.FormatLabel)
	require.Len(t, parsed.Samples, 1)

	s := parsed.Samples[0]
	assert.Equal(t, uint32(32000), s.Rate)
	assert.Equal(t, uint32(len(pcm)), s.Length)
	assert.Equal(t, I8, s.Depth)
	assert.Equal(t, pcm, parsed.Raw[s.Pointer:s.Pointer+s.Length])
}

func TestS3M_UnsignedWhenFlagZero(t *testing.T) {
	data := rippertest.S3MModule(rippertest.S3MOptions{PCM: []byte{1, 2}, Signed: false})
	parsed, err := DetectAndParse(data)
	require.NoError(t, err)
	require.Len(t, parsed.Samples, 1)
	assert.Equal(t, U8, parsed.Samples[0].Depth)
}

func TestS3M_StereoBits16(t *testing.T) {
	data := rippertest.S3MModule(rippertest.S3MOptions{
		PCM:    make([]byte, 16),
		Stereo: true,
		Bits16: true,
		Signed: true,
	})
	parsed, err := DetectAndParse(data)
	require.NoError(t, err)
	require.Len(t, parsed.Samples, 1)
	s := parsed.Samples[0]
	assert.Equal(t, I16, s.Depth)
	assert.True(t, s.Channel.Stereo)
}

func TestS3M_RejectsMissingMagic(t *testing.T) {
	data := rippertest.S3MModule(rippertest.S3MOptions{PCM: []byte{1, 2}})
	data[0x1C] = 0x00 // corrupt the 0x1A10 marker
	_, err := DetectAndParse(data)
	assert.Error(t, err)
}
