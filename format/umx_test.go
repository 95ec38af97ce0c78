// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package format

import (
	"testing"

	"github.com/kelindar/modrip/internal/rippertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUMX_UnwrapsEmbeddedIT(t *testing.T) {
	pcm := []byte{0x01, 0x02, 0x03, 0x04}
	inner := rippertest.ITModule(rippertest.ITOptions{Title: "wrapped", PCM: pcm})
	data := rippertest.UMXWrapping(inner)

	parsed, err := DetectAndParse(data)
	require.NoError(t, err)
	assert.Equal(t, "UMX/IT", parsed.FormatLabel)
	require.Len(t, parsed.Samples, 1)
	assert.Equal(t, uint32(len(pcm)), parsed.Samples[0].Length)
}

func TestUMX_UnwrapsEmbeddedS3M(t *testing.T) {
	pcm := []byte{0x0A, 0x0B, 0x0C, 0x0D}
	inner := rippertest.S3MModule(rippertest.S3MOptions{Title: "wrapped", PCM: pcm})
	data := rippertest.UMXWrapping(inner)

	parsed, err := DetectAndParse(data)
	require.NoError(t, err)
	assert.Equal(t, "UMX/S3M", parsed.FormatLabel)
	require.Len(t, parsed.Samples, 1)
}

func TestUMX_RejectsOldVersion(t *testing.T) {
	inner := rippertest.ITModule(rippertest.ITOptions{PCM: []byte{1, 2}})
	data := rippertest.UMXWrapping(inner)
	// version field lives right after the 4-byte magic
	data[4], data[5], data[6], data[7] = 10, 0, 0, 0
	_, err := DetectAndParse(data)
	assert.Error(t, err)
}

func TestUMX_CompactIndexDecode(t *testing.T) {
	vectors := []struct {
		value int32
		bytes []byte
	}{
		{1, []byte{0x01}},
		{500, []byte{0x74, 0x07}},
		{1000, []byte{0x68, 0x0f}},
		{10, []byte{0x0a}},
		{100, []byte{0x64, 0x01}},
		{10_000_000, []byte{0x40, 0xDA, 0xC4, 0x09}},
		{1_000_000_000, []byte{0x40, 0xA8, 0xD6, 0xB9, 0x07}},
	}
	for _, v := range vectors {
		got, n, err := readCompactIndex(v.bytes, 0)
		require.NoError(t, err)
		assert.Equal(t, v.value, got)
		assert.Equal(t, len(v.bytes), n)
	}
}
