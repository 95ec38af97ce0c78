// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package format

import (
	"testing"

	"github.com/kelindar/modrip/internal/rippertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXM_ParsesMinimalModule(t *testing.T) {
	pcm := []byte{0x10, 0x20, 0x05, 0xF0}
	data := rippertest.XMModule(rippertest.XMOptions{
		Title: "xm demo",
		PCM:   pcm,
	})

	parsed, err := DetectAndParse(data)
	require.NoError(t, err)
	assert.Equal(t, "XM", parsed.FormatLabel)
	require.Len(t, parsed.Samples, 1)

	s := parsed.Samples[0]
	assert.Equal(t, U8, s.Depth)
	assert.Equal(t, uint32(len(pcm)), s.Length)
	assert.Equal(t, pcm, parsed.Raw[s.Pointer:s.Pointer+s.Length])
}

func TestXM_Bits16Sample(t *testing.T) {
	data := rippertest.XMModule(rippertest.XMOptions{
		PCM:    []byte{0, 0, 1, 0, 2, 0, 3, 0},
		Bits16: true,
	})
	parsed, err := DetectAndParse(data)
	require.NoError(t, err)
	require.Len(t, parsed.Samples, 1)
	assert.Equal(t, I16, parsed.Samples[0].Depth)
}

func TestXM_RejectsOldVersion(t *testing.T) {
	data := rippertest.XMModule(rippertest.XMOptions{PCM: []byte{1}})
	// version word lives right after "Extended Module: "(17)+title(20)+0x1A(1)+trackername(20)
	versionOffset := 17 + 20 + 1 + 20
	data[versionOffset] = 0x00
	data[versionOffset+1] = 0x01 // 0x0100 < 0x0104
	_, err := DetectAndParse(data)
	assert.Error(t, err)
}

func TestXM_DeltaDecodeHelper(t *testing.T) {
	encoded := []byte{5, 250, 10}
	decoded := DeltaDecodeXM(encoded, true)
	assert.Len(t, decoded, 3)
}
