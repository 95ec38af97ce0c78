// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package format

import (
	"testing"

	"github.com/kelindar/modrip/internal/rippertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMOD_Parses31SampleVariant(t *testing.T) {
	pcm := make([]byte, 40)
	for i := range pcm {
		pcm[i] = byte(i)
	}
	data := rippertest.MODModule(rippertest.MODOptions{
		Title:     "mod demo",
		PCM:       pcm,
		Variant31: true,
	})

	parsed, err := DetectAndParse(data)
	require.NoError(t, err)
	assert.Equal(t, "MOD", parsed.FormatLabel)
	require.Len(t, parsed.Samples, 1)

	s := parsed.Samples[0]
	assert.Equal(t, I8, s.Depth)
	assert.Equal(t, uint32(len(pcm)), s.Length)
	assert.Equal(t, pcm, parsed.Raw[s.Pointer:s.Pointer+s.Length])
}

func TestMOD_Parses15SampleVariant(t *testing.T) {
	pcm := make([]byte, 20)
	data := rippertest.MODModule(rippertest.MODOptions{PCM: pcm, Variant31: false})

	parsed, err := DetectAndParse(data)
	require.NoError(t, err)
	assert.Equal(t, "MOD", parsed.FormatLabel)
	require.Len(t, parsed.Samples, 1)
}

func TestMOD_FinetuneRateTableInBounds(t *testing.T) {
	for ft := 0; ft < 16; ft++ {
		assert.Greater(t, modFinetuneRate[ft], uint32(0))
	}
}
