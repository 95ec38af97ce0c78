// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package module

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultNamer_PadsAndSanitizes(t *testing.T) {
	s := &Sample{IndexRaw: 3, Name: `bad/name*1`}
	ctx := Context{MaxIndexRaw: 120, Extension: "wav"}

	got := DefaultNamer(s, ctx, 0)
	assert.Equal(t, "index_raw003_badname1.wav", got)
}

func TestDefaultNamer_FallsBackToFilename(t *testing.T) {
	s := &Sample{IndexRaw: 1, Filename: "sample.wav", HasFilename: true}
	ctx := Context{MaxIndexRaw: 9, Extension: "raw"}

	got := DefaultNamer(s, ctx, 0)
	assert.Equal(t, "index_raw001_sample.wav.raw", got)
}

func TestDefaultNamer_EmptyDisplayName(t *testing.T) {
	s := &Sample{IndexRaw: 7}
	ctx := Context{MaxIndexRaw: 7, Extension: "its"}

	got := DefaultNamer(s, ctx, 0)
	assert.Equal(t, "index_raw007.its", got)
}

func TestDefaultNamer_MinimumWidthThree(t *testing.T) {
	s := &Sample{IndexRaw: 1, Name: "kick"}
	ctx := Context{MaxIndexRaw: 1, Extension: "wav"}

	got := DefaultNamer(s, ctx, 0)
	assert.Equal(t, "index_raw001_kick.wav", got)
}
