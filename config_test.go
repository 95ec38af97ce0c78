// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package module

import (
	"testing"

	"github.com/kelindar/modrip/encode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_DefaultsToDefaultNamer(t *testing.T) {
	cfg, err := NewConfig(encode.WAV)
	require.NoError(t, err)
	assert.False(t, cfg.SelfContained)
	assert.NotNil(t, cfg.Namer)
}

func TestNewConfig_RejectsUnknownFormat(t *testing.T) {
	_, err := NewConfig(encode.AudioFormat(99))
	assert.Error(t, err)
}

func TestNewConfig_AppliesOptions(t *testing.T) {
	custom := func(s *Sample, ctx Context, position int) string { return "fixed.wav" }
	cfg, err := NewConfig(encode.RAW, WithSelfContained(), WithNamer(custom))
	require.NoError(t, err)
	assert.True(t, cfg.SelfContained)
	assert.Equal(t, "fixed.wav", cfg.Namer(&Sample{}, Context{}, 0))
}
