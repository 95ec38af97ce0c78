// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package riperr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_WrapsAndUnwraps(t *testing.T) {
	cause := errors.New("pointer out of bounds")
	err := New(BadSample, "kick.wav", 3, cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "kick.wav")
	assert.Contains(t, err.Error(), "BadSample")
}

func TestError_IsComparesByKind(t *testing.T) {
	a := New(BadSample, "a", 0, errors.New("x"))
	b := New(BadSample, "b", 1, errors.New("y"))
	c := New(AudioFormat, "c", 2, errors.New("z"))

	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, c))
}

func TestErrors_AggregatesMessages(t *testing.T) {
	agg := Errors{
		New(BadSample, "one", 0, errors.New("oops")),
		New(AudioFormat, "two", 1, errors.New("too big")),
	}
	msg := agg.Error()
	assert.Contains(t, msg, "one")
	assert.Contains(t, msg, "two")
}

func TestErrors_UnwrapAllowsErrorsIs(t *testing.T) {
	cause := errors.New("specific cause")
	agg := Errors{New(Extraction, "s", 0, cause)}
	assert.ErrorIs(t, error(agg), cause)
}
