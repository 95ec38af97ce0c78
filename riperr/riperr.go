// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

// Package riperr centralizes the error kinds this module's parsers,
// decoders, and ripper can produce, modeled on the teacher's pattern
// of named sentinel errors per package, but centralized here since
// these kinds are shared across every parser and encoder rather than
// package-private.
package riperr

import (
	"errors"
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// Kind classifies why an operation failed.
type Kind int

const (
	// IO means an open/read/write/create/metadata call failed, or the
	// destination wasn't a directory, or a file exceeded the resident
	// size ceiling.
	IO Kind = iota
	// InvalidModule means the top-level container failed magic or
	// structural validation.
	InvalidModule
	// UnsupportedModule means the container is recognized but this
	// tool doesn't implement it (e.g. ziRCONia-compressed IT).
	UnsupportedModule
	// BadSample means a single sample's header, pointer, or bitstream
	// read went out of bounds.
	BadSample
	// AudioFormat means the target encoder cannot represent the
	// sample (e.g. an S3I payload over 64 KiB).
	AudioFormat
	// EmptyModule means the module parsed but has no non-empty samples.
	EmptyModule
	// PartialExtraction means some samples were written, some failed.
	PartialExtraction
	// Extraction means no sample could be written at all.
	Extraction
)

func (k Kind) String() string {
	switch k {
	case IO:
		return "IO"
	case InvalidModule:
		return "InvalidModule"
	case UnsupportedModule:
		return "UnsupportedModule"
	case BadSample:
		return "BadSample"
	case AudioFormat:
		return "AudioFormat"
	case EmptyModule:
		return "EmptyModule"
	case PartialExtraction:
		return "PartialExtraction"
	case Extraction:
		return "Extraction"
	default:
		return "Unknown"
	}
}

// Error wraps an underlying error with the Kind and, where relevant,
// the sample it concerns.
type Error struct {
	Kind     Kind
	Sample   string
	RawIndex int
	err      error
}

// New wraps err with the given Kind and sample context. The wrap uses
// pkg/errors.Wrapf rather than fmt.Errorf so the resulting error
// carries a stack trace back to the failing parse/decode/encode call,
// in the one place stdlib errors.Join can't preserve per-sample
// attribution (sample name + raw index) the way the teacher's
// sentinel-per-package errors always do implicitly by call site.
func New(kind Kind, sample string, rawIndex int, err error) *Error {
	wrapped := err
	if sample != "" {
		wrapped = pkgerrors.Wrapf(err, "sample %q (#%d)", sample, rawIndex)
	} else if err != nil {
		wrapped = pkgerrors.WithStack(err)
	}
	return &Error{Kind: kind, Sample: sample, RawIndex: rawIndex, err: wrapped}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.err)
}

func (e *Error) Unwrap() error { return e.err }

func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

// Errors aggregates the per-sample errors behind PartialExtraction or
// Extraction.
type Errors []*Error

func (e Errors) Error() string {
	if len(e) == 0 {
		return "no errors"
	}
	parts := make([]string, len(e))
	for i, err := range e {
		parts[i] = err.Error()
	}
	return strings.Join(parts, "; ")
}

// Unwrap exposes each element for errors.As/errors.Is traversal.
func (e Errors) Unwrap() []error {
	out := make([]error, len(e))
	for i, err := range e {
		out[i] = err
	}
	return out
}
