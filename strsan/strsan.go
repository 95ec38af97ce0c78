// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

// Package strsan sanitizes fixed-length, possibly-garbage byte fields
// embedded in legacy binary formats into display strings and safe
// filenames.
package strsan

import (
	"errors"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// ErrGarbage is returned by Sanitize when the field looks like raw
// binary data rather than text.
var ErrGarbage = errors.New("strsan: field is not valid text")

const printableLow = 0x20
const printableHigh = 0x7E

// Sanitize trims a fixed-length raw field at its first NUL byte, rejects
// it as ErrGarbage when more than half of the remaining bytes fall
// outside printable ASCII, and otherwise lossily decodes it as CP437
// (the encoding most tracker authoring tools actually wrote in).
func Sanitize(raw []byte) (string, error) {
	trimmed := trimNull(raw)
	if len(trimmed) == 0 {
		return "", nil
	}

	nonPrintable := 0
	for _, b := range trimmed {
		if b < printableLow || b > printableHigh {
			nonPrintable++
		}
	}
	if nonPrintable*2 > len(trimmed) {
		return "", ErrGarbage
	}

	decoded, err := charmap.CodePage437.NewDecoder().String(string(trimmed))
	if err != nil {
		// Latin-1 never fails to decode; fall back to it so a
		// CP437-hostile byte never turns a benign name into an error.
		decoded, _ = charmap.ISO8859_1.NewDecoder().String(string(trimmed))
	}
	return decoded, nil
}

// IsGarbage reports whether Sanitize would reject raw as non-text.
func IsGarbage(raw []byte) bool {
	_, err := Sanitize(raw)
	return errors.Is(err, ErrGarbage)
}

func trimNull(b []byte) []byte {
	for i, v := range b {
		if v == 0 {
			return b[:i]
		}
	}
	return b
}

var forbidden = map[rune]struct{}{
	'/': {}, '*': {}, '\\': {}, '!': {}, '<': {}, '>': {},
	':': {}, '"': {}, '|': {}, '?': {}, '+': {}, '=': {},
	'[': {}, ']': {}, ';': {}, ',': {}, 0: {},
}

// ToOSSafe trims surrounding whitespace and strips any character in the
// forbidden filename set or outside ASCII. It is idempotent.
func ToOSSafe(s string) string {
	s = strings.TrimSpace(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r > 0x7F {
			continue
		}
		if _, bad := forbidden[r]; bad {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
