// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package format

import (
	"bytes"
	"fmt"
)

// Parser turns a module's raw bytes into a Parsed sample table. Each
// supported container implements one.
type Parser interface {
	// Sniff reports whether data looks like this parser's container,
	// cheaply, from a magic number or fixed-offset marker.
	Sniff(data []byte) bool
	// Parse parses data, previously confirmed by Sniff.
	Parse(data []byte) (*Parsed, error)
	// Label names the container, for Parsed.FormatLabel.
	Label() string
}

// parsers is consulted in the fixed order IT, XM, S3M, UMX, MOD; the
// first match wins. MOD comes last because its Sniff accepts any
// buffer long enough to hold a 15-sample header.
var parsers = []Parser{
	itParser{},
	xmParser{},
	s3mParser{},
	umxParser{},
	modParser{},
}

// DetectAndParse sniffs data against every supported container in turn
// and parses it with the first match.
func DetectAndParse(data []byte) (*Parsed, error) {
	for _, p := range parsers {
		if p.Sniff(data) {
			parsed, err := p.Parse(data)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", p.Label(), err)
			}
			return parsed, nil
		}
	}
	return nil, ErrUnrecognized
}

var ErrUnrecognized = fmt.Errorf("format: unrecognized module container")

func hasMagicAt(data []byte, offset int, magic []byte) bool {
	if offset < 0 || offset+len(magic) > len(data) {
		return false
	}
	return bytes.Equal(data[offset:offset+len(magic)], magic)
}
