// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package module

import (
	"fmt"

	"github.com/kelindar/modrip/format"
)

// MaxModuleSize is the resident-buffer ceiling enforced on every load,
// a second boundary check behind whatever the caller already applied
// (a library must not trust its caller to have checked).
const MaxModuleSize = 48 << 20

// Load detects the container format of data and parses its sample
// table, returning a ready-to-rip Module. Header-level failures (bad
// magic, an unsupported variant such as compressed ziRCONia IT or a
// pre-v61 UMX) are returned directly; a single malformed sample header
// is instead skipped during parsing and never reaches this layer.
func Load(data []byte) (*Module, error) {
	if len(data) > MaxModuleSize {
		return nil, fmt.Errorf("module: file of %d bytes exceeds the %d byte limit", len(data), MaxModuleSize)
	}

	parsed, err := format.DetectAndParse(data)
	if err != nil {
		return nil, err
	}
	return fromParsed(parsed), nil
}
