// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package module

import (
	"fmt"
	"strconv"

	"github.com/kelindar/modrip/strsan"
)

// Context carries the per-module, per-run facts a Namer needs to
// produce stable, correctly-padded, extension-correct filenames
// without having to re-derive them from the sample list itself.
type Context struct {
	MaxIndexRaw uint16 // largest index_raw across the module's sample table
	Extension   string // the selected encoder's file extension, no leading dot
}

// Namer computes an output filename (with extension, no directory
// component) for one sample at a given zero-based position within the
// rip. Implementations must be pure and safe for concurrent use: the
// Ripper calls a Namer from every worker goroutine.
type Namer func(s *Sample, ctx Context, position int) string

// DefaultNamer zero-pads index_raw to the width of ctx.MaxIndexRaw (at
// least three digits) and appends the sanitized sample name, e.g.
// "index_raw003_kick.wav". It
// exists purely so this package is usable standalone; callers wanting
// project-specific naming conventions should supply their own Namer.
func DefaultNamer(s *Sample, ctx Context, _ int) string {
	width := len(strconv.Itoa(int(ctx.MaxIndexRaw)))
	if width < 3 {
		width = 3
	}

	name := strsan.ToOSSafe(s.DisplayName())
	if name == "" {
		return fmt.Sprintf("index_raw%0*d.%s", width, s.IndexRaw, ctx.Extension)
	}
	return fmt.Sprintf("index_raw%0*d_%s.%s", width, s.IndexRaw, name, ctx.Extension)
}
