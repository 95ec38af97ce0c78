// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package encode

import (
	"io"

	"github.com/kelindar/modrip/format"
)

// rawEncoder writes the sample's PCM verbatim, with no header at all.
type rawEncoder struct{}

func (rawEncoder) Extension() string { return "raw" }

func (rawEncoder) Write(w io.Writer, _ *format.Sample, data []byte) error {
	_, err := w.Write(data)
	return err
}
