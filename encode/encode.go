// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

// Package encode writes a decoded tracker sample's PCM out as a
// standalone audio file, in one of several target containers. Each
// encoder applies whatever sign/endian/depth transforms its container
// needs (via package pcm) before writing a header and the payload.
package encode

import (
	"fmt"
	"io"

	"github.com/kelindar/modrip/format"
)

// AudioFormat selects a target container.
type AudioFormat int

const (
	WAV AudioFormat = iota
	IFF
	AIFF
	ITS
	S3I
	XI
	RAW
)

func (f AudioFormat) String() string {
	switch f {
	case WAV:
		return "wav"
	case IFF:
		return "iff"
	case AIFF:
		return "aiff"
	case ITS:
		return "its"
	case S3I:
		return "s3i"
	case XI:
		return "xi"
	case RAW:
		return "raw"
	default:
		return "unknown"
	}
}

// Encoder writes one sample's PCM, already sliced or decompressed by
// the module façade, out as a complete container file.
type Encoder interface {
	Extension() string
	Write(w io.Writer, s *format.Sample, pcm []byte) error
}

// ByFormat returns the Encoder for f.
func ByFormat(f AudioFormat) (Encoder, error) {
	switch f {
	case WAV:
		return wavEncoder{}, nil
	case IFF:
		return iffEncoder{}, nil
	case AIFF:
		return aiffEncoder{}, nil
	case ITS:
		return itsEncoder{}, nil
	case S3I:
		return s3iEncoder{}, nil
	case XI:
		return xiEncoder{}, nil
	case RAW:
		return rawEncoder{}, nil
	default:
		return nil, fmt.Errorf("encode: unknown audio format %d", f)
	}
}

func le16(v uint16) []byte { return []byte{byte(v), byte(v >> 8)} }
func le32(v uint32) []byte { return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)} }
func be16(v uint16) []byte { return []byte{byte(v >> 8), byte(v)} }
func be32(v uint32) []byte { return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)} }

func fixedName(s string, n int) []byte {
	b := make([]byte, n)
	copy(b, s)
	return b
}
