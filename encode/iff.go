// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package encode

import (
	"io"

	"github.com/kelindar/modrip/format"
	"github.com/kelindar/modrip/pcm"
)

// iffEncoder writes Amiga IFF/8SVX files: mono, signed 8-bit only.
// Anything else is downmixed to mono (by dropping the second channel
// plane, matching how the ripper otherwise never resamples or mixes)
// and reduced/sign-flipped to signed 8-bit. When a 16-bit source is
// reduced, the written rate is half the source rate.
type iffEncoder struct{}

func (iffEncoder) Extension() string { return "iff" }

func (iffEncoder) Write(w io.Writer, s *format.Sample, data []byte) error {
	rate := s.Rate
	if s.Depth.Bits() == 16 {
		data = pcm.Reduce16To8(data)
		rate /= 2
	}
	if s.Channel.Stereo {
		if s.Channel.Interleaved {
			data = pcm.Deinterleave8(data)
		}
		data = data[:len(data)/2] // left channel plane only
	}
	if !s.Depth.IsSigned() {
		data = pcm.FlipSign8(data)
	}

	body := make([]byte, 0, 8+len(data))
	body = append(body, []byte("VHDR")...)
	body = append(body, be32(20)...)
	body = append(body, be32(uint32(len(data)))...) // oneShotHiSamples
	body = append(body, be32(0)...)                 // repeatHiSamples
	body = append(body, be32(0)...)                 // samplesPerHiCycle
	body = append(body, be16(uint16(rate))...)      // samplesPerSec
	body = append(body, 1)                          // ctOctave
	body = append(body, 0)                          // sCompression
	body = append(body, be32(1<<16)...)             // volume (unity, fixed-point)

	body = append(body, []byte("BODY")...)
	body = append(body, be32(uint32(len(data)))...)
	body = append(body, data...)
	if len(data)%2 != 0 {
		body = append(body, 0) // IFF chunks pad to even length
	}

	formSize := uint32(4 + len(body)) // "8SVX" + chunks

	if _, err := w.Write([]byte("FORM")); err != nil {
		return err
	}
	if _, err := w.Write(be32(formSize)); err != nil {
		return err
	}
	if _, err := w.Write([]byte("8SVX")); err != nil {
		return err
	}
	_, err := w.Write(body)
	return err
}
