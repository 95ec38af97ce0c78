// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package encode

import (
	"io"

	"github.com/kelindar/modrip/format"
	"github.com/kelindar/modrip/pcm"
)

// itsEncoder writes a standalone Impulse Tracker sample (.its): the
// same 0x50-byte header the IT module parser reads, pointing at a
// fixed sample pointer of 0x50 (the header's own length) followed
// immediately by the PCM. The original exporter filled the name field
// with the literal byte value 20 repeated 26 times — almost certainly
// a copy-paste of the loop-bound constant rather than a blank/name
// fill; this writes the sample's actual (sanitized) name instead.
// Interleaved stereo input is deinterleaved to the planar layout the
// container stores.
type itsEncoder struct{}

func (itsEncoder) Extension() string { return "its" }

func (itsEncoder) Write(w io.Writer, s *format.Sample, data []byte) error {
	const samplePointer = 0x50

	if s.Channel.Stereo && s.Channel.Interleaved {
		if s.Depth.Bits() == 16 {
			data = pcm.Deinterleave16(data)
		} else {
			data = pcm.Deinterleave8(data)
		}
	}

	flags := byte(0)
	if s.Depth.Bits() == 16 {
		flags |= 1 << 1
	}
	if s.Channel.Stereo {
		flags |= 1 << 2
	}
	cvt := byte(0)
	if s.Depth.IsSigned() {
		cvt |= 1
	}

	channels := uint32(s.Channel.Channels())
	depthBytes := uint32(s.Depth.Bytes())
	var frames uint32
	if channels*depthBytes > 0 {
		frames = uint32(len(data)) / (channels * depthBytes)
	}

	header := make([]byte, 0, samplePointer)
	header = append(header, []byte("IMPS")...)
	header = append(header, fixedName("", 12)...) // filename
	header = append(header, 0)                    // zero
	header = append(header, 0)                    // global volume
	header = append(header, flags)
	header = append(header, 64) // default volume
	header = append(header, fixedName(s.DisplayName(), 26)...)
	header = append(header, cvt)
	header = append(header, 128) // default pan, center
	header = append(header, le32(frames)...)
	header = append(header, le32(0)...) // loop begin
	header = append(header, le32(0)...) // loop end
	header = append(header, le32(s.Rate)...)
	header = append(header, le32(0)...) // sustain loop begin
	header = append(header, le32(0)...) // sustain loop end
	header = append(header, le32(samplePointer)...)
	header = append(header, 0) // vis
	header = append(header, 0) // vid
	header = append(header, 0) // vir
	header = append(header, 0) // vit

	if _, err := w.Write(header); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}
