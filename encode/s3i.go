// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package encode

import (
	"fmt"
	"io"

	"github.com/kelindar/modrip/format"
	"github.com/kelindar/modrip/pcm"
)

// s3iEncoder writes a standalone Scream Tracker 3 instrument (.s3i),
// the same per-sample header the S3M module parser reads. The
// original exporter was a stub (todo!()); the header layout here
// mirrors the reader in format/s3m.go. Interleaved stereo input is
// deinterleaved to the planar layout the container stores.
type s3iEncoder struct{}

func (s3iEncoder) Extension() string { return "s3i" }

// S3M's length field is 16 bits, so a sample over 64 KiB frames
// cannot be represented in this container.
const s3iMaxFrames = 0xFFFF

func (s3iEncoder) Write(w io.Writer, s *format.Sample, data []byte) error {
	const samplePointer = 0x50

	channels := uint32(s.Channel.Channels())
	depthBytes := uint32(s.Depth.Bytes())
	var frames uint32
	if channels*depthBytes > 0 {
		frames = uint32(len(data)) / (channels * depthBytes)
	}
	if frames > s3iMaxFrames {
		return fmt.Errorf("encode: s3i sample has %d frames, exceeds the 16-bit length field", frames)
	}
	if s.Channel.Stereo && s.Channel.Interleaved {
		if s.Depth.Bits() == 16 {
			data = pcm.Deinterleave16(data)
		} else {
			data = pcm.Deinterleave8(data)
		}
	}

	flags := byte(0)
	if s.Looping.Kind != format.LoopOff {
		flags |= 1 << 0
	}
	if s.Channel.Stereo {
		flags |= 1 << 1
	}
	if s.Depth.Bits() == 16 {
		flags |= 1 << 2
	}

	header := make([]byte, 0, samplePointer)
	header = append(header, 1) // type: PCM
	header = append(header, fixedName("", 12)...)
	header = append(header, byte(samplePointer), byte(samplePointer>>8), byte(samplePointer>>16))
	header = append(header, le32(frames)...)
	header = append(header, le32(s.Looping.Start)...)
	header = append(header, le32(s.Looping.Stop)...)
	header = append(header, 64, 0, 0) // vol, reserved, pack
	header = append(header, flags)
	header = append(header, le32(s.Rate)...)
	header = append(header, make([]byte, 12)...) // playback scratch space
	header = append(header, fixedName(s.DisplayName(), 28)...)
	header = append(header, []byte("SCRS")...)

	if _, err := w.Write(header); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}
