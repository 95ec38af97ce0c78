// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package encode

import (
	"fmt"
	"io"
	"math"

	"github.com/kelindar/modrip/format"
	"github.com/kelindar/modrip/pcm"
)

// wavEncoder writes canonical PCM WAV files, generalized from the
// teacher's wavHeader helper (which hardcoded mono/16-bit/22050 Hz)
// to the sample's actual channel count, depth, and rate. Only U8 and
// I16 are representable in WAV's PCM format code 1; I8 is sign-flipped
// to U8 and U16 is sign-flipped to I16. Planar stereo input is
// interleaved, the layout WAV stores.
type wavEncoder struct{}

func (wavEncoder) Extension() string { return "wav" }

func (wavEncoder) Write(w io.Writer, s *format.Sample, data []byte) error {
	bits := uint16(16)
	switch s.Depth {
	case format.U8:
		bits = 8
	case format.I8:
		data = pcm.FlipSign8(data)
		bits = 8
	case format.I16:
		// already representable
	case format.U16:
		data = pcm.FlipSign16(data)
	}
	if s.Channel.Stereo && !s.Channel.Interleaved {
		if bits == 8 {
			data = pcm.Interleave8(data)
		} else {
			data = pcm.Interleave16(data)
		}
	}

	if len(data) > math.MaxUint32-36 {
		return fmt.Errorf("encode: wav data too large (%d bytes)", len(data))
	}

	channels := uint16(s.Channel.Channels())
	blockAlign := channels * bits / 8
	byteRate := s.Rate * uint32(blockAlign)
	dataLen := uint32(len(data))
	chunkSize := 36 + dataLen

	header := make([]byte, 0, 44)
	header = append(header, []byte("RIFF")...)
	header = append(header, le32(chunkSize)...)
	header = append(header, []byte("WAVEfmt ")...)
	header = append(header, le32(16)...)  // Subchunk1Size for PCM
	header = append(header, le16(1)...)   // AudioFormat PCM
	header = append(header, le16(channels)...)
	header = append(header, le32(s.Rate)...)
	header = append(header, le32(byteRate)...)
	header = append(header, le16(blockAlign)...)
	header = append(header, le16(bits)...)
	header = append(header, []byte("data")...)
	header = append(header, le32(dataLen)...)

	if _, err := w.Write(header); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}
