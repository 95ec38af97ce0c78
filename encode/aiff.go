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

// aiffEncoder writes Audio Interchange File Format files: AIFF is
// WAV's big-endian cousin, so 16-bit PCM must be byte-swapped; only
// signed 8/16-bit are representable, so unsigned depths are
// sign-flipped first; planar stereo input is interleaved. The sample rate is stored as an 80-bit IEEE 754
// extended float, the one genuinely fiddly part of this container.
type aiffEncoder struct{}

func (aiffEncoder) Extension() string { return "aiff" }

func (aiffEncoder) Write(w io.Writer, s *format.Sample, data []byte) error {
	bits := uint16(16)
	switch s.Depth {
	case format.I8:
		bits = 8
	case format.U8:
		data = pcm.FlipSign8(data)
		bits = 8
	case format.I16:
		data = pcm.ToBE16(data)
	case format.U16:
		data = pcm.ToBE16(pcm.FlipSign16(data))
	}
	if s.Channel.Stereo && !s.Channel.Interleaved {
		if bits == 8 {
			data = pcm.Interleave8(data)
		} else {
			data = pcm.Interleave16(data)
		}
	}

	if len(data) > math.MaxUint32-46 {
		return fmt.Errorf("encode: aiff data too large (%d bytes)", len(data))
	}

	channels := uint16(s.Channel.Channels())
	numFrames := uint32(0)
	if blockAlign := channels * bits / 8; blockAlign > 0 {
		numFrames = uint32(len(data)) / uint32(blockAlign)
	}

	ssnd := make([]byte, 0, 8+len(data))
	ssnd = append(ssnd, []byte("SSND")...)
	ssnd = append(ssnd, be32(uint32(8+len(data)))...)
	ssnd = append(ssnd, be32(0)...) // offset
	ssnd = append(ssnd, be32(0)...) // block size
	ssnd = append(ssnd, data...)

	comm := make([]byte, 0, 26)
	comm = append(comm, []byte("COMM")...)
	comm = append(comm, be32(18)...)
	comm = append(comm, be16(channels)...)
	comm = append(comm, be32(numFrames)...)
	comm = append(comm, be16(bits)...)
	comm = append(comm, extendedFloat80(float64(s.Rate))...)

	formSize := uint32(4 + len(comm) + len(ssnd)) // "AIFF" + chunks

	header := make([]byte, 0, 8)
	header = append(header, []byte("FORM")...)
	header = append(header, be32(formSize)...)
	header = append(header, []byte("AIFF")...)

	for _, chunk := range [][]byte{header, comm, ssnd} {
		if _, err := w.Write(chunk); err != nil {
			return err
		}
	}
	return nil
}

// extendedFloat80 encodes v as the 80-bit IEEE 754 extended-precision
// float AIFF requires for its sample rate field: a 16-bit biased
// exponent followed by a 64-bit mantissa with an explicit leading bit.
func extendedFloat80(v float64) []byte {
	out := make([]byte, 10)
	if v <= 0 {
		return out
	}

	exponent := int(math.Floor(math.Log2(v)))
	mantissa := uint64(v / math.Pow(2, float64(exponent-63)))

	biasedExp := uint16(exponent + 16383)
	out[0] = byte(biasedExp >> 8)
	out[1] = byte(biasedExp)
	for i := 0; i < 8; i++ {
		out[9-i] = byte(mantissa >> uint(8*i))
	}
	return out
}
