// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package encode

import (
	"io"

	"github.com/kelindar/modrip/format"
	"github.com/kelindar/modrip/pcm"
)

// xiEncoder writes a standalone FastTracker 2 instrument (.xi): the
// fixed extended-instrument header (keymap and envelope tables left
// at defaults, since this tool never decodes those from the source
// module) followed by one 40-byte XM sample header and its PCM,
// re-delta-coded to match what real XI/XM files store on disk. The
// original exporter was a stub (todo!()).
type xiEncoder struct{}

func (xiEncoder) Extension() string { return "xi" }

func (xiEncoder) Write(w io.Writer, s *format.Sample, data []byte) error {
	header := make([]byte, 0, 256)
	header = append(header, []byte("Extended Instrument: ")...)
	header = append(header, fixedName(s.DisplayName(), 22)...)
	header = append(header, 0x1A)
	header = append(header, fixedName("modrip", 20)...)
	header = append(header, le16(0x0102)...)
	header = append(header, make([]byte, 96)...) // sample keymap assignment
	header = append(header, make([]byte, 48)...) // volume envelope points
	header = append(header, make([]byte, 48)...) // panning envelope points
	header = append(header, 0)                   // num volume points
	header = append(header, 0)                   // num panning points
	header = append(header, 0, 0, 0)              // vol sustain/loop start/loop end
	header = append(header, 0, 0, 0)              // pan sustain/loop start/loop end
	header = append(header, 0)                    // volume type
	header = append(header, 0)                    // panning type
	header = append(header, 0, 0, 0, 0)           // vibrato type/sweep/depth/rate
	header = append(header, le16(0)...)           // volume fadeout
	header = append(header, make([]byte, 2)...)   // reserved
	header = append(header, le16(1)...)           // number of samples

	is8Bit := s.Depth.Bits() == 8
	flags := byte(0)
	if !is8Bit {
		flags |= 1 << 4
	}
	switch s.Looping.Kind {
	case format.LoopForward:
		flags |= 1
	case format.LoopPingPong:
		flags |= 2
	}

	header = append(header, le32(uint32(len(data)))...)
	depthBytes := uint32(s.Depth.Bytes())
	header = append(header, le32(s.Looping.Start*depthBytes)...)
	stopBytes := uint32(0)
	if s.Looping.Stop > s.Looping.Start {
		stopBytes = (s.Looping.Stop - s.Looping.Start) * depthBytes
	}
	header = append(header, le32(stopBytes)...)
	header = append(header, 64) // volume
	header = append(header, 0)  // finetune
	header = append(header, flags)
	header = append(header, 128) // panning, center
	header = append(header, 0)   // relative note
	header = append(header, 0)   // reserved
	header = append(header, fixedName(s.DisplayName(), 22)...)

	var encoded []byte
	if is8Bit {
		encoded = pcm.DeltaEncode8(data)
	} else {
		encoded = pcm.DeltaEncode16(data)
	}

	if _, err := w.Write(header); err != nil {
		return err
	}
	_, err := w.Write(encoded)
	return err
}
