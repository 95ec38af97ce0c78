// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package format

import (
	"errors"
	"math"

	"github.com/kelindar/modrip/byteio"
	"github.com/kelindar/modrip/pcm"
	"github.com/kelindar/modrip/strsan"
)

var (
	magicExtendedModule = []byte("Extended Module: ")
	magicModPluginPacked = []byte("MOD Plugin packed   ")
)

const (
	xmMarkerByte    = 0x1A
	xmMinVersion    = 0x0104
	xmMaxPatterns   = 256
	xmMaxInstrs     = 128
	xmSampleFlags16 = 1 << 4
	xmLoopOff       = 0
	xmLoopForward   = 1
	xmLoopPingPong  = 2
)

type xmParser struct{}

func (xmParser) Label() string { return "XM" }

func (xmParser) Sniff(data []byte) bool {
	return hasMagicAt(data, 0, magicExtendedModule)
}

// Parse reads a FastTracker 2 Extended Module. The original parser
// this is expanded from only validates the fixed 60-byte file header
// and bails with todo!(); the pattern-skip and instrument/sample walk
// below are derived from the published XM format layout.
func (xmParser) Parse(data []byte) (*Parsed, error) {
	if hasMagicAt(data, 0, magicModPluginPacked) {
		return nil, ErrUnsupportedModule
	}

	c := byteio.NewCursor(data)
	if !c.ExpectMagic(magicExtendedModule) {
		return nil, errors.New("format: not a valid Extended Module")
	}

	nameRaw, err := c.ReadExact(20)
	if err != nil {
		return nil, err
	}
	title, _ := strsan.Sanitize(nameRaw)

	if !c.ExpectMagic([]byte{xmMarkerByte}) {
		return nil, errors.New("format: not a valid Extended Module")
	}
	if err := c.Skip(20); err != nil { // tracker name
		return nil, err
	}
	version, err := c.ReadU16LE()
	if err != nil {
		return nil, err
	}
	if version < xmMinVersion {
		return nil, ErrUnsupportedModule
	}

	headerSize, err := c.ReadU32LE()
	if err != nil {
		return nil, err
	}
	headerStart := c.Tell()

	if err := c.Skip(6); err != nil { // song length, restart pos, channels
		return nil, err
	}
	patNum, err := c.ReadU16LE()
	if err != nil {
		return nil, err
	}
	insNum, err := c.ReadU16LE()
	if err != nil {
		return nil, err
	}
	if patNum > xmMaxPatterns {
		return nil, errors.New("format: Extended Module has more than 256 patterns")
	}
	if insNum > xmMaxInstrs {
		return nil, errors.New("format: Extended Module has more than 128 instruments")
	}

	if err := c.SeekSet(headerStart + int(headerSize)); err != nil {
		return nil, err
	}
	if err := skipXMPatterns(c, patNum); err != nil {
		return nil, err
	}

	samples, err := buildXMSamples(data, c, insNum)
	if err != nil {
		return nil, err
	}

	return &Parsed{
		DisplayName: title,
		FormatLabel: "XM",
		Raw:         data,
		Samples:     samples,
	}, nil
}

func skipXMPatterns(c *byteio.Cursor, patterns uint16) error {
	for i := uint16(0); i < patterns; i++ {
		headerLen, err := c.ReadU32LE()
		if err != nil {
			return err
		}
		if err := c.Skip(1); err != nil { // packing type
			return err
		}
		if err := c.Skip(2); err != nil { // number of rows
			return err
		}
		packedSize, err := c.ReadU16LE()
		if err != nil {
			return err
		}
		// Standard header consumes 9 bytes (4+1+2+2) of headerLen; any
		// remainder is forward-compatible padding this tool ignores.
		if extra := int(headerLen) - 9; extra > 0 {
			if err := c.Skip(extra); err != nil {
				return err
			}
		}
		if err := c.Skip(int(packedSize)); err != nil {
			return err
		}
	}
	return nil
}

func buildXMSamples(data []byte, c *byteio.Cursor, instruments uint16) ([]Sample, error) {
	samples := make([]Sample, 0, instruments)
	var indexRaw uint16

	for i := uint16(0); i < instruments; i++ {
		instStart := c.Tell()
		instSize, err := c.ReadU32LE()
		if err != nil {
			return nil, err
		}
		if err := c.Skip(22); err != nil { // name
			return nil, err
		}
		if err := c.Skip(1); err != nil { // instrument type
			return nil, err
		}
		numSamples, err := c.ReadU16LE()
		if err != nil {
			return nil, err
		}

		if numSamples == 0 {
			if err := c.SeekSet(instStart + int(instSize)); err != nil {
				return nil, err
			}
			continue
		}

		// Skip the extended instrument header (keymap, envelopes,
		// vibrato) up to the per-sample sample-header table.
		if err := c.SeekSet(instStart + int(instSize)); err != nil {
			return nil, err
		}

		type xmSampleHeader struct {
			length, loopStart, loopLen uint32
			volume                     uint8
			finetune                   int8
			typ                        uint8
			panning                    uint8
			relativeNote               int8
			nameRaw                    []byte
		}
		headers := make([]xmSampleHeader, 0, numSamples)
		for s := uint16(0); s < numSamples; s++ {
			length, err := c.ReadU32LE()
			if err != nil {
				return nil, err
			}
			loopStart, err := c.ReadU32LE()
			if err != nil {
				return nil, err
			}
			loopLen, err := c.ReadU32LE()
			if err != nil {
				return nil, err
			}
			volume, err := c.ReadU8()
			if err != nil {
				return nil, err
			}
			finetune, err := c.ReadI8()
			if err != nil {
				return nil, err
			}
			typ, err := c.ReadU8()
			if err != nil {
				return nil, err
			}
			panning, err := c.ReadU8()
			if err != nil {
				return nil, err
			}
			relNote, err := c.ReadI8()
			if err != nil {
				return nil, err
			}
			if err := c.Skip(1); err != nil { // name length / reserved
				return nil, err
			}
			nameRaw, err := c.ReadExact(22)
			if err != nil {
				return nil, err
			}
			headers = append(headers, xmSampleHeader{
				length: length, loopStart: loopStart, loopLen: loopLen,
				volume: volume, finetune: finetune, typ: typ,
				panning: panning, relativeNote: relNote, nameRaw: nameRaw,
			})
		}

		for _, h := range headers {
			ptr := uint32(c.Tell())
			if err := c.Skip(int(h.length)); err != nil {
				return nil, err
			}
			if h.length == 0 {
				indexRaw++
				continue
			}

			is8Bit := h.typ&xmSampleFlags16 == 0
			depth := U8
			if !is8Bit {
				depth = I16
			}
			channel := Channel{Stereo: false, Interleaved: false}

			kind := LoopOff
			switch h.typ & 0x3 {
			case xmLoopForward:
				kind = LoopForward
			case xmLoopPingPong:
				kind = LoopPingPong
			}

			if uint64(ptr)+uint64(h.length) > uint64(len(data)) {
				indexRaw++
				continue
			}

			name, _ := strsan.Sanitize(h.nameRaw)
			samples = append(samples, Sample{
				Name:       name,
				Length:     h.length,
				Rate:       xmPlaybackRate(h.relativeNote, h.finetune),
				Pointer:    ptr,
				Depth:      depth,
				Channel:    channel,
				IndexRaw:   indexRaw,
				DeltaCoded: true,
				Looping: Loop{
					Start: h.loopStart / uint32(depth.Bytes()),
					Stop:  (h.loopStart + h.loopLen) / uint32(depth.Bytes()),
					Kind:  kind,
				},
			})
			indexRaw++
		}
	}
	return samples, nil
}

// xmPlaybackRate derives a C-5 rate equivalent from the XM relative
// note / finetune pair using the standard linear-frequency formula
// (8363 Hz at relative note 0, finetune 0).
func xmPlaybackRate(relativeNote, finetune int8) uint32 {
	const base = 8363.0
	semitones := float64(relativeNote) + float64(finetune)/128.0
	rate := base * math.Pow(2, semitones/12.0)
	if rate < 1 {
		return 8363
	}
	return uint32(rate)
}

// DeltaDecodeXM applies the XM PCM delta decode (8- or 16-bit, chosen
// by sample depth); the module façade calls it when reading a
// DeltaCoded sample's PCM bytes.
func DeltaDecodeXM(buf []byte, is8Bit bool) []byte {
	if is8Bit {
		return pcm.DeltaDecode8(buf)
	}
	return pcm.DeltaDecode16(buf)
}
