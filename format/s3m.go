// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package format

import (
	"errors"

	"github.com/kelindar/modrip/byteio"
	"github.com/kelindar/modrip/strsan"
)

var (
	magicSCRM = []byte("SCRM")
	magicSCRS = []byte("SCRS")
)

const (
	s3mFlagLoop   = 1 << 0
	s3mFlagStereo = 1 << 1
	s3mFlagBits16 = 1 << 2
)

type s3mParser struct{}

func (s3mParser) Label() string { return "S3M" }

func (s3mParser) Sniff(data []byte) bool {
	return hasMagicAt(data, 0x2C, magicSCRM)
}

// Parse reads a Scream Tracker 3 module, grounded on the original Rust
// parser: title, the 0x1A10 marker, instrument/order counts, a "signed"
// flag word, the SCRM magic, then an instrument pointer table whose
// u16 entries are each scaled by 16 to give the absolute header offset.
func (s3mParser) Parse(data []byte) (*Parsed, error) {
	c := byteio.NewCursor(data)

	titleRaw, err := c.ReadExact(28)
	if err != nil {
		return nil, err
	}
	title, _ := strsan.Sanitize(titleRaw)

	if !c.ExpectMagic([]byte{0x1A, 0x10}) {
		return nil, errors.New("format: not a valid Scream Tracker module")
	}
	if err := c.Skip(2); err != nil { // reserved
		return nil, err
	}
	ordCount, err := c.ReadU16LE()
	if err != nil {
		return nil, err
	}
	insCount, err := c.ReadU16LE()
	if err != nil {
		return nil, err
	}
	if err := c.Skip(6); err != nil { // pattern ptr, flags, tracker version
		return nil, err
	}
	signedWord, err := c.ReadU16LE()
	if err != nil {
		return nil, err
	}
	signed := signedWord == 1

	if err := c.SeekSet(0x2C); err != nil {
		return nil, err
	}
	if !c.ExpectMagic(magicSCRM) {
		return nil, errors.New("format: not a valid Scream Tracker module")
	}

	if err := c.SeekSet(0x0060 + int(ordCount)); err != nil {
		return nil, err
	}
	ptrs := make([]uint32, 0, insCount)
	for i := uint16(0); i < insCount; i++ {
		v, err := c.ReadU16LE()
		if err != nil {
			return nil, err
		}
		ptrs = append(ptrs, uint32(v)<<4)
	}

	samples := buildS3MSamples(data, ptrs, signed)

	return &Parsed{
		DisplayName: title,
		FormatLabel: "S3M",
		Raw:         data,
		Samples:     samples,
	}, nil
}

func buildS3MSamples(data []byte, ptrs []uint32, signed bool) []Sample {
	samples := make([]Sample, 0, len(ptrs))
	for i, ptr := range ptrs {
		s, ok := parseS3MSample(data, uint16(i), ptr, signed)
		if !ok {
			continue
		}
		samples = append(samples, s)
	}
	return samples
}

func parseS3MSample(data []byte, indexRaw uint16, ptr uint32, signed bool) (Sample, bool) {
	c := byteio.NewCursor(data)
	if err := c.SeekSet(int(ptr)); err != nil {
		return Sample{}, false
	}

	typ, err := c.ReadU8()
	if err != nil || typ != 1 { // PCM instruments only
		return Sample{}, false
	}
	filenameRaw, err := c.ReadExact(12)
	if err != nil {
		return Sample{}, false
	}
	pointer, err := c.ReadU24LE()
	if err != nil {
		return Sample{}, false
	}
	lengthRaw, err := c.ReadU32LE()
	if err != nil {
		return Sample{}, false
	}
	length := lengthRaw & 0xFFFF
	if length == 0 {
		return Sample{}, false
	}
	loopStart, err := c.ReadU32LE()
	if err != nil {
		return Sample{}, false
	}
	loopStop, err := c.ReadU32LE()
	if err != nil {
		return Sample{}, false
	}
	if err := c.Skip(3); err != nil { // vol, reserved, pack
		return Sample{}, false
	}
	flags, err := c.ReadU8()
	if err != nil {
		return Sample{}, false
	}
	rateRaw, err := c.ReadU32LE()
	if err != nil {
		return Sample{}, false
	}
	rate := rateRaw & 0xFFFF
	if err := c.Skip(12); err != nil { // playback scratch space
		return Sample{}, false
	}
	nameRaw, err := c.ReadExact(28)
	if err != nil {
		return Sample{}, false
	}
	if !c.ExpectMagic(magicSCRS) {
		return Sample{}, false
	}

	depth := newDepth(flags&s3mFlagBits16 == 0, signed, signed)
	channel := Channel{Stereo: flags&s3mFlagStereo != 0, Interleaved: false}
	lengthBytes := length * uint32(channel.Channels()) * uint32(depth.Bytes())

	if uint64(pointer)+uint64(lengthBytes) > uint64(len(data)) {
		return Sample{}, false
	}

	kind := LoopOff
	if flags&s3mFlagLoop != 0 {
		kind = LoopForward
	}

	filename, _ := strsan.Sanitize(filenameRaw)
	name, _ := strsan.Sanitize(nameRaw)

	return Sample{
		Filename:    filename,
		HasFilename: filename != "",
		Name:        name,
		Length:      lengthBytes,
		Rate:        rate,
		Pointer:     pointer,
		Depth:       depth,
		Channel:     channel,
		IndexRaw:    indexRaw,
		Looping:     Loop{Start: loopStart, Stop: loopStop, Kind: kind},
	}, true
}
