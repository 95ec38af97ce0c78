// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package format

import (
	"github.com/kelindar/modrip/byteio"
	"github.com/kelindar/modrip/strsan"
)

// modMagics maps the 31-sample variant's 4-byte marker at offset 0x438
// to its channel count; the 15-sample variant predates this marker
// entirely and always has 4 channels.
var modMagics = map[string]int{
	"M.K.": 4, "M!K!": 4, "FLT4": 4, "FLT8": 8,
	"4CHN": 4, "6CHN": 6, "8CHN": 8,
	"CD81": 8, "OKTA": 8, "OCTA": 8,
	"16CN": 16, "32CN": 32,
}

const (
	modPatternRows   = 64
	modBytesPerNote  = 4
	mod31SampleCount = 31
	mod15SampleCount = 15
	mod31MagicOffset = 0x438
)

// modFinetuneRate is the classic ProTracker finetune -> C-3 playback
// rate table (finetune values 0..7 positive, 8..15 representing -8..-1).
var modFinetuneRate = [16]uint32{
	8363, 8413, 8463, 8529, 8581, 8651, 8723, 8757,
	7895, 7941, 7985, 8046, 8107, 8169, 8232, 8280,
}

type modParser struct{}

func (modParser) Label() string { return "MOD" }

func (modParser) Sniff(data []byte) bool {
	return len(data) >= 20+mod15SampleCount*30+2+128
}

func (p modParser) Parse(data []byte) (*Parsed, error) {
	channels, variant31 := modVariant(data)

	sampleCount := mod15SampleCount
	if variant31 {
		sampleCount = mod31SampleCount
	}

	c := byteio.NewCursor(data)
	titleRaw, err := c.ReadExact(20)
	if err != nil {
		return nil, err
	}
	title, _ := strsan.Sanitize(titleRaw)

	type modSampleInfo struct {
		nameRaw              []byte
		lengthWords          uint16
		finetune             uint8
		loopStartWords       uint16
		loopLenWords         uint16
	}
	infos := make([]modSampleInfo, 0, sampleCount)
	for i := 0; i < sampleCount; i++ {
		nameRaw, err := c.ReadExact(22)
		if err != nil {
			return nil, err
		}
		lengthWords, err := c.ReadU16BE()
		if err != nil {
			return nil, err
		}
		finetune, err := c.ReadU8()
		if err != nil {
			return nil, err
		}
		if err := c.Skip(1); err != nil { // volume
			return nil, err
		}
		loopStart, err := c.ReadU16BE()
		if err != nil {
			return nil, err
		}
		loopLen, err := c.ReadU16BE()
		if err != nil {
			return nil, err
		}
		infos = append(infos, modSampleInfo{nameRaw, lengthWords, finetune & 0x0F, loopStart, loopLen})
	}

	songLength, err := c.ReadU8()
	if err != nil {
		return nil, err
	}
	if err := c.Skip(1); err != nil { // restart byte
		return nil, err
	}
	orderTable, err := c.ReadExact(128)
	if err != nil {
		return nil, err
	}

	if variant31 {
		if err := c.Skip(4); err != nil { // magic, already validated
			return nil, err
		}
	}

	patternCount := 0
	for i := 0; i < int(songLength) && i < len(orderTable); i++ {
		if int(orderTable[i])+1 > patternCount {
			patternCount = int(orderTable[i]) + 1
		}
	}
	patternBytes := patternCount * modPatternRows * channels * modBytesPerNote
	if err := c.Skip(patternBytes); err != nil {
		return nil, err
	}

	samples := make([]Sample, 0, sampleCount)
	for i, info := range infos {
		lengthBytes := uint32(info.lengthWords) * 2
		if lengthBytes == 0 {
			continue
		}
		ptr := uint32(c.Tell())
		if err := c.Skip(int(lengthBytes)); err != nil {
			break
		}
		if uint64(ptr)+uint64(lengthBytes) > uint64(len(data)) {
			continue
		}

		kind := LoopOff
		if info.loopLenWords > 1 {
			kind = LoopForward
		}

		name, _ := strsan.Sanitize(info.nameRaw)
		samples = append(samples, Sample{
			Name:     name,
			Length:   lengthBytes,
			Rate:     modFinetuneRate[info.finetune],
			Pointer:  ptr,
			Depth:    I8,
			Channel:  Channel{Stereo: false},
			IndexRaw: uint16(i),
			Looping: Loop{
				Start: uint32(info.loopStartWords) * 2,
				Stop:  uint32(info.loopStartWords+info.loopLenWords) * 2,
				Kind:  kind,
			},
		})
	}

	return &Parsed{
		DisplayName: title,
		FormatLabel: "MOD",
		Raw:         data,
		Samples:     samples,
	}, nil
}

// modVariant reports the channel count and whether data carries the
// 31-sample variant's marker at offset 0x438.
func modVariant(data []byte) (channels int, is31 bool) {
	if len(data) >= mod31MagicOffset+4 {
		tag := string(data[mod31MagicOffset : mod31MagicOffset+4])
		if ch, ok := modMagics[tag]; ok {
			return ch, true
		}
	}
	return 4, false
}
