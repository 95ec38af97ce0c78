// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

// Package rippertest synthesizes minimal, valid (or deliberately
// corrupt) tracker module byte sequences for unit tests, in place of
// the real, copyrighted .it/.s3m/.xm/.mod/.umx files the teacher's own
// tests load from an external fixtures directory.
package rippertest

import "encoding/binary"

func le16(v uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return b
}

func le32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func be16(v uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return b
}

func padded(s string, n int) []byte {
	b := make([]byte, n)
	copy(b, s)
	return b
}

func zeros(n int) []byte { return make([]byte, n) }

// ITOptions configures ITModule.
type ITOptions struct {
	Title       string
	CompatVer   uint16
	PCM         []byte
	Rate        uint32
	Stereo      bool
	Bits16      bool
	Compressed  bool
	Loop        bool
}

// ITModule builds a minimal single-sample Impulse Tracker module: one
// order, no instruments, one sample whose header sits right after the
// 0xC0-byte file header, the one-byte order list and the one-entry
// sample-pointer table.
func ITModule(opt ITOptions) []byte {
	if opt.CompatVer == 0 {
		opt.CompatVer = 0x0214
	}
	if opt.Rate == 0 {
		opt.Rate = 8363
	}

	const ordNum, insNum, smpNum = 1, 0, 1
	tableOffset := 0x00C0 + ordNum + 4*insNum
	sampleHeaderOffset := tableOffset + 4*smpNum // one u32 pointer
	sampleDataOffset := sampleHeaderOffset + 0x50

	buf := make([]byte, 0, sampleDataOffset+len(opt.PCM))
	buf = append(buf, []byte("IMPM")...)
	buf = append(buf, padded(opt.Title, 26)...)
	buf = append(buf, zeros(2)...)
	buf = append(buf, le16(ordNum)...)
	buf = append(buf, le16(insNum)...)
	buf = append(buf, le16(smpNum)...)
	buf = append(buf, zeros(4)...)
	buf = append(buf, le16(opt.CompatVer)...)

	for len(buf) < tableOffset {
		buf = append(buf, 0)
	}
	buf = append(buf, le32(uint32(sampleHeaderOffset))...)

	for len(buf) < sampleHeaderOffset {
		buf = append(buf, 0)
	}

	flags := byte(0)
	if opt.Bits16 {
		flags |= 1 << 1
	}
	if opt.Stereo {
		flags |= 1 << 2
	}
	if opt.Compressed {
		flags |= 1 << 3
	}
	if opt.Loop {
		flags |= 1 << 4
	}

	channels := uint32(1)
	if opt.Stereo {
		channels = 2
	}
	depthBytes := uint32(1)
	if opt.Bits16 {
		depthBytes = 2
	}
	frames := uint32(len(opt.PCM)) / (channels * depthBytes)

	buf = append(buf, []byte("IMPS")...)
	buf = append(buf, padded("sample.wav", 12)...)
	buf = append(buf, zeros(2)...)
	buf = append(buf, flags)
	buf = append(buf, 64) // default volume
	buf = append(buf, padded("sample", 26)...)
	buf = append(buf, 1) // cvt: signed
	buf = append(buf, 0) // default pan
	buf = append(buf, le32(frames)...)
	buf = append(buf, le32(0)...) // loop start
	buf = append(buf, le32(0)...) // loop end
	buf = append(buf, le32(opt.Rate)...)
	buf = append(buf, zeros(8)...) // sustain loop
	buf = append(buf, le32(uint32(sampleDataOffset))...)

	buf = append(buf, opt.PCM...)
	return buf
}

// S3MOptions configures S3MModule.
type S3MOptions struct {
	Title  string
	PCM    []byte
	Rate   uint32
	Signed bool
	Stereo bool
	Bits16 bool
}

// S3MModule builds a minimal single-instrument Scream Tracker 3 module.
func S3MModule(opt S3MOptions) []byte {
	if opt.Rate == 0 {
		opt.Rate = 8363
	}
	const ordCount, insCount = 0, 1
	ptrTableOffset := 0x0060 + ordCount
	instrOffset := ptrTableOffset + 2*insCount
	// Round instrument pointer up to a multiple of 16, as real files do.
	for instrOffset%16 != 0 {
		instrOffset++
	}

	buf := make([]byte, 0, 256+len(opt.PCM))
	buf = append(buf, padded(opt.Title, 28)...)
	buf = append(buf, 0x1A, 0x10)
	buf = append(buf, zeros(2)...)
	buf = append(buf, le16(ordCount)...)
	buf = append(buf, le16(insCount)...)
	buf = append(buf, zeros(6)...)
	if opt.Signed {
		buf = append(buf, le16(1)...)
	} else {
		buf = append(buf, le16(0)...)
	}
	for len(buf) < 0x2C {
		buf = append(buf, 0)
	}
	buf = append(buf, []byte("SCRM")...)

	for len(buf) < ptrTableOffset {
		buf = append(buf, 0)
	}
	buf = append(buf, le16(uint16(instrOffset>>4))...)

	for len(buf) < instrOffset {
		buf = append(buf, 0)
	}

	flags := byte(0)
	if opt.Stereo {
		flags |= 1 << 1
	}
	if opt.Bits16 {
		flags |= 1 << 2
	}
	channels := uint32(1)
	if opt.Stereo {
		channels = 2
	}
	depthBytes := uint32(1)
	if opt.Bits16 {
		depthBytes = 2
	}
	lengthFrames := uint32(len(opt.PCM)) / (channels * depthBytes)

	headerStart := len(buf)
	dataOffset := headerStart + 1 + 12 + 3 + 4 + 4 + 4 + 3 + 1 + 4 + 12 + 28 + 4
	ptr24 := uint32(dataOffset)

	buf = append(buf, 1) // PCM type
	buf = append(buf, padded("inst.wav", 12)...)
	buf = append(buf, byte(ptr24), byte(ptr24>>8), byte(ptr24>>16))
	buf = append(buf, le32(lengthFrames)...)
	buf = append(buf, le32(0)...) // loop start
	buf = append(buf, le32(0)...) // loop stop
	buf = append(buf, 64, 0, 0)   // vol, reserved, pack
	buf = append(buf, flags)
	buf = append(buf, le32(opt.Rate)...)
	buf = append(buf, zeros(12)...)
	buf = append(buf, padded("instrument", 28)...)
	buf = append(buf, []byte("SCRS")...)

	buf = append(buf, opt.PCM...)
	return buf
}

// XMOptions configures XMModule.
type XMOptions struct {
	Title string
	PCM   []byte // delta-coded, as on disk
	Bits16 bool
}

// XMModule builds a minimal single-instrument, single-sample, zero-
// pattern Extended Module.
func XMModule(opt XMOptions) []byte {
	const headerSize = 20 // fixed fields only; no patterns/instruments beyond song length etc counted here
	buf := make([]byte, 0, 128+len(opt.PCM))
	buf = append(buf, []byte("Extended Module: ")...)
	buf = append(buf, padded(opt.Title, 20)...)
	buf = append(buf, 0x1A)
	buf = append(buf, padded("rippertest", 20)...)
	buf = append(buf, le16(0x0104)...)

	buf = append(buf, le32(headerSize)...)
	buf = append(buf, le16(0)...) // song length
	buf = append(buf, le16(0)...) // restart pos
	buf = append(buf, le16(4)...) // channels
	buf = append(buf, le16(0)...) // pattern count
	buf = append(buf, le16(1)...) // instrument count
	buf = append(buf, zeros(headerSize-10)...)

	instStart := len(buf)
	instSize := uint32(29 + 4 + 96 + 48 + 48 + 2 + 2 + 2 + 2 + 2 + 6 + 2 + 2)
	buf = append(buf, le32(instSize)...)
	buf = append(buf, padded("instrument", 22)...)
	buf = append(buf, 0) // type
	buf = append(buf, le16(1)...) // num samples

	for len(buf) < instStart+int(instSize) {
		buf = append(buf, 0)
	}

	depthFlag := byte(0)
	if opt.Bits16 {
		depthFlag = 1 << 4
	}

	buf = append(buf, le32(uint32(len(opt.PCM)))...)
	buf = append(buf, le32(0)...) // loop start
	buf = append(buf, le32(0)...) // loop len
	buf = append(buf, 64)         // volume
	buf = append(buf, 0)          // finetune
	buf = append(buf, depthFlag)  // type: loop off, depth flag
	buf = append(buf, 128)        // panning
	buf = append(buf, 0)          // relative note
	buf = append(buf, 0)          // reserved
	buf = append(buf, padded("sample", 22)...)

	buf = append(buf, opt.PCM...)
	return buf
}

// MODOptions configures MODModule.
type MODOptions struct {
	Title string
	PCM   []byte
	Variant31 bool
}

// MODModule builds a minimal MOD module (15- or 31-sample variant)
// with one non-empty sample, zero song length, and no pattern data.
func MODModule(opt MODOptions) []byte {
	sampleCount := 15
	if opt.Variant31 {
		sampleCount = 31
	}

	buf := make([]byte, 0, 1200+len(opt.PCM))
	buf = append(buf, padded(opt.Title, 20)...)

	for i := 0; i < sampleCount; i++ {
		buf = append(buf, padded("", 22)...)
		if i == 0 {
			buf = append(buf, be16(uint16(len(opt.PCM)/2))...)
		} else {
			buf = append(buf, be16(0)...)
		}
		buf = append(buf, 0) // finetune
		buf = append(buf, 64) // volume
		buf = append(buf, be16(0)...) // loop start
		buf = append(buf, be16(0)...) // loop len
	}

	buf = append(buf, 0) // song length
	buf = append(buf, 0) // restart byte
	buf = append(buf, zeros(128)...)

	if opt.Variant31 {
		buf = append(buf, []byte("M.K.")...)
	}

	buf = append(buf, opt.PCM...)
	return buf
}

// UMXWrapping builds a minimal Unreal package wrapping a single export
// whose serialized data embeds inner (typically the output of one of
// the other *Module builders in this package).
func UMXWrapping(inner []byte) []byte {
	const version = 68
	header := []byte{0x9E, 0x2A, 0x83, 0xC1}
	header = append(header, le32(version)...)
	header = append(header, zeros(8)...) // package flags + reserved
	header = append(header, le32(0)...)  // name count
	header = append(header, le32(0)...)  // name offset
	header = append(header, le32(1)...)  // export count

	exportTableOffset := len(header) + 4
	header = append(header, le32(uint32(exportTableOffset))...)

	// One export entry: class_index(0), super_index(0), package(u32 0),
	// object_name_index(0), object_flags(u32 0), serial_size, serial_offset.
	entryPrefix := []byte{0, 0}
	entryPrefix = append(entryPrefix, le32(0)...)
	entryPrefix = append(entryPrefix, 0)
	entryPrefix = append(entryPrefix, le32(0)...)

	serialSize := compactIndexByte(uint32(len(inner)))

	// serial_offset is itself compact-index encoded and counts toward
	// the very position it names; fixed-point on the encoded width,
	// which only changes at 0x40-byte boundaries, converges immediately.
	offsetBytes := []byte{0}
	for {
		candidate := uint32(len(header) + len(entryPrefix) + len(serialSize) + len(offsetBytes))
		encoded := compactIndexByte(candidate)
		if len(encoded) == len(offsetBytes) {
			offsetBytes = encoded
			break
		}
		offsetBytes = encoded
	}

	buf := append([]byte{}, header...)
	buf = append(buf, entryPrefix...)
	buf = append(buf, serialSize...)
	buf = append(buf, offsetBytes...)
	buf = append(buf, inner...)
	return buf
}

// compactIndexByte encodes a non-negative value below 0x2000 as
// compact-index bytes (one byte under 0x40, two otherwise), sufficient
// for synthetic fixtures.
func compactIndexByte(v uint32) []byte {
	if v < 0x40 {
		return []byte{byte(v)}
	}
	return []byte{byte(v&0x3F) | 0x40, byte(v >> 6)}
}
