// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package module

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/kelindar/intmap"
	"github.com/kelindar/modrip/format"
	"github.com/kelindar/modrip/internal/itcodec"
	"github.com/kelindar/modrip/riperr"
)

// Source is the minimal surface the Ripper needs from a parsed
// module: its sample table and a way to fetch each sample's PCM.
// Module satisfies it; so does the mock package's test double.
type Source interface {
	Name() string
	Samples() []Sample
	PCM(s *Sample) ([]byte, error)
}

// Module is the uniform, read-only view over a parsed tracker module,
// realized as the teacher's mul.Reader is: a cached lookup table
// (here from index_raw to slot, via intmap.Map) over entries parsed
// once up front and retained alongside the original file bytes.
type Module struct {
	name   string
	format string
	it215  bool
	raw    []byte
	list   []Sample
	lookup *intmap.Map
	logger *log.Logger
}

// SetLogger attaches a logger used to warn on soft-aborted
// decompression (an invalid bit width mid-stream, per the IT codec's
// own recovery rule). A nil logger discards these warnings.
func (m *Module) SetLogger(l *log.Logger) { m.logger = l }

// Name returns the module's embedded title.
func (m *Module) Name() string { return m.name }

// FormatLabel names the container this module was parsed from (IT,
// S3M, XM, MOD, MPTM, or UMX/<inner>).
func (m *Module) FormatLabel() string { return m.format }

// Samples returns every non-empty, in-bounds sample this module's
// header table named.
func (m *Module) Samples() []Sample { return m.list }

// BySlot looks up a sample by its native index_raw slot, the teacher's
// mirrored fast-lookup pattern (mul.Reader.lookup) generalized from a
// byte-offset table to a sample-table slot.
func (m *Module) BySlot(indexRaw uint16) (*Sample, bool) {
	slot, ok := m.lookup.Load(uint32(indexRaw))
	if !ok {
		return nil, false
	}
	return &m.list[slot], true
}

// PCM returns s's decoded PCM bytes: a zero-copy slice of the
// module's own buffer when the sample isn't compressed, the result of
// delta-decoding that slice when it's DeltaCoded (XM's sample
// encoding), or the result of running the IT bitstream decompressor
// over raw[pointer:] when it's Compressed.
func (m *Module) PCM(s *Sample) ([]byte, error) {
	start, end := s.PointerRange()
	if !s.Compressed {
		if uint64(end) > uint64(len(m.raw)) {
			return nil, riperr.New(riperr.BadSample, s.DisplayName(), s.IndexRaw1(), fmt.Errorf("pointer range [%d,%d) exceeds module size %d", start, end, len(m.raw)))
		}
		raw := m.raw[start:end]
		if s.DeltaCoded {
			return format.DeltaDecodeXM(raw, s.Depth.Is8Bit()), nil
		}
		return raw, nil
	}

	if uint64(start) > uint64(len(m.raw)) {
		return nil, riperr.New(riperr.BadSample, s.DisplayName(), s.IndexRaw1(), fmt.Errorf("compressed sample pointer %d exceeds module size %d", start, len(m.raw)))
	}

	frames := int(s.Length) / (s.Channel.Channels() * s.Depth.Bytes())
	opt := itcodec.Options{IT215: m.it215, Logger: m.logger}

	if s.Depth.Bits() == 16 {
		out, err := itcodec.Decode16(m.raw[start:], frames, opt)
		if err != nil {
			return nil, riperr.New(riperr.BadSample, s.DisplayName(), s.IndexRaw1(), err)
		}
		return out, nil
	}
	out, err := itcodec.Decode8(m.raw[start:], frames, opt)
	if err != nil {
		return nil, riperr.New(riperr.BadSample, s.DisplayName(), s.IndexRaw1(), err)
	}
	return out, nil
}

// fromParsed builds a Module from a format.Parsed result, populating
// the fast lookup table the way mul.Reader.loadIndex populates its own.
func fromParsed(p *format.Parsed) *Module {
	m := &Module{
		name:   p.DisplayName,
		format: p.FormatLabel,
		it215:  p.IT215,
		raw:    p.Raw,
		list:   p.Samples,
		lookup: intmap.New(len(p.Samples)+1, .95),
	}
	for slot, s := range p.Samples {
		m.lookup.Store(uint32(s.IndexRaw), uint32(slot))
	}
	return m
}
