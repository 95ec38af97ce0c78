// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

// Package mock provides an in-memory module.Source implementation for
// exercising the Ripper without a real tracker file on disk, mirroring
// the teacher's own mock SDK (a plain struct plus an Add(any) registrar).
package mock

import (
	"errors"
	"fmt"

	"github.com/kelindar/modrip"
)

// ErrNotFound mirrors the teacher's mock package sentinel, returned
// when a requested sample has no registered PCM.
var ErrNotFound = errors.New("mock: not found")

// Module is a lightweight in-memory implementation of module.Source.
type Module struct {
	name    string
	samples []module.Sample
	pcm     map[uint16][]byte
	failAt  map[uint16]error
}

// New creates an empty mock module with the given display name.
func New(name string) *Module {
	return &Module{
		name:   name,
		pcm:    make(map[uint16][]byte),
		failAt: make(map[uint16]error),
	}
}

// Add registers a sample and the PCM bytes its PCM method should hand
// back for it.
func (m *Module) Add(s module.Sample, pcm []byte) {
	m.samples = append(m.samples, s)
	m.pcm[s.IndexRaw] = pcm
}

// FailPCM makes PCM return err for the sample with the given
// index_raw, simulating a corrupt or truncated sample without having
// to construct a real malformed bitstream.
func (m *Module) FailPCM(indexRaw uint16, err error) {
	m.failAt[indexRaw] = err
}

// Name returns the module's configured display name.
func (m *Module) Name() string { return m.name }

// Samples returns every registered sample.
func (m *Module) Samples() []module.Sample { return m.samples }

// PCM returns the PCM bytes registered for s, or ErrNotFound /
// whatever FailPCM configured.
func (m *Module) PCM(s *module.Sample) ([]byte, error) {
	if err, ok := m.failAt[s.IndexRaw]; ok {
		return nil, err
	}
	data, ok := m.pcm[s.IndexRaw]
	if !ok {
		return nil, fmt.Errorf("%w: sample index_raw %d", ErrNotFound, s.IndexRaw)
	}
	return data, nil
}
