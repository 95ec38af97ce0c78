// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package module

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/kelindar/modrip/riperr"
	"golang.org/x/sync/errgroup"
)

// Ripper extracts every sample from a Source and writes one encoded
// file per sample. It holds no mutable state of its own besides its
// logger, so the same Ripper is safe to reuse (and safe to share)
// across concurrent rips.
type Ripper struct {
	cfg Config
	log *log.Logger
}

// NewRipper builds a Ripper from cfg. A nil logger means discard: the
// teacher returns errors and leaves logging to the caller, so library
// users who never call WithLogger pay nothing.
func NewRipper(cfg Config) *Ripper {
	return &Ripper{cfg: cfg, log: log.New(io.Discard)}
}

// WithLogger attaches a charmbracelet/log logger, handed to a *Module
// source for its soft-aborted decompression warnings. Sample headers
// skipped at parse time are not logged.
func (r *Ripper) WithLogger(l *log.Logger) *Ripper {
	r.log = l
	return r
}

// RipToDir extracts every non-empty sample in src into dir, one file
// per sample, in parallel. dir must already exist; this function never
// creates it. When SelfContained is set, output instead goes into
// dir/<module name, dots replaced with underscores>/, which this
// function does create provided it is empty or didn't exist.
//
// The result is nil if every sample succeeded, riperr.Errors wrapped
// in a riperr.PartialExtraction-kind *riperr.Error if some failed, and
// one wrapped in Extraction if all of them did. Context cancellation
// stops launching new per-sample work; in-flight work still completes.
func (r *Ripper) RipToDir(ctx context.Context, dir string, src Source) error {
	if m, ok := src.(*Module); ok {
		m.SetLogger(r.log)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("module: destination %q: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("module: destination %q is not a directory", dir)
	}

	target := dir
	if r.cfg.SelfContained {
		sub := strings.ReplaceAll(src.Name(), ".", "_")
		if sub == "" {
			sub = "module"
		}
		target = filepath.Join(dir, sub)
		if err := ensureEmptyDir(target); err != nil {
			return err
		}
	}

	samples := src.Samples()
	nonEmpty := make([]*Sample, 0, len(samples))
	for i := range samples {
		if samples[i].Length > 0 {
			nonEmpty = append(nonEmpty, &samples[i])
		}
	}
	if len(nonEmpty) == 0 {
		return riperr.New(riperr.EmptyModule, "", 0, fmt.Errorf("module %q has no non-empty samples", src.Name()))
	}

	rctx := buildContext(nonEmpty, r.cfg.encoder.Extension())

	var mu sync.Mutex
	var collected riperr.Errors
	g, gctx := errgroup.WithContext(ctx)

	for i, s := range nonEmpty {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			if err := r.ripOne(src, s, target, rctx, i); err != nil {
				mu.Lock()
				collected = append(collected, toRipErr(s, err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	switch {
	case len(collected) == 0:
		return nil
	case len(collected) == len(nonEmpty):
		return riperr.New(riperr.Extraction, "", 0, collected)
	default:
		return riperr.New(riperr.PartialExtraction, "", 0, collected)
	}
}

func (r *Ripper) ripOne(src Source, s *Sample, dir string, rctx Context, position int) error {
	name := r.cfg.Namer(s, rctx, position)
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return riperr.New(riperr.IO, s.DisplayName(), s.IndexRaw1(), err)
	}
	defer f.Close()

	if err := r.RipToWriterSample(src, s, f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Sync(); err != nil {
		return riperr.New(riperr.IO, s.DisplayName(), s.IndexRaw1(), err)
	}
	return nil
}

// RipToWriter extracts the sample at the given zero-based position in
// src.Samples() into an already-open writer, for in-memory or
// streaming callers that don't want files written for them.
func (r *Ripper) RipToWriter(src Source, w io.Writer, index int) error {
	samples := src.Samples()
	if index < 0 || index >= len(samples) {
		return fmt.Errorf("module: sample index %d out of range [0,%d)", index, len(samples))
	}
	return r.RipToWriterSample(src, &samples[index], w)
}

// RipToWriterSample is RipToWriter's shared worker body: fetch PCM
// (the decoder itself warns and returns a partial buffer on a
// soft-abort; only a structurally corrupt bitstream reaches us as an
// error here) and hand the result to the configured encoder.
func (r *Ripper) RipToWriterSample(src Source, s *Sample, w io.Writer) error {
	pcm, err := src.PCM(s)
	if err != nil {
		return err
	}
	return r.cfg.encoder.Write(w, s, pcm)
}

func buildContext(samples []*Sample, ext string) Context {
	var max uint16
	for _, s := range samples {
		if s.IndexRaw > max {
			max = s.IndexRaw
		}
	}
	return Context{MaxIndexRaw: max, Extension: ext}
}

func toRipErr(s *Sample, err error) *riperr.Error {
	var re *riperr.Error
	if as, ok := err.(*riperr.Error); ok {
		re = as
	} else {
		re = riperr.New(riperr.AudioFormat, s.DisplayName(), s.IndexRaw1(), err)
	}
	return re
}

func ensureEmptyDir(path string) error {
	entries, err := os.ReadDir(path)
	switch {
	case os.IsNotExist(err):
		return os.MkdirAll(path, 0o755)
	case err != nil:
		return err
	case len(entries) > 0:
		return fmt.Errorf("module: self-contained destination %q is not empty", path)
	default:
		return nil
	}
}
