// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package module

import "github.com/kelindar/modrip/encode"

// Config selects the encoder and output layout for a rip. The zero
// value is not usable; build one with NewConfig.
type Config struct {
	AudioFormat   encode.AudioFormat
	SelfContained bool
	Namer         Namer
	encoder       encode.Encoder
}

// Option configures a Config, mirroring the teacher's functional-options
// pattern (mul.Option, uop.Option, uofile.Option) for the genuinely
// optional parts of configuration.
type Option func(*Config)

// WithNamer overrides the default zero-padded filename scheme.
func WithNamer(n Namer) Option {
	return func(c *Config) { c.Namer = n }
}

// WithSelfContained wraps output in a per-module subdirectory instead
// of writing directly into the destination directory.
func WithSelfContained() Option {
	return func(c *Config) { c.SelfContained = true }
}

// NewConfig builds a Config for the given audio format, applying any
// options, and resolves the concrete Encoder up front so RipToDir and
// RipToWriter never have to handle an unknown-format error mid-rip.
func NewConfig(format encode.AudioFormat, opts ...Option) (Config, error) {
	enc, err := encode.ByFormat(format)
	if err != nil {
		return Config{}, err
	}

	c := Config{
		AudioFormat: format,
		Namer:       DefaultNamer,
		encoder:     enc,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c, nil
}
