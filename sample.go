// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

// Package module extracts embedded PCM audio samples from legacy
// tracker music files (IT, S3M, XM, MOD, UMX, MPTM) and re-encodes
// each one as a standalone audio file.
package module

import "github.com/kelindar/modrip/format"

// Sample, Depth, Channel, Loop and LoopKind are defined in package
// format (which this package parses through) and aliased here so
// callers of this package never need to import format directly.
type (
	Sample   = format.Sample
	Depth    = format.Depth
	Channel  = format.Channel
	Loop     = format.Loop
	LoopKind = format.LoopKind
)

const (
	U8  = format.U8
	I8  = format.I8
	U16 = format.U16
	I16 = format.I16
)

const (
	LoopOff      = format.LoopOff
	LoopForward  = format.LoopForward
	LoopBackward = format.LoopBackward
	LoopPingPong = format.LoopPingPong
)
