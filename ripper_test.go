// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package module_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	module "github.com/kelindar/modrip"
	"github.com/kelindar/modrip/encode"
	"github.com/kelindar/modrip/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSrc(t *testing.T, n int) *mock.Module {
	t.Helper()
	src := mock.New("demo")
	for i := 0; i < n; i++ {
		src.Add(module.Sample{
			IndexRaw: uint16(i),
			Name:     "s",
			Length:   4,
			Depth:    module.U8,
		}, []byte{1, 2, 3, 4})
	}
	return src
}

func TestRipToDir_AllSucceed(t *testing.T) {
	dir := t.TempDir()
	cfg, err := module.NewConfig(encode.RAW)
	require.NoError(t, err)
	r := module.NewRipper(cfg)

	src := newSrc(t, 3)
	err = r.RipToDir(context.Background(), dir, src)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestRipToDir_PartialExtraction(t *testing.T) {
	dir := t.TempDir()
	cfg, err := module.NewConfig(encode.RAW)
	require.NoError(t, err)
	r := module.NewRipper(cfg)

	src := newSrc(t, 3)
	src.FailPCM(1, errors.New("corrupt sample"))

	err = r.RipToDir(context.Background(), dir, src)
	require.Error(t, err)

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Len(t, entries, 2)
}

func TestRipToDir_AllFail(t *testing.T) {
	dir := t.TempDir()
	cfg, err := module.NewConfig(encode.RAW)
	require.NoError(t, err)
	r := module.NewRipper(cfg)

	src := newSrc(t, 2)
	src.FailPCM(0, errors.New("boom"))
	src.FailPCM(1, errors.New("boom"))

	err = r.RipToDir(context.Background(), dir, src)
	require.Error(t, err)
}

func TestRipToDir_EmptyModule(t *testing.T) {
	dir := t.TempDir()
	cfg, err := module.NewConfig(encode.RAW)
	require.NoError(t, err)
	r := module.NewRipper(cfg)

	src := mock.New("empty")
	err = r.RipToDir(context.Background(), dir, src)
	assert.Error(t, err)
}

func TestRipToDir_RejectsMissingDestination(t *testing.T) {
	cfg, err := module.NewConfig(encode.RAW)
	require.NoError(t, err)
	r := module.NewRipper(cfg)

	src := newSrc(t, 1)
	err = r.RipToDir(context.Background(), filepath.Join(t.TempDir(), "missing"), src)
	assert.Error(t, err)
}

func TestRipToDir_SelfContainedSubdirectory(t *testing.T) {
	dir := t.TempDir()
	cfg, err := module.NewConfig(encode.RAW, module.WithSelfContained())
	require.NoError(t, err)
	r := module.NewRipper(cfg)

	src := newSrc(t, 1)
	require.NoError(t, r.RipToDir(context.Background(), dir, src))

	entries, err := os.ReadDir(filepath.Join(dir, "demo"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRipToWriter_SingleSample(t *testing.T) {
	cfg, err := module.NewConfig(encode.RAW)
	require.NoError(t, err)
	r := module.NewRipper(cfg)

	src := newSrc(t, 1)
	var buf bytes.Buffer
	require.NoError(t, r.RipToWriter(src, &buf, 0))
	assert.Equal(t, []byte{1, 2, 3, 4}, buf.Bytes())
}

func TestRipToWriter_IndexOutOfRange(t *testing.T) {
	cfg, err := module.NewConfig(encode.RAW)
	require.NoError(t, err)
	r := module.NewRipper(cfg)

	src := newSrc(t, 1)
	var buf bytes.Buffer
	assert.Error(t, r.RipToWriter(src, &buf, 5))
}
