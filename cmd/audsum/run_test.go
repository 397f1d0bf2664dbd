// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ik5/audsum"
	"github.com/ik5/audsum/audio"
	"github.com/ik5/audsum/internal/audiotest"
	"github.com/ik5/audsum/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbauerster/mpb/v8/decor"
	"go.uber.org/zap"
)

func newRunner(out io.Writer) *runner {
	return &runner{
		engine:  audsum.New(),
		logger:  zap.NewNop().Sugar(),
		out:     out,
		workers: 4,
	}
}

func writeFLAC(t *testing.T, path string, channels ...[]int32) {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, audiotest.WriteFLAC(&buf, 44100, 16, 512, channels...))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func lines(s string) []string {
	return strings.Split(strings.TrimSpace(s), "\n")
}

func TestRun_PrintsInArgumentOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := filepath.Join(dir, "a.flac")
	b := filepath.Join(dir, "b.mp3")
	writeFLAC(t, a, audiotest.Ramp(3000, 0, 2))
	require.NoError(t, os.WriteFile(b, audiotest.MP3Stream(3, true), 0o644))

	var out bytes.Buffer
	failed, err := newRunner(&out).run(context.Background(),
		[]string{b, filepath.Join(dir, "missing.flac"), a})
	require.NoError(t, err)
	assert.Equal(t, 1, failed)

	sumA, err := audsum.ComputeChecksum(a)
	require.NoError(t, err)
	sumB, err := audsum.ComputeChecksum(b)
	require.NoError(t, err)

	assert.Equal(t, []string{
		sumB.String() + "  " + b,
		sumA.String() + "  " + a,
	}, lines(out.String()))
}

func TestRun_DirectorySkipsUnsupported(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "disc1"), 0o755))
	writeFLAC(t, filepath.Join(dir, "disc1", "01.flac"), audiotest.Ramp(1000, 5, 1))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "disc1", "notes.txt"), []byte("liner notes\n"), 0o644))

	var out bytes.Buffer
	failed, err := newRunner(&out).run(context.Background(), []string{dir})
	require.NoError(t, err)

	assert.Zero(t, failed)
	got := lines(out.String())
	require.Len(t, got, 1)
	assert.True(t, strings.HasSuffix(got[0], "01.flac"))
}

func TestRun_ExplicitUnsupportedFails(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("liner notes\n"), 0o644))

	var out bytes.Buffer
	failed, err := newRunner(&out).run(context.Background(), []string{path})
	require.NoError(t, err)

	assert.Equal(t, 1, failed)
	assert.Empty(t, out.String())
}

func TestRun_Cache(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.flac")
	writeFLAC(t, path, audiotest.Ramp(2000, -1000, 1))

	cache, err := store.Open(filepath.Join(dir, "cache"), nil)
	require.NoError(t, err)
	defer cache.Close()

	var first bytes.Buffer
	r := newRunner(&first)
	r.cache = cache
	failed, err := r.run(context.Background(), []string{path})
	require.NoError(t, err)
	require.Zero(t, failed)

	// An engine without decoders can only succeed through the cache.
	var second bytes.Buffer
	r = newRunner(&second)
	r.cache = cache
	r.engine = audsum.New(audsum.WithRegistry(audio.NewRegistry()))
	failed, err = r.run(context.Background(), []string{path})
	require.NoError(t, err)
	assert.Zero(t, failed)
	assert.Equal(t, first.String(), second.String())

	// Touching the file invalidates the entry.
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, later, later))
	second.Reset()
	failed, err = r.run(context.Background(), []string{path})
	require.NoError(t, err)
	assert.Equal(t, 1, failed)
}

func TestRun_Dupes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ramp := audiotest.Ramp(2000, 0, 3)
	a := filepath.Join(dir, "a.flac")
	b := filepath.Join(dir, "b.flac")
	c := filepath.Join(dir, "c.flac")
	writeFLAC(t, a, ramp)
	writeFLAC(t, b, audiotest.Ramp(2000, 1, 3))
	writeFLAC(t, c, ramp)

	var out bytes.Buffer
	r := newRunner(&out)
	r.dupes = true
	failed, err := r.run(context.Background(), []string{a, b, c})
	require.NoError(t, err)
	require.Zero(t, failed)

	assert.Contains(t, out.String(), "duplicates (2 files):\n  "+a+"\n  "+c+"\n")
	assert.Equal(t, 1, strings.Count(out.String(), "duplicates"))
}

func TestRun_DupesZeroChecksum(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	x := audiotest.Ramp(1000, 0, 1)
	y := audiotest.Ramp(1000, 7, 2)
	a := filepath.Join(dir, "a.flac")
	b := filepath.Join(dir, "b.flac")
	c := filepath.Join(dir, "c.flac")
	// Identical channel pairs fold to a zero checksum.
	writeFLAC(t, a, x, x)
	writeFLAC(t, b, y, y)
	writeFLAC(t, c, x, x)

	var out bytes.Buffer
	r := newRunner(&out)
	r.dupes = true
	_, err := r.run(context.Background(), []string{a, b, c})
	require.NoError(t, err)
	assert.NotContains(t, out.String(), "duplicates")

	out.Reset()
	r.strict = true
	_, err = r.run(context.Background(), []string{a, b, c})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "duplicates (2 files):\n  "+a+"\n  "+c+"\n")
}

func TestRun_Progress(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var args []string
	for _, name := range []string{"a.mp3", "b.mp3", "c.mp3"} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, audiotest.MP3Stream(2, true), 0o644))
		args = append(args, p)
	}

	var out, progress bytes.Buffer
	r := newRunner(&out)
	r.progress = &progress
	r.workers = 2
	failed, err := r.run(context.Background(), args)
	require.NoError(t, err)

	assert.Zero(t, failed)
	assert.Len(t, lines(out.String()), 3)
}

func TestTick_FeedsETA(t *testing.T) {
	t.Parallel()

	var progress bytes.Buffer
	r := newRunner(io.Discard)
	r.progress = &progress
	p, bar := r.newProgress(20)

	// Past the moving average warmup, each file took about a second.
	for range 12 {
		tick(bar, time.Now().Add(-time.Second))
	}

	eta := make(chan string, 1)
	bar.TraverseDecorators(func(d decor.Decorator) {
		if _, ok := d.(decor.EwmaDecorator); ok {
			s, _ := d.Decor(decor.Statistics{Total: 20, Current: 12})
			eta <- strings.TrimSpace(s)
		}
	})

	select {
	case got := <-eta:
		assert.Equal(t, "8s", got)
	case <-time.After(5 * time.Second):
		t.Fatal("no ETA decorator on the bar")
	}

	assert.Equal(t, int64(12), bar.Current())
	bar.Abort(true)
	p.Wait()

	tick(nil, time.Now())
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a.flac")
	writeFLAC(t, path, audiotest.Ramp(100, 0, 1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	_, err := newRunner(&out).run(ctx, []string{path})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "audsum.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 2\ncache_dir: /tmp/c\nlog_level: warn\n"), 0o644))

	cfg, err := loadConfig(&cli{Config: path})
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "/tmp/c", cfg.CacheDir)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.False(t, cfg.Strict)

	cfg, err = loadConfig(&cli{Config: path, Workers: 8, LogLevel: "debug", Strict: true})
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "/tmp/c", cfg.CacheDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Strict)

	_, err = loadConfig(&cli{LogLevel: "chatty"})
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	for _, lvl := range []string{"debug", "info", "error"} {
		cfg, err := loadConfig(&cli{LogLevel: lvl})
		require.NoError(t, err)

		logger, err := newLogger(cfg)
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zap.ErrorLevel))
	}
}
