// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/ik5/audsum"
	"github.com/ik5/audsum/digest"
	"github.com/ik5/audsum/store"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type runner struct {
	engine *audsum.Engine
	cache  *store.Store // nil disables caching
	logger *zap.SugaredLogger
	out    io.Writer
	// progress receives the progress bar, nil disables it.
	progress io.Writer
	workers  int
	strict   bool
	dupes    bool
}

type target struct {
	path string
	// walked is set for files found inside a directory argument.
	walked bool
}

type outcome struct {
	target
	sum     audsum.Checksum
	digests []digest.Digest
	err     error
}

// run checksums every file named by args and prints the results in
// argument order. It returns the number of files that failed; err is only
// set when ctx was cancelled.
func (r *runner) run(ctx context.Context, args []string) (int, error) {
	targets, err := expand(args)
	if err != nil {
		return 0, err
	}

	var (
		p   *mpb.Progress
		bar *mpb.Bar
	)
	if r.progress != nil && len(targets) > 0 {
		p, bar = r.newProgress(len(targets))
	}

	results := make([]outcome, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.workers, 1))
	for i, t := range targets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			start := time.Now()
			results[i] = r.checksum(t)
			tick(bar, start)

			return nil
		})
	}

	err = g.Wait()
	if p != nil {
		if err != nil {
			bar.Abort(false)
		}
		p.Wait()
	}
	if err != nil {
		return 0, err
	}

	failed := r.report(results)
	if r.dupes {
		r.reportDupes(results)
	}

	return failed, nil
}

func (r *runner) newProgress(total int) (*mpb.Progress, *mpb.Bar) {
	p := mpb.New(mpb.WithOutput(r.progress), mpb.WithWidth(64))
	bar := p.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name("Hashing: "),
			decor.CountersNoUnit("%d / %d"),
		),
		mpb.AppendDecorators(
			decor.Percentage(),
			decor.EwmaETA(decor.ET_STYLE_GO, 60),
		),
	)

	return p, bar
}

// tick advances bar by one file. The ETA decorator only learns from
// durations passed through the Ewma increments.
func tick(bar *mpb.Bar, start time.Time) {
	if bar != nil {
		bar.EwmaIncrement(time.Since(start))
	}
}

// expand replaces directory arguments by the regular files below them.
// Anything else is kept as given so the engine reports on it.
func expand(args []string) ([]target, error) {
	var targets []target
	for _, arg := range args {
		fi, err := os.Stat(arg)
		if err != nil || !fi.IsDir() {
			targets = append(targets, target{path: arg})
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.Type().IsRegular() {
				targets = append(targets, target{path: path, walked: true})
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", arg, err)
		}
	}

	return targets, nil
}

func (r *runner) checksum(t target) outcome {
	o := outcome{target: t}

	key, err := filepath.Abs(t.path)
	if err != nil {
		key = t.path
	}
	fi, statErr := os.Stat(t.path)
	cached := r.cache != nil && statErr == nil

	// Strict comparison needs the per-channel digests, which are not cached.
	if cached && !r.strict {
		sum, ok, err := r.cache.Get(key, fi.Size(), fi.ModTime())
		if err != nil {
			r.logger.Warnw("cache lookup failed", "path", t.path, "error", err)
		}
		if ok {
			r.logger.Debugw("cache hit", "path", t.path)
			o.sum = sum
			return o
		}
	}

	res, err := r.engine.Compute(t.path)
	if err != nil {
		o.err = err
		return o
	}
	o.sum, o.digests = res.Checksum, res.ChannelDigests

	if cached {
		if err := r.cache.Put(key, fi.Size(), fi.ModTime(), res.Checksum); err != nil {
			r.logger.Warnw("cache store failed", "path", t.path, "error", err)
		}
	}

	return o
}

// report prints one "<checksum>  <path>" line per success and logs the
// failures. Unsupported files found while walking a directory are skipped.
func (r *runner) report(results []outcome) int {
	failed := 0
	for _, o := range results {
		if o.err == nil {
			fmt.Fprintf(r.out, "%s  %s\n", o.sum, o.path)
			continue
		}

		if o.walked && errors.Is(o.err, audsum.ErrUnsupportedFiletype) {
			r.logger.Debugw("skipped", "path", o.path, "error", o.err)
			continue
		}

		failed++
		var ce *audsum.CheckError
		if errors.As(o.err, &ce) {
			r.logger.Errorw("checksum failed",
				"path", ce.Path, "kind", ce.Kind.String(), "codec", ce.Codec, "error", ce.Err)
		} else {
			r.logger.Errorw("checksum failed", "path", o.path, "error", o.err)
		}
	}

	return failed
}

// reportDupes prints groups of files with equal checksums, or with equal
// per-channel digests in strict mode.
func (r *runner) reportDupes(results []outcome) {
	var (
		groups = make(map[string][]string)
		order  []string
	)
	for _, o := range results {
		if o.err != nil {
			continue
		}

		key := o.sum.String()
		switch {
		case r.strict:
			key = strictKey(o.digests)
		case o.sum.IsZero():
			r.logger.Warnw("zero checksum, channels cancel out; use --strict to compare", "path", o.path)
			continue
		}

		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], o.path)
	}

	for _, key := range order {
		paths := groups[key]
		if len(paths) < 2 {
			continue
		}

		fmt.Fprintf(r.out, "\nduplicates (%d files):\n", len(paths))
		for _, p := range paths {
			fmt.Fprintf(r.out, "  %s\n", p)
		}
	}
}

func strictKey(ds []digest.Digest) string {
	b := make([]byte, 0, len(ds)*digest.Size)
	for _, d := range ds {
		b = append(b, d[:]...)
	}

	return hex.EncodeToString(b)
}
