// SPDX-License-Identifier: EPL-2.0

package audsum

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/ik5/audsum/audio"
	"github.com/ik5/audsum/digest"
	"github.com/ik5/audsum/formats/flac"
	"github.com/ik5/audsum/formats/mp3"
	"github.com/ik5/audsum/formats/vorbis"
	"github.com/ik5/audsum/utils"
	"go.uber.org/zap"
)

// readBufferSize sits between the file and the decoders.
const readBufferSize = 64 << 10

// Engine computes checksums. It holds no per-file state and is safe for
// concurrent use.
type Engine struct {
	classifier *Classifier
	registry   *audio.Registry
	logger     *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithClassifier replaces the default classifier.
func WithClassifier(c *Classifier) Option {
	return func(e *Engine) { e.classifier = c }
}

// WithRegistry replaces the default decoder registry.
func WithRegistry(r *audio.Registry) Option {
	return func(e *Engine) { e.registry = r }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// DefaultRegistry returns a registry with the FLAC, MP3 and Vorbis
// decoders. Wave and Opus are recognized but have no decoder.
func DefaultRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register(audio.FLAC, flac.Decoder{})
	r.Register(audio.MP3, mp3.Decoder{})
	r.Register(audio.Vorbis, vorbis.Decoder{})

	return r
}

// New creates an Engine. Without options it classifies with the built-in
// signatures, decodes with DefaultRegistry and does not log.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}

	if e.classifier == nil {
		e.classifier = NewClassifier()
	}
	if e.registry == nil {
		e.registry = DefaultRegistry()
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}

	return e
}

var defaultEngine = sync.OnceValue(func() *Engine { return New() })

// ComputeChecksum computes the checksum of the file at path with a shared
// default Engine.
func ComputeChecksum(path string) (Checksum, error) {
	return defaultEngine().ComputeChecksum(path)
}

// ComputeChecksum computes the checksum of the file at path.
func (e *Engine) ComputeChecksum(path string) (Checksum, error) {
	r, err := e.Compute(path)
	if err != nil {
		return Checksum{}, err
	}

	return r.Checksum, nil
}

// Compute classifies, decodes and hashes the file at path. Every error is a
// *CheckError; no partial result is returned.
func (e *Engine) Compute(path string) (*Result, error) {
	ft, desc, err := e.classifier.Describe(path)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("classified",
		zap.String("path", path),
		zap.Stringer("filetype", ft),
		zap.String("description", desc))

	dec, ok := e.registry.Get(ft)
	if !ok {
		return nil, &CheckError{
			Kind:      KindUnsupportedFiletype,
			Path:      path,
			Extension: filepath.Ext(path),
			Codec:     ft.String(),
			Err:       fmt.Errorf("no decoder for %s", ft),
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &CheckError{Kind: KindFileAccess, Path: path, Err: err}
	}
	defer f.Close()

	src := &trackingReader{r: f}
	stream, err := dec.Decode(bufio.NewReaderSize(src, readBufferSize))
	if err != nil {
		return nil, decodeError(path, ft, src, err)
	}
	defer stream.Close()

	res := &Result{
		Path:        path,
		Filetype:    ft,
		Description: desc,
		Channels:    stream.Channels(),
	}
	if err := e.absorb(res, stream, src); err != nil {
		return nil, err
	}

	if st, ok := stream.(interface{ Stats() mp3.Stats }); ok {
		s := st.Stats()
		e.logger.Debug("mp3 frames",
			zap.String("path", path),
			zap.Int("frames", s.Frames),
			zap.Int("skipped", s.Skipped),
			zap.Int("tags", s.Tags),
			zap.Int("junk_bytes", s.Junk))
	}
	e.logger.Debug("checksum",
		zap.String("path", path),
		zap.Int("channels", res.Channels),
		zap.Int("blocks", res.Blocks),
		zap.Int("samples", res.Samples),
		zap.Stringer("checksum", res.Checksum))

	return res, nil
}

// absorb drains stream into one accumulator per channel and folds the
// digests into res.
func (e *Engine) absorb(res *Result, stream audio.Stream, src *trackingReader) error {
	codecErr := func(err error) error {
		return &CheckError{Kind: KindCodec, Path: res.Path, Codec: res.Filetype.String(), Err: err}
	}

	bank, err := digest.NewBank(res.Channels)
	if err != nil {
		return codecErr(err)
	}

	var (
		scratch []int32
		buf     []byte
	)
	for {
		blk, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return decodeError(res.Path, res.Filetype, src, err)
		}

		if blk.Channels != res.Channels {
			return codecErr(fmt.Errorf("block %d: %w: %d, want %d",
				res.Blocks, audio.ErrChannelMismatch, blk.Channels, res.Channels))
		}
		if err := blk.Validate(); err != nil {
			return codecErr(fmt.Errorf("block %d: %w", res.Blocks, err))
		}

		for c := range res.Channels {
			samples := blk.Channel(c, scratch)
			if blk.Layout == audio.Interleaved {
				scratch = samples
			}

			buf = utils.AppendSamplesLE(buf[:0], samples, blk.Width)
			if err := bank.Absorb(c, buf); err != nil {
				return codecErr(err)
			}
		}

		res.Blocks++
		res.Samples += blk.Duration
	}

	digests, err := bank.Finalize()
	if err != nil {
		return codecErr(err)
	}

	res.ChannelDigests = digests
	res.Checksum = Checksum(digest.XORFold(digests))

	return nil
}

// decodeError attributes a decoder failure to the file when reading it
// failed, and to the codec otherwise.
func decodeError(path string, ft audio.Filetype, src *trackingReader, err error) error {
	if src.err != nil {
		return &CheckError{Kind: KindIO, Path: path, Codec: ft.String(), Err: src.err}
	}

	return &CheckError{Kind: KindCodec, Path: path, Codec: ft.String(), Err: err}
}

// trackingReader remembers the first read error other than io.EOF, since
// decoders do not reliably preserve it.
type trackingReader struct {
	r   io.Reader
	err error
}

func (t *trackingReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) && t.err == nil {
		t.err = err
	}

	return n, err
}
