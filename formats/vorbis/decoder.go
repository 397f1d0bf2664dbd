// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/ik5/audsum/audio"
	"github.com/ik5/audsum/utils"
	"github.com/jfreymuth/oggvorbis"
)

// maxEmptyReads bounds consecutive reads that return neither samples nor an
// error.
const maxEmptyReads = 100

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	// Read fills p with interleaved samples and returns the number of
	// values written, always a multiple of Channels.
	Read(p []float32) (int, error)
}

type stream struct {
	dec        oggReader
	sampleRate int
	channels   int
	floatBuf   []float32
	pcm        []int16
	buf        []int32
	blk        audio.Block
	eof        bool
}

func (s *stream) SampleRate() int { return s.sampleRate }
func (s *stream) Channels() int   { return s.channels }
func (s *stream) Close() error    { return nil }

// Next decodes the next run of interleaved samples and converts them to
// 16-bit PCM. The block stays interleaved; consumers separate the channels
// with a stride of Channels.
func (s *stream) Next() (*audio.Block, error) {
	for range maxEmptyReads {
		if s.eof {
			return nil, io.EOF
		}

		n, err := s.dec.Read(s.floatBuf)
		switch {
		case err == io.EOF:
			s.eof = true
		case err != nil:
			return nil, fmt.Errorf("%w", err)
		}

		n -= n % s.channels
		if n == 0 {
			continue
		}

		return s.block(s.floatBuf[:n]), nil
	}

	return nil, io.ErrNoProgress
}

func (s *stream) block(values []float32) *audio.Block {
	if cap(s.pcm) < len(values) {
		s.pcm = make([]int16, len(values))
		s.buf = make([]int32, len(values))
	}
	s.pcm = s.pcm[:len(values)]
	s.buf = s.buf[:len(values)]

	utils.Float32sToInt16s(s.pcm, values)
	for i, v := range s.pcm {
		s.buf[i] = int32(v)
	}

	s.blk = audio.Block{
		Channels: s.channels,
		Duration: len(values) / s.channels,
		Layout:   audio.Interleaved,
		Width:    2,
		Samples:  s.buf,
	}

	return &s.blk
}

func newStream(dec oggReader, frames int) (*stream, error) {
	channels := dec.Channels()
	if channels < 1 {
		return nil, audio.ErrNoChannels
	}

	return &stream{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   channels,
		floatBuf:   make([]float32, frames*channels),
	}, nil
}

type Decoder struct{}

// Decode reads the Vorbis identification, comment and setup headers from r.
func (Decoder) Decode(r io.Reader) (audio.Stream, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return newStream(dec, 4096)
}
