// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"
	"io"

	"github.com/ik5/audsum/audio"
	goflac "github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
)

// frameParser is an interface for flac.Stream to allow testing
type frameParser interface {
	ParseNext() (*frame.Frame, error)
}

type stream struct {
	dec        frameParser
	sampleRate int
	channels   int
	buf        []int32
	blk        audio.Block
}

func (s *stream) SampleRate() int { return s.sampleRate }
func (s *stream) Channels() int   { return s.channels }
func (s *stream) Close() error    { return nil }

// Next parses one FLAC frame. The subframes are copied back to back so the
// block holds one contiguous run per channel, in channel order.
func (s *stream) Next() (*audio.Block, error) {
	f, err := s.dec.ParseNext()
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w", err)
	}

	if len(f.Subframes) != s.channels {
		return nil, fmt.Errorf("frame %d: %w: got %d, want %d",
			f.Num, audio.ErrChannelMismatch, len(f.Subframes), s.channels)
	}

	duration := int(f.BlockSize)
	need := s.channels * duration
	if cap(s.buf) < need {
		s.buf = make([]int32, need)
	}
	s.buf = s.buf[:need]

	for c, sub := range f.Subframes {
		if len(sub.Samples) != duration {
			return nil, fmt.Errorf("frame %d channel %d: %w", f.Num, c, audio.ErrBlockSize)
		}
		copy(s.buf[c*duration:], sub.Samples)
	}

	s.blk = audio.Block{
		Channels: s.channels,
		Duration: duration,
		Layout:   audio.Planar,
		Width:    4,
		Samples:  s.buf,
	}

	return &s.blk, nil
}

type Decoder struct{}

// Decode reads the FLAC signature and STREAMINFO block from r. Other
// metadata blocks are skipped.
func (Decoder) Decode(r io.Reader) (audio.Stream, error) {
	dec, err := goflac.New(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	channels := int(dec.Info.NChannels)
	if channels < 1 {
		return nil, audio.ErrNoChannels
	}

	return &stream{
		dec:        dec,
		sampleRate: int(dec.Info.SampleRate),
		channels:   channels,
		buf:        make([]int32, 0, channels*4096),
	}, nil
}
