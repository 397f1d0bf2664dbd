// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/audsum/audio"
)

// ErrNoFrames is returned when the input holds no decodable layer III frame.
var ErrNoFrames = errors.New("no decodable MPEG layer III frames")

// maxEmptyReads bounds consecutive reads that return neither data nor an
// error.
const maxEmptyReads = 100

// frameBytes is the size of one decoded MPEG-1 frame as emitted by go-mp3:
// 1152 samples, 2 channels, 2 bytes each.
const frameBytes = 1152 * 4

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

// Stats counts what the decoder skipped.
type Stats struct {
	Frames  int // frames handed to the decoder
	Junk    int // bytes that did not belong to any frame
	Tags    int // ID3, APE and Xing/Info/VBRI structures
	Skipped int // frames abandoned after a decode error
}

type stream struct {
	dec        mp3Reader
	scan       *scanner
	sampleRate int
	channels   int
	raw        []byte
	buf        []int32
	blk        audio.Block
	skipped    int
}

func (s *stream) SampleRate() int { return s.sampleRate }
func (s *stream) Channels() int   { return s.channels }
func (s *stream) Close() error    { return nil }

// Stats reports what has been skipped so far.
func (s *stream) Stats() Stats {
	st := Stats{Skipped: s.skipped}
	if s.scan != nil {
		st.Frames = s.scan.frames
		st.Junk = s.scan.junk
		st.Tags = s.scan.tags
		st.Skipped += s.scan.dropped
	}

	return st
}

// Next returns the PCM of the next decodable frame. Frames go-mp3 rejects
// are dropped and decoding resumes at the following frame; only errors from
// the underlying reader end the stream early.
func (s *stream) Next() (*audio.Block, error) {
	for empty := 0; empty < maxEmptyReads; {
		n, err := s.dec.Read(s.raw)
		n -= n % 4
		if n > 0 {
			return s.block(s.raw[:n]), nil
		}

		switch {
		case err == nil:
			empty++
		case errors.Is(err, io.EOF):
			return nil, io.EOF
		case s.scan != nil && s.scan.err != nil:
			return nil, fmt.Errorf("%w", s.scan.err)
		default:
			s.skipped++
			if s.scan != nil {
				s.scan.drop()
			}
		}
	}

	return nil, io.ErrNoProgress
}

// block widens go-mp3's interleaved 16-bit stereo output. For mono streams
// only the left channel is kept since go-mp3 duplicates it into both.
func (s *stream) block(raw []byte) *audio.Block {
	frames := len(raw) / 4
	samples := frames * s.channels

	if cap(s.buf) < samples {
		s.buf = make([]int32, samples)
	}
	s.buf = s.buf[:samples]

	for i := range frames {
		left := int16(binary.LittleEndian.Uint16(raw[4*i:]))
		if s.channels == 1 {
			s.buf[i] = int32(left)
			continue
		}
		right := int16(binary.LittleEndian.Uint16(raw[4*i+2:]))
		s.buf[2*i] = int32(left)
		s.buf[2*i+1] = int32(right)
	}

	s.blk = audio.Block{
		Channels: s.channels,
		Duration: frames,
		Layout:   audio.Interleaved,
		Width:    4,
		Samples:  s.buf,
	}

	return &s.blk
}

type Decoder struct{}

// Decode scans r for layer III frames and starts decoding at the first one
// go-mp3 accepts. The channel count is taken from that frame's mode.
func (Decoder) Decode(r io.Reader) (audio.Stream, error) {
	scan := newScanner(r)

	skipped := 0
	for {
		dec, err := gomp3.NewDecoder(scan)
		if err == nil {
			return &stream{
				dec:        dec,
				scan:       scan,
				sampleRate: dec.SampleRate(),
				channels:   scan.last.ChannelMode.Channels(),
				raw:        make([]byte, frameBytes),
				skipped:    skipped,
			}, nil
		}

		switch {
		case scan.err != nil:
			return nil, fmt.Errorf("%w", scan.err)
		case scan.frames == 0:
			return nil, ErrNoFrames
		case errors.Is(err, io.EOF):
			return nil, fmt.Errorf("%w: %w", ErrNoFrames, err)
		}

		skipped++
		scan.drop()
	}
}
