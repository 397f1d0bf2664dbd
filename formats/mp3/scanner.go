// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bufio"
	"bytes"
	"errors"
	"io"

	"github.com/ik5/audsum/internal/mpeg"
)

const apeMarker = "APETAGEX"

// peekSize covers the largest fixed-size structure inspected at once.
const peekSize = mpeg.APEFooterSize

// scanner hands out whole layer III frames from an MPEG audio file and
// drops everything else: tags, metadata frames and unsyncable bytes.
// It implements io.Reader so it can feed go-mp3 directly.
type scanner struct {
	r *bufio.Reader

	pending []byte // unread bytes of the current frame
	frame   []byte

	first   mpeg.Header
	last    mpeg.Header
	synced  bool
	confirm bool

	err error // first non-EOF error from the underlying reader
	eof bool

	frames  int // frames handed out
	junk    int // bytes skipped while searching for sync
	tags    int // tags and metadata frames skipped
	dropped int // truncated frames at the end of input
}

func newScanner(r io.Reader) *scanner {
	return &scanner{
		r:       bufio.NewReaderSize(r, 4096),
		frame:   make([]byte, 0, mpeg.MaxFrameSize),
		confirm: true,
	}
}

func (s *scanner) Read(p []byte) (int, error) {
	if len(s.pending) == 0 {
		if err := s.next(); err != nil {
			return 0, err
		}
	}

	n := copy(p, s.pending)
	s.pending = s.pending[n:]

	return n, nil
}

// drop abandons whatever is left of the current frame.
func (s *scanner) drop() {
	s.pending = nil
}

// peek returns up to n bytes. A short result with a nil error means the
// input ends within n bytes.
func (s *scanner) peek(n int) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}

	b, err := s.r.Peek(n)
	switch {
	case err == nil, errors.Is(err, io.EOF), errors.Is(err, bufio.ErrBufferFull):
		return b, nil
	default:
		s.err = err
		return nil, err
	}
}

func (s *scanner) discard(n int) error {
	if _, err := s.r.Discard(n); err != nil && !errors.Is(err, io.EOF) {
		s.err = err
		return err
	}

	return nil
}

// skipTag discards a tag at the current position and reports whether there
// was one.
func (s *scanner) skipTag(b []byte) (bool, error) {
	n := mpeg.ID3v2Size(b)
	if n == 0 {
		n = mpeg.APESize(b)
	}
	if n == 0 && mpeg.IsID3v1(b) {
		tail, err := s.peek(mpeg.ID3v1Size + len(apeMarker))
		if err != nil {
			return false, err
		}
		if trailingID3v1(tail) {
			n = mpeg.ID3v1Size
		}
	}
	if n == 0 {
		return false, nil
	}

	s.tags++
	return true, s.discard(n)
}

// trailingID3v1 reports whether b holds a whole ID3v1 tag followed by the
// end of input or another tag. A "TAG" marker anywhere else is junk.
func trailingID3v1(b []byte) bool {
	if len(b) < mpeg.ID3v1Size || !mpeg.IsID3v1(b) {
		return false
	}

	rest := b[mpeg.ID3v1Size:]
	return len(rest) == 0 || isTagStart(rest)
}

func isTagStart(b []byte) bool {
	return bytes.HasPrefix(b, []byte("ID3")) || bytes.HasPrefix(b, []byte(apeMarker)) || mpeg.IsID3v1(b)
}

// next loads the next frame into pending.
func (s *scanner) next() error {
	if s.eof {
		return io.EOF
	}

	for {
		b, err := s.peek(peekSize)
		if err != nil {
			return err
		}
		if len(b) == 0 {
			s.eof = true
			return io.EOF
		}

		ok, err := s.skipTag(b)
		if err != nil {
			return err
		}
		if ok {
			continue
		}

		h, err := mpeg.ParseHeader(b)
		if err != nil || h.Layer != mpeg.Layer3 || (s.synced && !h.SameStream(s.first)) {
			s.junk++
			s.confirm = true
			if err := s.discard(1); err != nil {
				return err
			}
			continue
		}

		size := h.FrameSize()
		if size < mpeg.HeaderSize+h.SideInfoSize() || size > mpeg.MaxFrameSize {
			s.junk++
			s.confirm = true
			if err := s.discard(1); err != nil {
				return err
			}
			continue
		}

		b, err = s.peek(size + mpeg.HeaderSize)
		if err != nil {
			return err
		}
		if len(b) < size {
			// Truncated final frame.
			s.dropped++
			s.eof = true
			return io.EOF
		}

		if s.confirm && !confirmed(h, b[size:]) {
			s.junk++
			if err := s.discard(1); err != nil {
				return err
			}
			continue
		}

		if s.frames == 0 && mpeg.IsInfoFrame(h, b[:size]) {
			s.tags++
			if err := s.discard(size); err != nil {
				return err
			}
			continue
		}

		s.frame = append(s.frame[:0], b[:size]...)
		if err := s.discard(size); err != nil {
			return err
		}

		if !s.synced {
			s.first = h
			s.synced = true
		}
		s.last = h
		s.confirm = false
		s.frames++
		s.pending = s.frame

		return nil
	}
}

// confirmed reports whether the bytes following a candidate frame of header
// h look like the start of another frame, a trailing tag or the end of input.
func confirmed(h mpeg.Header, after []byte) bool {
	if len(after) < mpeg.HeaderSize {
		return true
	}

	if nh, err := mpeg.ParseHeader(after); err == nil {
		return nh.Layer == mpeg.Layer3 && nh.SameStream(h)
	}

	return isTagStart(after) || string(after[:4]) == "APET"
}
