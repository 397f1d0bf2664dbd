// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"

	"github.com/ik5/audsum/audio"
)

// MockStream is a test helper that generates decoded blocks.
// It implements audio.Stream.
type MockStream struct {
	channels     int
	totalSamples int // Total samples to generate (per channel)
	generated    int // Samples generated so far (per channel)
	blockSize    int
	layout       audio.Layout
	width        int
	waveform     func(sample int, channel int) int32

	// FailAfter makes Next return Err once this many blocks were produced.
	// Zero disables it.
	FailAfter int
	Err       error
	blocks    int

	blk audio.Block
	buf []int32
}

// NewMockStream creates a new mock stream.
// totalSamples is the total number of samples per channel to generate,
// handed out blockSize samples per channel at a time.
func NewMockStream(channels, totalSamples, blockSize int, layout audio.Layout, width int, waveform func(sample int, channel int) int32) *MockStream {
	return &MockStream{
		channels:     channels,
		totalSamples: totalSamples,
		blockSize:    blockSize,
		layout:       layout,
		width:        width,
		waveform:     waveform,
	}
}

// NewSilentStream creates a mock stream that generates silence (all zeros).
func NewSilentStream(channels, totalSamples, blockSize int) *MockStream {
	return NewMockStream(channels, totalSamples, blockSize, audio.Planar, 4, func(int, int) int32 {
		return 0
	})
}

// NewSineStream creates a mock stream of 16-bit sine waves, one octave apart
// per channel so no two channels are equal.
func NewSineStream(sampleRate, channels, totalSamples, blockSize int, frequency float64) *MockStream {
	return NewMockStream(channels, totalSamples, blockSize, audio.Interleaved, 2, func(sample int, channel int) int32 {
		t := float64(sample) / float64(sampleRate)
		f := frequency * float64(int(1)<<channel)
		return int32(math.Round(math.Sin(2*math.Pi*f*t) * math.MaxInt16))
	})
}

func (m *MockStream) Channels() int { return m.channels }
func (m *MockStream) Close() error  { return nil }

// Reset resets the generated sample counter to allow re-reading
func (m *MockStream) Reset() {
	m.generated = 0
	m.blocks = 0
}

func (m *MockStream) Next() (*audio.Block, error) {
	if m.FailAfter > 0 && m.blocks >= m.FailAfter {
		return nil, m.Err
	}
	if m.generated >= m.totalSamples {
		return nil, io.EOF
	}

	n := min(m.blockSize, m.totalSamples-m.generated)
	if cap(m.buf) < n*m.channels {
		m.buf = make([]int32, n*m.channels)
	}
	m.buf = m.buf[:n*m.channels]

	for i := range n {
		for ch := range m.channels {
			v := m.waveform(m.generated+i, ch)
			if m.layout == audio.Planar {
				m.buf[ch*n+i] = v
			} else {
				m.buf[i*m.channels+ch] = v
			}
		}
	}

	m.generated += n
	m.blocks++
	m.blk = audio.Block{
		Channels: m.channels,
		Duration: n,
		Layout:   m.layout,
		Width:    m.width,
		Samples:  m.buf,
	}

	return &m.blk, nil
}

// Decoder returns an audio.Decoder that ignores its input and hands out m.
func (m *MockStream) Decoder() audio.Decoder {
	return mockDecoder{m}
}

type mockDecoder struct{ s *MockStream }

func (d mockDecoder) Decode(r io.Reader) (audio.Stream, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return nil, err
	}
	d.s.Reset()

	return d.s, nil
}
