// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"sync"
)

// Layout describes how a Block arranges the samples of its channels.
type Layout int

const (
	// Planar blocks hold one contiguous run of Duration samples per channel;
	// channel c occupies Samples[c*Duration:(c+1)*Duration].
	Planar Layout = iota
	// Interleaved blocks hold one sample per channel per time step.
	Interleaved
)

func (l Layout) String() string {
	switch l {
	case Planar:
		return "planar"
	case Interleaved:
		return "interleaved"
	default:
		return "unknown"
	}
}

// Block is one unit of decoded PCM as produced by a Stream.
// It is only valid until the next call to Stream.Next.
type Block struct {
	// Channels in this block.
	Channels int
	// Duration is the number of samples per channel.
	Duration int
	Layout   Layout
	// Width is the canonical little-endian byte width of one sample (2 or 4).
	Width int
	// Samples holds Channels*Duration values arranged according to Layout.
	Samples []int32
}

// Channel returns the samples of channel c in stream order.
// Planar blocks return a sub-slice of Samples without copying; interleaved
// blocks gather into dst, which is grown when too small.
func (b *Block) Channel(c int, dst []int32) []int32 {
	if c < 0 || c >= b.Channels {
		panic("audio: channel index out of range")
	}

	if b.Layout == Planar {
		return b.Samples[c*b.Duration : (c+1)*b.Duration]
	}

	if cap(dst) < b.Duration {
		dst = make([]int32, b.Duration)
	}
	dst = dst[:b.Duration]

	for i := range b.Duration {
		dst[i] = b.Samples[i*b.Channels+c]
	}

	return dst
}

// Validate reports whether the block is internally consistent.
func (b *Block) Validate() error {
	if b.Channels < 1 {
		return ErrNoChannels
	}
	if b.Width != 2 && b.Width != 4 {
		return ErrSampleWidth
	}
	if len(b.Samples) != b.Channels*b.Duration {
		return ErrBlockSize
	}

	return nil
}

// Stream yields decoded blocks of a single audio stream.
type Stream interface {
	// Channels count, fixed for the lifetime of the stream.
	Channels() int
	// Next returns the next decoded block. It returns io.EOF once the
	// stream has ended normally.
	Next() (*Block, error)
	// Close releases any resources.
	Close() error
}

// Decoder constructs a Stream from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Stream, error)
}

// Registry of decoders by Filetype.
type Registry struct {
	codecs map[Filetype]Decoder

	mtx *sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[Filetype]Decoder),
		mtx:    &sync.RWMutex{},
	}
}

func (r *Registry) Register(ft Filetype, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[ft] = d
}

func (r *Registry) Get(ft Filetype) (Decoder, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	d, ok := r.codecs[ft]
	return d, ok
}
