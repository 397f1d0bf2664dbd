// SPDX-License-Identifier: EPL-2.0

package digest

import (
	"errors"
	"fmt"
	"hash"

	"golang.org/x/crypto/blake2b"
)

// Size of every digest in bytes.
const Size = blake2b.Size

// commonChannels is the capacity reserved for a new Bank.
const commonChannels = 2

var (
	ErrFinalized    = errors.New("accumulator already finalized")
	ErrNoChannels   = errors.New("bank needs at least one channel")
	ErrChannelRange = errors.New("channel index out of range")
)

// Digest is one finalized accumulator.
type Digest [Size]byte

// Accumulator owns the incremental hash state of exactly one channel.
type Accumulator struct {
	h    hash.Hash
	done bool
}

func NewAccumulator() (*Accumulator, error) {
	h, err := blake2b.New512(nil)
	if err != nil {
		return nil, fmt.Errorf("blake2b: %w", err)
	}

	return &Accumulator{h: h}, nil
}

// Absorb feeds p into the accumulator.
func (a *Accumulator) Absorb(p []byte) error {
	if a.done {
		return ErrFinalized
	}

	// hash.Hash.Write never returns an error.
	a.h.Write(p)

	return nil
}

// Finalize returns the digest. A second call returns ErrFinalized.
func (a *Accumulator) Finalize() (Digest, error) {
	var d Digest
	if a.done {
		return d, ErrFinalized
	}
	a.done = true

	sum := a.h.Sum(nil)
	if len(sum) != Size {
		panic(fmt.Sprintf("digest: accumulator produced %d bytes, want %d", len(sum), Size))
	}
	copy(d[:], sum)

	return d, nil
}

// Bank is an ordered set of accumulators, one per channel. Its size is
// fixed at construction.
type Bank struct {
	accs []*Accumulator
}

func NewBank(channels int) (*Bank, error) {
	if channels < 1 {
		return nil, ErrNoChannels
	}

	accs := make([]*Accumulator, 0, max(channels, commonChannels))
	for range channels {
		a, err := NewAccumulator()
		if err != nil {
			return nil, err
		}
		accs = append(accs, a)
	}

	return &Bank{accs: accs}, nil
}

func (b *Bank) Channels() int { return len(b.accs) }

// Absorb feeds p into the accumulator of channel ch.
func (b *Bank) Absorb(ch int, p []byte) error {
	if ch < 0 || ch >= len(b.accs) {
		return fmt.Errorf("%w: %d of %d", ErrChannelRange, ch, len(b.accs))
	}

	return b.accs[ch].Absorb(p)
}

// Finalize finalizes every accumulator in channel order.
func (b *Bank) Finalize() ([]Digest, error) {
	out := make([]Digest, len(b.accs))
	for i, a := range b.accs {
		d, err := a.Finalize()
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", i, err)
		}
		out[i] = d
	}

	return out, nil
}

// XORFold combines digests byte-wise with XOR. The result does not depend on
// the order of ds. An empty input yields the zero digest.
func XORFold(ds []Digest) Digest {
	var out Digest
	for _, d := range ds {
		for i := range out {
			out[i] ^= d[i]
		}
	}

	return out
}
