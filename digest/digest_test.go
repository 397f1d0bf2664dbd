// SPDX-License-Identifier: EPL-2.0

package digest

import (
	"errors"
	"testing"

	"golang.org/x/crypto/blake2b"
)

func TestAccumulator_MatchesOneShot(t *testing.T) {
	t.Parallel()

	data := []byte("the quick brown fox jumps over the lazy dog")

	acc, err := NewAccumulator()
	if err != nil {
		t.Fatalf("NewAccumulator() error = %v", err)
	}
	if err := acc.Absorb(data); err != nil {
		t.Fatalf("Absorb() error = %v", err)
	}

	got, err := acc.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	want := blake2b.Sum512(data)
	if got != Digest(want) {
		t.Errorf("Finalize() = %x, want %x", got, want)
	}
}

func TestAccumulator_SegmentationInvariant(t *testing.T) {
	t.Parallel()

	data := make([]byte, 10000)
	for i := range data {
		data[i] = byte(i * 7)
	}

	splits := [][]int{
		{10000},
		{1, 9999},
		{4096, 4096, 1808},
		{3, 5, 7, 11, 13, 9961},
	}

	var first Digest
	for i, sizes := range splits {
		acc, err := NewAccumulator()
		if err != nil {
			t.Fatalf("NewAccumulator() error = %v", err)
		}

		off := 0
		for _, n := range sizes {
			if err := acc.Absorb(data[off : off+n]); err != nil {
				t.Fatalf("Absorb() error = %v", err)
			}
			off += n
		}

		d, err := acc.Finalize()
		if err != nil {
			t.Fatalf("Finalize() error = %v", err)
		}

		if i == 0 {
			first = d
			continue
		}
		if d != first {
			t.Errorf("split %v digest = %x, want %x", sizes, d, first)
		}
	}
}

func TestAccumulator_FinalizeTwice(t *testing.T) {
	t.Parallel()

	acc, err := NewAccumulator()
	if err != nil {
		t.Fatalf("NewAccumulator() error = %v", err)
	}

	if _, err := acc.Finalize(); err != nil {
		t.Fatalf("first Finalize() error = %v", err)
	}

	if _, err := acc.Finalize(); !errors.Is(err, ErrFinalized) {
		t.Errorf("second Finalize() error = %v, want ErrFinalized", err)
	}

	if err := acc.Absorb([]byte{1}); !errors.Is(err, ErrFinalized) {
		t.Errorf("Absorb() after Finalize error = %v, want ErrFinalized", err)
	}
}

func TestNewBank_NoChannels(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, -1} {
		if _, err := NewBank(n); !errors.Is(err, ErrNoChannels) {
			t.Errorf("NewBank(%d) error = %v, want ErrNoChannels", n, err)
		}
	}
}

func TestBank_ChannelCount(t *testing.T) {
	t.Parallel()

	for _, n := range []int{1, 2, 6, 8} {
		bank, err := NewBank(n)
		if err != nil {
			t.Fatalf("NewBank(%d) error = %v", n, err)
		}

		if bank.Channels() != n {
			t.Errorf("Channels() = %d, want %d", bank.Channels(), n)
		}

		ds, err := bank.Finalize()
		if err != nil {
			t.Fatalf("Finalize() error = %v", err)
		}
		if len(ds) != n {
			t.Errorf("len(Finalize()) = %d, want %d", len(ds), n)
		}
	}
}

func TestBank_AbsorbOutOfRange(t *testing.T) {
	t.Parallel()

	bank, err := NewBank(2)
	if err != nil {
		t.Fatalf("NewBank() error = %v", err)
	}

	for _, ch := range []int{-1, 2, 100} {
		if err := bank.Absorb(ch, []byte{0}); !errors.Is(err, ErrChannelRange) {
			t.Errorf("Absorb(%d) error = %v, want ErrChannelRange", ch, err)
		}
	}
}

func TestBank_ChannelsAreIndependent(t *testing.T) {
	t.Parallel()

	bank, err := NewBank(2)
	if err != nil {
		t.Fatalf("NewBank() error = %v", err)
	}

	_ = bank.Absorb(0, []byte("left"))
	_ = bank.Absorb(1, []byte("right"))

	ds, err := bank.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if ds[0] != Digest(blake2b.Sum512([]byte("left"))) {
		t.Error("channel 0 digest does not match its own input")
	}
	if ds[1] != Digest(blake2b.Sum512([]byte("right"))) {
		t.Error("channel 1 digest does not match its own input")
	}
}

func TestXORFold(t *testing.T) {
	t.Parallel()

	a := Digest(blake2b.Sum512([]byte("a")))
	b := Digest(blake2b.Sum512([]byte("b")))
	c := Digest(blake2b.Sum512([]byte("c")))

	if got := XORFold([]Digest{a}); got != a {
		t.Error("XORFold() of a single digest is not the identity")
	}

	abc := XORFold([]Digest{a, b, c})
	perms := [][]Digest{
		{a, c, b},
		{b, a, c},
		{b, c, a},
		{c, a, b},
		{c, b, a},
	}
	for _, p := range perms {
		if got := XORFold(p); got != abc {
			t.Errorf("XORFold() depends on order: %x != %x", got, abc)
		}
	}

	for i := range abc {
		if abc[i] != a[i]^b[i]^c[i] {
			t.Fatalf("XORFold()[%d] = %#x, want %#x", i, abc[i], a[i]^b[i]^c[i])
		}
	}
}

func TestXORFold_Empty(t *testing.T) {
	t.Parallel()

	if got := XORFold(nil); got != (Digest{}) {
		t.Errorf("XORFold(nil) = %x, want zero", got)
	}
}

func TestXORFold_IdenticalPairCancels(t *testing.T) {
	t.Parallel()

	// Two identical channels cancel out; callers that care must compare the
	// per-channel digests.
	a := Digest(blake2b.Sum512([]byte("same")))
	if got := XORFold([]Digest{a, a}); got != (Digest{}) {
		t.Errorf("XORFold(a, a) = %x, want zero", got)
	}
}
