package audio

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrors_Distinct(t *testing.T) {
	t.Parallel()

	errs := []error{ErrNoChannels, ErrSampleWidth, ErrBlockSize, ErrChannelMismatch}
	for i, a := range errs {
		if a == nil || a.Error() == "" {
			t.Fatalf("error %d is nil or has no message", i)
		}
		for j, b := range errs {
			if i != j && errors.Is(a, b) {
				t.Errorf("errors.Is(%v, %v) = true, want false", a, b)
			}
		}
	}
}

func TestErrors_Wrapping(t *testing.T) {
	t.Parallel()

	// Decoders wrap these with context; errors.Is must still see them.
	wrapped := fmt.Errorf("frame 7: %w", ErrChannelMismatch)
	if !errors.Is(wrapped, ErrChannelMismatch) {
		t.Error("errors.Is() failed for wrapped ErrChannelMismatch")
	}

	joined := errors.Join(ErrBlockSize, errors.New("additional context"))
	if !errors.Is(joined, ErrBlockSize) {
		t.Error("errors.Is() failed for joined ErrBlockSize")
	}
}
