// SPDX-License-Identifier: EPL-2.0

package audsum

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/ik5/audsum/audio"
	"github.com/ik5/audsum/digest"
)

// Size of a checksum in bytes.
const Size = digest.Size

var ErrChecksumLength = fmt.Errorf("checksum must be %d hex characters", 2*Size)

// Checksum is the content fingerprint of an audio file: the XOR of the
// BLAKE2b-512 digests of its channels.
type Checksum [Size]byte

// String returns the 128 character lowercase hex form.
func (c Checksum) String() string {
	return hex.EncodeToString(c[:])
}

func (c Checksum) Equal(o Checksum) bool {
	return c == o
}

// IsZero reports whether every byte is zero. Besides the zero value, this
// is what a stream whose channels cancel out in pairs produces.
func (c Checksum) IsZero() bool {
	return c == Checksum{}
}

// ParseChecksum parses the form produced by String.
func ParseChecksum(s string) (Checksum, error) {
	var c Checksum
	if len(s) != 2*Size {
		return c, ErrChecksumLength
	}
	if _, err := hex.Decode(c[:], []byte(s)); err != nil {
		return c, errors.Join(ErrChecksumLength, err)
	}

	return c, nil
}

// Result is the outcome of one checksum computation.
type Result struct {
	Path        string
	Filetype    audio.Filetype
	Description string
	Channels    int
	Blocks      int
	// Samples per channel.
	Samples int
	// ChannelDigests holds one digest per channel in stream order.
	ChannelDigests []digest.Digest
	Checksum       Checksum
}

// StrictEqual compares per-channel digests in order. Unlike comparing
// checksums it tells apart streams whose channels were swapped, or whose
// identical channel pairs cancel in the XOR fold.
func (r *Result) StrictEqual(o *Result) bool {
	if len(r.ChannelDigests) != len(o.ChannelDigests) {
		return false
	}
	for i := range r.ChannelDigests {
		if r.ChannelDigests[i] != o.ChannelDigests[i] {
			return false
		}
	}

	return true
}
