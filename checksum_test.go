// SPDX-License-Identifier: EPL-2.0

package audsum

import (
	"strings"
	"testing"

	"github.com/ik5/audsum/digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksum_String(t *testing.T) {
	t.Parallel()

	var c Checksum
	assert.Equal(t, strings.Repeat("0", 128), c.String())
	assert.True(t, c.IsZero())

	c[0] = 0xab
	c[Size-1] = 0x01
	s := c.String()
	assert.Len(t, s, 128)
	assert.True(t, strings.HasPrefix(s, "ab00"))
	assert.True(t, strings.HasSuffix(s, "0001"))
	assert.Equal(t, strings.ToLower(s), s)
	assert.False(t, c.IsZero())
}

func TestParseChecksum(t *testing.T) {
	t.Parallel()

	var want Checksum
	for i := range want {
		want[i] = byte(i * 3)
	}

	got, err := ParseChecksum(want.String())
	require.NoError(t, err)
	assert.True(t, got.Equal(want))

	upper, err := ParseChecksum(strings.ToUpper(want.String()))
	require.NoError(t, err)
	assert.Equal(t, want, upper)
}

func TestParseChecksum_Invalid(t *testing.T) {
	t.Parallel()

	for name, in := range map[string]string{
		"empty":     "",
		"short":     strings.Repeat("a", 127),
		"long":      strings.Repeat("a", 130),
		"not hex":   strings.Repeat("zz", Size),
		"one digit": strings.Repeat("0", 127) + "g",
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseChecksum(in)
			assert.ErrorIs(t, err, ErrChecksumLength)
		})
	}
}

func TestResult_StrictEqual(t *testing.T) {
	t.Parallel()

	a := digest.Digest{1}
	b := digest.Digest{2}

	r := &Result{ChannelDigests: []digest.Digest{a, b}}
	assert.True(t, r.StrictEqual(&Result{ChannelDigests: []digest.Digest{a, b}}))
	assert.False(t, r.StrictEqual(&Result{ChannelDigests: []digest.Digest{b, a}}))
	assert.False(t, r.StrictEqual(&Result{ChannelDigests: []digest.Digest{a}}))
	assert.False(t, r.StrictEqual(&Result{}))
}
