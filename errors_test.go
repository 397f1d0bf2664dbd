// SPDX-License-Identifier: EPL-2.0

package audsum

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckError_Is(t *testing.T) {
	t.Parallel()

	sentinels := map[ErrorKind]error{
		KindFileAccess:                ErrFileAccess,
		KindClassificationUnavailable: ErrClassificationUnavailable,
		KindUnsupportedFiletype:       ErrUnsupportedFiletype,
		KindCodec:                     ErrCodec,
		KindIO:                        ErrIO,
	}

	for kind, sentinel := range sentinels {
		t.Run(kind.String(), func(t *testing.T) {
			t.Parallel()

			err := fmt.Errorf("wrapped: %w", &CheckError{Kind: kind, Path: "x", Err: io.ErrUnexpectedEOF})
			assert.ErrorIs(t, err, sentinel)
			assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
			assert.Equal(t, kind, KindOf(err))

			for other, s := range sentinels {
				if other != kind {
					assert.NotErrorIs(t, err, s)
				}
			}
		})
	}
}

func TestCheckError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  *CheckError
		want string
	}{
		{
			&CheckError{Kind: KindFileAccess, Path: "/a.flac"},
			"[file access] /a.flac",
		},
		{
			&CheckError{Kind: KindCodec, Path: "b.mp3", Codec: "MP3", Err: errors.New("no frames")},
			"[codec] b.mp3 (MP3): no frames",
		},
		{
			&CheckError{Kind: KindUnsupportedFiletype, Path: "c.txt", Extension: ".txt", Err: errors.New(`extension ".txt"`)},
			`[unsupported filetype] c.txt: extension ".txt"`,
		},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Error())
	}
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	assert.Zero(t, KindOf(nil))
	assert.Zero(t, KindOf(io.EOF))
	assert.Equal(t, "unknown", ErrorKind(0).String())
}
