// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"io"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
	"github.com/mewkiz/flac/meta"
)

// Ramp returns n samples starting at start and increasing by step.
func Ramp(n int, start, step int32) []int32 {
	s := make([]int32, n)
	for i := range s {
		s[i] = start + int32(i)*step
	}

	return s
}

// WriteFLAC encodes the given channels, which must be of equal length, as a
// FLAC stream of verbatim subframes cut into blocks of blockSize samples.
func WriteFLAC(w io.Writer, sampleRate, bitsPerSample, blockSize int, channels ...[]int32) error {
	if len(channels) == 0 || len(channels) > 8 {
		return errors.New("audiotest: FLAC needs 1 to 8 channels")
	}
	total := len(channels[0])
	for _, ch := range channels[1:] {
		if len(ch) != total {
			return errors.New("audiotest: channels differ in length")
		}
	}

	info := &meta.StreamInfo{
		BlockSizeMin:  uint16(blockSize),
		BlockSizeMax:  uint16(blockSize),
		SampleRate:    uint32(sampleRate),
		NChannels:     uint8(len(channels)),
		BitsPerSample: uint8(bitsPerSample),
		NSamples:      uint64(total),
	}

	enc, err := flac.NewEncoder(w, info)
	if err != nil {
		return err
	}

	for num, off := 0, 0; off < total; num, off = num+1, off+blockSize {
		n := min(blockSize, total-off)

		f := &frame.Frame{
			Header: frame.Header{
				HasFixedBlockSize: true,
				BlockSize:         uint16(n),
				SampleRate:        uint32(sampleRate),
				Channels:          frame.Channels(len(channels) - 1),
				BitsPerSample:     uint8(bitsPerSample),
				Num:               uint64(num),
			},
		}
		for _, ch := range channels {
			f.Subframes = append(f.Subframes, &frame.Subframe{
				SubHeader: frame.SubHeader{Pred: frame.PredVerbatim},
				Samples:   ch[off : off+n],
				NSamples:  n,
			})
		}

		if err := enc.WriteFrame(f); err != nil {
			return err
		}
	}

	return enc.Close()
}
