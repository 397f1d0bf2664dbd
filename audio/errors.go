// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrNoChannels      = errors.New("stream reports no channels")
	ErrSampleWidth     = errors.New("sample width must be 2 or 4 bytes")
	ErrBlockSize       = errors.New("block sample count does not match channels * duration")
	ErrChannelMismatch = errors.New("block channel count differs from stream channel count")
)
