// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"encoding/binary"
	"fmt"
)

// AppendSamplesLE appends src to dst as little-endian values of the given
// byte width (2 or 4). At width 2 each value is truncated to int16; callers
// only pass values that originated as 16-bit samples.
func AppendSamplesLE(dst []byte, src []int32, width int) []byte {
	switch width {
	case 4:
		for _, v := range src {
			dst = binary.LittleEndian.AppendUint32(dst, uint32(v))
		}
	case 2:
		for _, v := range src {
			dst = binary.LittleEndian.AppendUint16(dst, uint16(int16(v)))
		}
	default:
		panic(fmt.Sprintf("utils: unsupported sample width %d", width))
	}

	return dst
}
