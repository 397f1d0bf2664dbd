// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 converts a decoder sample in [-1, 1] to signed 16-bit PCM.
// The scale is 32768 so that -1 maps to math.MinInt16; out of range input
// is clamped and the fraction is truncated toward zero.
func Float32ToInt16(x float32) int16 {
	v := x * 32768.0

	if v >= 32767 {
		return 32767
	} else if v <= -32768 {
		return -32768
	}

	return int16(v)
}

// Float32sToInt16s converts src into dst and returns the number of samples
// written, which is the smaller of the two lengths.
func Float32sToInt16s(dst []int16, src []float32) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = Float32ToInt16(src[i])
	}

	return n
}
