// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 converts a sample to 16-bit PCM. Values are clamped to
// [-1, 1]; negative samples scale by 32768 and positive ones by 32767 so
// both extremes map exactly onto the int16 range. The fraction is truncated
// toward zero.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	if x < 0 {
		return int16(x * 32768.0)
	}

	return int16(x * 32767.0)
}
