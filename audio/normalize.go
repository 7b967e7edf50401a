// SPDX-License-Identifier: EPL-2.0

package audio

import "math"

// Peak returns the largest absolute sample value across all channels.
func (b *Buffer) Peak() float32 {
	var peak float32
	for _, data := range b.data {
		for _, s := range data {
			peak = max(peak, float32(math.Abs(float64(s))))
		}
	}
	return peak
}

// Normalize returns a copy of b scaled so its peak reaches target (linear,
// usually 1.0). Silent buffers are returned unchanged.
func (b *Buffer) Normalize(target float32) *Buffer {
	peak := b.Peak()
	if peak == 0 {
		return b
	}

	gain := target / peak
	data := make([][]float32, len(b.data))
	for c, src := range b.data {
		dst := make([]float32, len(src))
		for i, s := range src {
			dst[i] = s * gain
		}
		data[c] = dst
	}

	return &Buffer{sampleRate: b.sampleRate, data: data}
}

// NormalizationGain is the gain in dB that would bring b's peak to target.
func (b *Buffer) NormalizationGain(target float32) float64 {
	peak := b.Peak()
	if peak == 0 {
		return 0
	}
	return 20 * math.Log10(float64(target/peak))
}
