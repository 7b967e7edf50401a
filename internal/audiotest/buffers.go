// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"math"
	"testing"

	"github.com/ik5/podmix/audio"
)

// Buffer decodes a generated source into a buffer, failing the test on
// error.
func Buffer(tb testing.TB, sampleRate, channels int, seconds float64, wave Waveform) *audio.Buffer {
	tb.Helper()

	frames := int(math.Round(seconds * float64(sampleRate)))
	buf, err := audio.Load(NewSource(sampleRate, channels, frames, wave), 0, 0)
	if err != nil {
		tb.Fatalf("audiotest.Buffer: %v", err)
	}
	return buf
}

// ConstantBuffer is a buffer holding v on every channel.
func ConstantBuffer(tb testing.TB, sampleRate, channels int, seconds float64, v float32) *audio.Buffer {
	tb.Helper()
	return Buffer(tb, sampleRate, channels, seconds, Constant(v))
}

// SilentBuffer is a buffer of zeros.
func SilentBuffer(tb testing.TB, sampleRate, channels int, seconds float64) *audio.Buffer {
	tb.Helper()
	return Buffer(tb, sampleRate, channels, seconds, Constant(0))
}
