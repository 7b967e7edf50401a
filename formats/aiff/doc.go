// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff. Integer PCM at 8, 16, 24 and
// 32 bits is supported with any channel count and sample rate:
//
//	source, err := aiff.Decoder{}.Decode(file)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    // not AIFF
//	}
//
// Inputs that are not an io.ReadSeeker are read fully into memory first,
// since the underlying decoder seeks between chunks.
package aiff
