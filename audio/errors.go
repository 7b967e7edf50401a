// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrUnsupportedFormat is returned when no registered decoder matches a file.
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrDecode marks every DecodeError so callers can match with errors.Is.
	ErrDecode = errors.New("audio decode failed")

	// ErrNoProgress is returned when a source keeps returning no samples
	// without reporting the end of the stream.
	ErrNoProgress = errors.New("source returned no samples without EOF")

	// ErrInvalidFormat is returned for a non-positive sample rate or channel count.
	ErrInvalidFormat = errors.New("sample rate and channels must be positive")

	// ErrChannelMismatch is returned when per-channel slices differ in length.
	ErrChannelMismatch = errors.New("channel slices must have equal length")
)

// DecodeError reports a file whose bytes could not be turned into samples.
// The file stays in the project; it just has no buffer.
type DecodeError struct {
	FileID string
	Name   string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s (%s): %v", e.Name, e.FileID, e.Err)
}

func (e *DecodeError) Unwrap() []error { return []error{ErrDecode, e.Err} }
