// SPDX-License-Identifier: EPL-2.0

package playback

import "errors"

var (
	// ErrClosed is returned by a Scheduler after Close.
	ErrClosed = errors.New("scheduler closed")

	ErrInvalidDevice = errors.New("invalid device")
)
