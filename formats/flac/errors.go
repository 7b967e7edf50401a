// SPDX-License-Identifier: EPL-2.0

package flac

import "errors"

var (
	ErrUnsupportedBitDepth = errors.New("only 8, 16, 24 and 32-bit FLAC supported")
	ErrUnsupportedLayout   = errors.New("FLAC stream has no sample rate or channels")
)
