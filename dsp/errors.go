// SPDX-License-Identifier: EPL-2.0

package dsp

import "errors"

var (
	// ErrInvalidParameter is returned for settings a processor can't be built from.
	ErrInvalidParameter = errors.New("invalid processor parameter")

	// ErrUnknownFilter is returned for a filter type this package doesn't implement.
	ErrUnknownFilter = errors.New("unknown filter type")
)
