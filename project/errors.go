// SPDX-License-Identifier: EPL-2.0

package project

import "errors"

var (
	// ErrNotFound is returned when a referenced track, clip or file doesn't exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidClipBounds is returned when a clip reads past the end of its file.
	ErrInvalidClipBounds = errors.New("clip reads past the end of its file")

	// ErrInvalidSplit is returned when the split point isn't strictly inside the clip.
	ErrInvalidSplit = errors.New("split point must be inside the clip")

	// ErrDanglingReference is returned by Validate for a clip whose file or
	// owning track doesn't match.
	ErrDanglingReference = errors.New("dangling reference")

	// ErrDuplicateID is returned by Validate when two entities share an id.
	ErrDuplicateID = errors.New("duplicate id")
)
