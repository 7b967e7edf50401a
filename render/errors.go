// SPDX-License-Identifier: EPL-2.0

package render

import "errors"

var (
	// ErrEmptyProject is returned when there is nothing to render.
	ErrEmptyProject = errors.New("project has no renderable clips")

	// ErrUnsupportedPlatform is returned before any work when the renderer
	// can't produce the requested output format.
	ErrUnsupportedPlatform = errors.New("offline rendering not supported with this configuration")
)
