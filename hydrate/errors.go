// SPDX-License-Identifier: EPL-2.0

package hydrate

import "errors"

var (
	ErrNoURL             = errors.New("file has no url")
	ErrUnsupportedScheme = errors.New("unsupported url scheme")
	// ErrHTTPStatus wraps non-2xx responses.
	ErrHTTPStatus = errors.New("unexpected http status")
)
