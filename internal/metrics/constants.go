// SPDX-License-Identifier: EPL-2.0

package metrics

// Label values shared by the engine's components.
const (
	StatusSuccess     = "success"
	StatusEmpty       = "empty"
	StatusUnsupported = "unsupported"
	StatusCanceled    = "canceled"
	StatusError       = "error"

	StatusDecoded = "decoded"
	StatusCached  = "cached"
	StatusFailed  = "failed"

	ModeOffline = "offline"
	ModeLive    = "live"
)
