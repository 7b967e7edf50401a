// SPDX-License-Identifier: EPL-2.0

package graph

import "errors"

// ErrCycle is returned by Graph.Order when the edges form a loop.
var ErrCycle = errors.New("graph has a cycle")
