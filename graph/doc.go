// SPDX-License-Identifier: EPL-2.0

// Package graph builds the signal graph of a mix as plain data.
//
// [Build] reads a project snapshot and returns nodes (gains, biquad
// filters, compressors and the output), the edges between them, gain
// automation for ducked beds, and a flat list of scheduling entries that
// say which range of which decoded file plays when. Nothing here touches
// samples: the render package compiles a [Graph] into processors, for an
// offline buffer or a live device alike, and [Translate] maps entries onto a
// playback that starts mid-project.
package graph
