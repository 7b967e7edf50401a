// SPDX-License-Identifier: EPL-2.0

// Package render turns graphs into sound.
//
// A [Network] is the realizer: it compiles a [graph.Graph] and its
// scheduled plays into dsp processors and produces the mix block by block.
// The [Renderer] drives a Network offline from the start of a project into
// a buffer sized to the project's duration; the playback package drives the
// very same Network from an output device.
package render
