// SPDX-License-Identifier: EPL-2.0

// Package project holds the podcast document: tracks of clips that place
// regions of audio files on a timeline, the per-track effect presets and the
// mastering compressor.
//
// A Project is a value. Every edit method returns a modified copy and leaves
// the receiver untouched, which is what lets a [Store] keep snapshots for
// undo and hand consistent views to the renderer. Timeline helpers such as
// [RenderSet] and [ExpandLoops] implement the solo and loop rules shared by
// live playback and export.
package project
