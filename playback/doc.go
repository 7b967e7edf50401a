// SPDX-License-Identifier: EPL-2.0

// Package playback plays a project live on an output device.
//
// A [Scheduler] is a small state machine (Stopped, Playing, Paused) around
// a [Device]. Each Play takes a snapshot of the project, compiles it with
// the same render.Network the offline renderer uses, starting at the
// remembered position, and hands the network to the device. While playing,
// a ticker converts the device clock into project time and stops playback
// at the end of the project. Edits made while playing are heard on the next
// Play or Seek.
package playback
