// SPDX-License-Identifier: EPL-2.0

// Package dsp holds the sample processors a rendered graph is made of:
// cookbook biquad filters, a soft-knee compressor and automated gain. Every
// processor works in place on one float32 slice per channel and keeps its
// own state between calls, so a stream can be fed in blocks of any size.
package dsp
