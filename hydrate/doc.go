// SPDX-License-Identifier: EPL-2.0

// Package hydrate fetches and decodes the audio files of a project.
//
// Files are persisted as metadata and a URL. A [Hydrator] turns them into
// decoded buffers at the engine's sample rate, several files at a time,
// and keeps recently decoded buffers in a TTL cache keyed by URL. A file
// that can't be fetched or decoded is reported as a warning and simply has
// no buffer; the graph builder leaves its clips out.
package hydrate
