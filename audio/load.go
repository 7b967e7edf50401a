// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// maxEmptyReads bounds how many consecutive (0, nil) reads a reader tolerates.
const maxEmptyReads = 64

// Load drains src into a Buffer conformed to sampleRate and channels.
//
// The pipeline is the streaming one used everywhere else in this package:
//
//	src -> Resampler (when rates differ) -> ChannelMapper (when layouts differ)
//
// Load closes src. A zero sampleRate or channels keeps the source's own value.
func Load(src Source, sampleRate, channels int) (*Buffer, error) {
	defer src.Close() //nolint:errcheck

	if sampleRate == 0 {
		sampleRate = src.SampleRate()
	}
	if channels == 0 {
		channels = src.Channels()
	}
	if sampleRate <= 0 || channels <= 0 || src.SampleRate() <= 0 || src.Channels() <= 0 {
		return nil, ErrInvalidFormat
	}

	var stream Source = src
	if src.SampleRate() != sampleRate {
		stream = NewResampler(stream, sampleRate)
	}
	if stream.Channels() != channels {
		stream = NewChannelMapper(stream, channels)
	}

	bufSize := max(stream.BufSize(), 1024)
	bufSize -= bufSize % channels
	buf := make([]float32, bufSize)

	data := make([][]float32, channels)
	empty := 0

	for {
		n, err := stream.ReadSamples(buf)
		if n > 0 {
			empty = 0
			frames := n / channels
			for c := range channels {
				for f := range frames {
					data[c] = append(data[c], buf[f*channels+c])
				}
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading samples: %w", err)
		}

		if n == 0 {
			empty++
			if empty >= maxEmptyReads {
				return nil, ErrNoProgress
			}
		}
	}

	for c := range data {
		if data[c] == nil {
			data[c] = []float32{}
		}
	}

	return &Buffer{sampleRate: sampleRate, data: data}, nil
}

// Decode runs d over r and loads the result, wrapping any failure into a
// DecodeError for the file identified by id and name.
func Decode(d Decoder, r io.Reader, id, name string, sampleRate, channels int) (*Buffer, error) {
	src, err := d.Decode(r)
	if err != nil {
		return nil, &DecodeError{FileID: id, Name: name, Err: err}
	}

	buf, err := Load(src, sampleRate, channels)
	if err != nil {
		return nil, &DecodeError{FileID: id, Name: name, Err: err}
	}

	return buf, nil
}
