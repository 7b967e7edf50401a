// SPDX-License-Identifier: EPL-2.0

// Package audio provides the sample-level building blocks of the engine.
//
// This package contains:
//   - Source interface for streaming audio input
//   - Buffer, fully decoded PCM held per channel
//   - Resampler for sample rate conversion
//   - ChannelMapper for channel layout conversion
//   - Load, which conforms any Source to the engine format
//   - Decoder and Encoder contracts plus a format Registry
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Decoders and processors implement this interface, allowing them to be
// chained together in processing pipelines.
//
// # Buffers
//
// Every clip in a project plays from a Buffer. Buffers are decoded once,
// conformed to the engine sample rate and shared read-only between graph
// builds:
//
//	src, _ := wav.Decoder{}.Decode(f)
//	buf, err := audio.Load(src, 44100, 2)
//	fmt.Println(buf.Duration())
//
// # Format Registry
//
// The registry maps format names, MIME types and extensions to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{}, "audio/wav", ".wav")
//	decoder, format, err := registry.Lookup(file.Type, file.Name)
//
// # Sample Format
//
// Audio samples are represented as float32 in the range [-1.0, 1.0]:
//   - 0.0 represents silence
//   - 1.0 represents maximum positive amplitude
//   - -1.0 represents maximum negative amplitude
//
// # Error Handling
//
// Sources return io.EOF when no more data is available. Decode failures
// surface as *DecodeError, which matches ErrDecode with errors.Is.
package audio
