// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"mime"
	"path"
	"slices"
	"strings"
	"sync"
)

type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Encoder serialises a fully rendered Buffer into a container format.
type Encoder interface {
	Encode(w io.Writer, buf *Buffer) error
}

// Registry for decoders by format key (e.g., "wav", "mp3", "ogg vorbis").
// A format may be reachable through any number of aliases, usually its MIME
// types and file extensions.
type Registry struct {
	codecs  map[string]Decoder
	aliases map[string]string

	mtx *sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs:  make(map[string]Decoder),
		aliases: make(map[string]string),
		mtx:     &sync.RWMutex{},
	}
}

// Register adds d under format. Aliases are matched case-insensitively;
// extensions are given with their leading dot (".wav").
func (r *Registry) Register(format string, d Decoder, aliases ...string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[format] = d
	for _, a := range aliases {
		r.aliases[strings.ToLower(a)] = format
	}
}

// Get returns the decoder registered under key, which may be a format name or
// one of its aliases.
func (r *Registry) Get(key string) (Decoder, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	if d, ok := r.codecs[key]; ok {
		return d, true
	}

	format, ok := r.aliases[strings.ToLower(key)]
	if !ok {
		return nil, false
	}

	d, ok := r.codecs[format]
	return d, ok
}

// Lookup picks a decoder for a file, trying its MIME type first and the
// extension of name second. The returned string is the format name.
func (r *Registry) Lookup(mimeType, name string) (Decoder, string, error) {
	if mimeType != "" {
		if mt, _, err := mime.ParseMediaType(mimeType); err == nil {
			if d, format, ok := r.resolve(mt); ok {
				return d, format, nil
			}
		}
	}

	if ext := strings.ToLower(path.Ext(name)); ext != "" {
		if d, format, ok := r.resolve(ext); ok {
			return d, format, nil
		}
	}

	return nil, "", ErrUnsupportedFormat
}

func (r *Registry) resolve(alias string) (Decoder, string, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	format, ok := r.aliases[strings.ToLower(alias)]
	if !ok {
		return nil, "", false
	}

	d, ok := r.codecs[format]
	return d, format, ok
}

// Formats lists the registered format names in sorted order.
func (r *Registry) Formats() []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	out := make([]string, 0, len(r.codecs))
	for f := range r.codecs {
		out = append(out, f)
	}
	slices.Sort(out)

	return out
}
