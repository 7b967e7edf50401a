// SPDX-License-Identifier: EPL-2.0

package project

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// Load reads a persisted project. Files come back without buffers; callers
// hydrate them from their URLs.
func Load(r io.Reader) (Project, error) {
	var p Project
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return Project{}, fmt.Errorf("decoding project: %w", err)
	}

	if p.Tracks == nil {
		p.Tracks = []Track{}
	}
	if p.Files == nil {
		p.Files = []AudioFile{}
	}
	for i := range p.Tracks {
		if p.Tracks[i].Clips == nil {
			p.Tracks[i].Clips = []AudioClip{}
		}
	}

	return p, nil
}

// Save writes the project as indented JSON.
func Save(w io.Writer, p Project) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encoding project: %w", err)
	}
	return nil
}

// Marshal returns the persisted form of p.
func Marshal(p Project) ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encoding project: %w", err)
	}
	return data, nil
}
