// SPDX-License-Identifier: EPL-2.0

package project

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks field ranges with struct tags, then the cross references
// that tags can't express: unique ids, every clip's file exists, every
// clip's trackId names its owner, and clips stay inside their files.
func Validate(p *Project) error {
	if err := structValidator().Struct(p); err != nil {
		return fmt.Errorf("invalid project: %w", err)
	}

	var errs []error

	files := make(map[string]*AudioFile, len(p.Files))
	for i := range p.Files {
		f := &p.Files[i]
		if _, dup := files[f.ID]; dup {
			errs = append(errs, fmt.Errorf("file %s: %w", f.ID, ErrDuplicateID))
		}
		files[f.ID] = f
	}

	tracks := make(map[string]struct{}, len(p.Tracks))
	clips := make(map[string]struct{})
	for _, t := range p.Tracks {
		if _, dup := tracks[t.ID]; dup {
			errs = append(errs, fmt.Errorf("track %s: %w", t.ID, ErrDuplicateID))
		}
		tracks[t.ID] = struct{}{}

		for _, c := range t.Clips {
			if _, dup := clips[c.ID]; dup {
				errs = append(errs, fmt.Errorf("clip %s: %w", c.ID, ErrDuplicateID))
			}
			clips[c.ID] = struct{}{}

			if c.TrackID != t.ID {
				errs = append(errs, fmt.Errorf("clip %s on track %s claims track %s: %w", c.ID, t.ID, c.TrackID, ErrDanglingReference))
			}

			f, ok := files[c.FileID]
			if !ok {
				errs = append(errs, fmt.Errorf("clip %s uses missing file %s: %w", c.ID, c.FileID, ErrDanglingReference))
				continue
			}
			if err := CheckClipBounds(c, f.Duration); err != nil {
				errs = append(errs, err)
			}
		}
	}

	return errors.Join(errs...)
}
