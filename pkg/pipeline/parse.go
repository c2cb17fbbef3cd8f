package pipeline

import (
	"strings"

	"github.com/matzehuels/chordview/pkg/chord"
	"github.com/matzehuels/chordview/pkg/chord/library"
	"github.com/matzehuels/chordview/pkg/errors"
)

// ResolveChord returns the chord selected by opts without validating the
// rest of the options.
func ResolveChord(opts Options) (*chord.Chord, error) {
	if err := opts.resolveChord(); err != nil {
		return nil, err
	}
	return opts.Chord, nil
}

func (o *Options) resolveChord() error {
	switch {
	case o.Chord != nil:
		return o.Chord.Validate()

	case strings.TrimSpace(o.Frets) != "":
		c, err := chord.Parse(o.Frets, o.Fingers)
		if err != nil {
			return err
		}
		c.Name = strings.TrimSpace(o.Name)
		o.Chord = c
		return nil

	case strings.TrimSpace(o.Name) != "":
		lib := o.Library
		if lib == nil {
			lib = library.Default()
		}
		c, err := lib.Get(o.Name)
		if err != nil {
			return err
		}
		o.Chord = c
		return nil
	}
	return errors.New(errors.ErrCodeInvalidInput, "a chord name or fret notation is required")
}

// LooksLikeFrets reports whether s is fret notation rather than a chord
// name, e.g. "x32010" or "8-10-10-9-8-8".
func LooksLikeFrets(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == 'x' || r == 'X' || r == '-' || r == ',' || r == ' ':
		default:
			return false
		}
	}
	return digits > 0
}
