package library

import (
	"slices"
	"strings"

	"github.com/matzehuels/chordview/pkg/chord"
	"github.com/matzehuels/chordview/pkg/errors"
)

// Library is an ordered set of named chords. It is immutable after
// construction and safe for concurrent use.
type Library struct {
	chords []*chord.Chord
	byName map[string]*chord.Chord
}

// New builds a library from named chords. Names must be valid and unique
// (case-insensitive).
func New(chords ...*chord.Chord) (*Library, error) {
	l := &Library{byName: make(map[string]*chord.Chord, len(chords))}
	for _, c := range chords {
		if c == nil {
			continue
		}
		if err := errors.ValidateChordName(c.Name); err != nil {
			return nil, err
		}
		if err := c.Validate(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedChord, err, "chord %q", c.Name)
		}
		key := normalize(c.Name)
		if _, dup := l.byName[key]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate chord %q", c.Name)
		}
		l.byName[key] = c
		l.chords = append(l.chords, c)
	}
	return l, nil
}

// Get returns the chord with the given name (case-insensitive).
func (l *Library) Get(name string) (*chord.Chord, error) {
	if c, ok := l.byName[normalize(name)]; ok {
		return c, nil
	}
	return nil, errors.New(errors.ErrCodeChordNotFound, "chord %q not in library", name)
}

// Chords returns all chords in file order.
func (l *Library) Chords() []*chord.Chord { return slices.Clone(l.chords) }

// Names returns all chord names in file order.
func (l *Library) Names() []string {
	names := make([]string, len(l.chords))
	for i, c := range l.chords {
		names[i] = c.Name
	}
	return names
}

// Len returns the number of chords.
func (l *Library) Len() int { return len(l.chords) }

// Search returns the chords whose name contains q (case-insensitive).
func (l *Library) Search(q string) []*chord.Chord {
	q = normalize(q)
	if q == "" {
		return l.Chords()
	}
	var out []*chord.Chord
	for _, c := range l.chords {
		if strings.Contains(normalize(c.Name), q) {
			out = append(out, c)
		}
	}
	return out
}

func normalize(name string) string { return strings.ToLower(strings.TrimSpace(name)) }
