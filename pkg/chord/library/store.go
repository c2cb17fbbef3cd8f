package library

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/matzehuels/chordview/pkg/chord"
	"github.com/matzehuels/chordview/pkg/errors"
)

// Store is a mutable, named chord collection.
type Store interface {
	// Get returns the chord with the given name (case-insensitive), or an
	// error with code CHORD_NOT_FOUND.
	Get(ctx context.Context, name string) (*chord.Chord, error)

	// List returns all chords sorted by name.
	List(ctx context.Context) ([]*chord.Chord, error)

	// Put stores c under c.Name, replacing any chord with the same name.
	Put(ctx context.Context, c *chord.Chord) error

	// Delete removes a chord. Deleting an unknown name is not an error.
	Delete(ctx context.Context, name string) error

	// Close releases resources held by the store.
	Close() error
}

// MemoryStore keeps chords in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	chords map[string]*chord.Chord
}

// NewMemoryStore returns a store seeded with the chords of seed, which may
// be nil.
func NewMemoryStore(seed *Library) *MemoryStore {
	s := &MemoryStore{chords: make(map[string]*chord.Chord)}
	if seed != nil {
		for _, c := range seed.chords {
			s.chords[normalize(c.Name)] = c
		}
	}
	return s
}

func (s *MemoryStore) Get(_ context.Context, name string) (*chord.Chord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.chords[normalize(name)]; ok {
		return c, nil
	}
	return nil, errors.New(errors.ErrCodeChordNotFound, "chord %q not found", name)
}

func (s *MemoryStore) List(_ context.Context) ([]*chord.Chord, error) {
	s.mu.RLock()
	out := make([]*chord.Chord, 0, len(s.chords))
	for _, c := range s.chords {
		out = append(out, c)
	}
	s.mu.RUnlock()
	sortByName(out)
	return out, nil
}

func (s *MemoryStore) Put(_ context.Context, c *chord.Chord) error {
	if err := validateForStore(c); err != nil {
		return err
	}
	stored := *c
	stored.Frets = slices.Clone(c.Frets)
	stored.Fingers = slices.Clone(c.Fingers)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.chords[normalize(c.Name)] = &stored
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.chords, normalize(name))
	return nil
}

func (s *MemoryStore) Close() error { return nil }

func validateForStore(c *chord.Chord) error {
	if c == nil {
		return errors.New(errors.ErrCodeInvalidInput, "nil chord")
	}
	if err := errors.ValidateChordName(c.Name); err != nil {
		return err
	}
	return c.Validate()
}

func sortByName(cs []*chord.Chord) {
	slices.SortFunc(cs, func(a, b *chord.Chord) int {
		return strings.Compare(normalize(a.Name), normalize(b.Name))
	})
}

var _ Store = (*MemoryStore)(nil)
