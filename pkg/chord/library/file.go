package library

import (
	"context"
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/matzehuels/chordview/pkg/chord"
	"github.com/matzehuels/chordview/pkg/errors"
)

// FileStore keeps one JSON document per chord in a directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based store. If baseDir is empty it defaults
// to ~/.config/chordview/chords/.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "get home dir")
		}
		baseDir = filepath.Join(home, ".config", "chordview", "chords")
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create chord dir")
	}
	return &FileStore{baseDir: baseDir}, nil
}

// Dir returns the directory holding the chord files.
func (s *FileStore) Dir() string { return s.baseDir }

// chordPath escapes the name so slash chords like "C/G" stay one file.
func (s *FileStore) chordPath(name string) string {
	return filepath.Join(s.baseDir, url.PathEscape(normalize(name))+".json")
}

func (s *FileStore) Get(_ context.Context, name string) (*chord.Chord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, err := readChord(s.chordPath(name))
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeChordNotFound, "chord %q not found", name)
	}
	return c, err
}

func (s *FileStore) List(_ context.Context) ([]*chord.Chord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read chord dir")
	}
	var out []*chord.Chord
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		c, err := readChord(filepath.Join(s.baseDir, e.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	sortByName(out)
	return out, nil
}

func (s *FileStore) Put(_ context.Context, c *chord.Chord) error {
	if err := validateForStore(c); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "marshal chord")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(s.chordPath(c.Name), data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write chord file")
	}
	return nil
}

func (s *FileStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.chordPath(name)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete chord file")
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

func readChord(path string) (*chord.Chord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c chord.Chord
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse chord file %s", filepath.Base(path))
	}
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedChord, err, "chord file %s", filepath.Base(path))
	}
	return &c, nil
}

var _ Store = (*FileStore)(nil)
