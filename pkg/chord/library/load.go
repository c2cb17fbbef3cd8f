package library

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/chordview/pkg/chord"
	"github.com/matzehuels/chordview/pkg/errors"
)

// entry is one chord as written in a library file.
type entry struct {
	Name    string `toml:"name" yaml:"name"`
	Frets   string `toml:"frets" yaml:"frets"`
	Fingers string `toml:"fingers,omitempty" yaml:"fingers,omitempty"`
}

type tomlFile struct {
	Chords []entry `toml:"chord"`
}

type yamlFile struct {
	Chords []entry `yaml:"chords"`
}

// Load reads a library file. The format follows the extension: .toml,
// .yaml or .yml.
func Load(path string) (*Library, error) {
	if err := errors.ValidateLibraryFilename(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "library %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read library %s", path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return ParseTOML(data)
	default:
		return ParseYAML(data)
	}
}

// ParseTOML decodes a TOML library with [[chord]] tables.
func ParseTOML(data []byte) (*Library, error) {
	var f tomlFile
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml library")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown library key %s", undecoded[0])
	}
	return fromEntries(f.Chords)
}

// ParseYAML decodes a YAML library with a top-level chords list.
func ParseYAML(data []byte) (*Library, error) {
	var f yamlFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml library")
	}
	return fromEntries(f.Chords)
}

func fromEntries(entries []entry) (*Library, error) {
	chords := make([]*chord.Chord, 0, len(entries))
	for i, e := range entries {
		c, err := chord.Parse(e.Frets, e.Fingers)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedChord, err, "entry %d (%q)", i+1, e.Name)
		}
		c.Name = strings.TrimSpace(e.Name)
		chords = append(chords, c)
	}
	return New(chords...)
}

// EncodeTOML writes the library in the format ParseTOML reads.
func EncodeTOML(l *Library) ([]byte, error) {
	f := tomlFile{Chords: make([]entry, 0, l.Len())}
	for _, c := range l.chords {
		e := entry{Name: c.Name, Frets: c.FretString()}
		if c.HasFingers() {
			e.Fingers = c.FingerString()
		}
		f.Chords = append(f.Chords, e)
	}
	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode library")
	}
	return []byte(sb.String()), nil
}
