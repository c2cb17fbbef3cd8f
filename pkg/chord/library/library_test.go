package library

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matzehuels/chordview/pkg/chord"
	"github.com/matzehuels/chordview/pkg/errors"
)

func TestDefault(t *testing.T) {
	lib := Default()
	if lib.Len() < 20 {
		t.Errorf("Default() has %d chords, want a useful set", lib.Len())
	}
	c, err := lib.Get("c")
	if err != nil {
		t.Fatalf("Get(c) error = %v", err)
	}
	if !reflect.DeepEqual(c.Frets, []int{-1, 3, 2, 0, 1, 0}) {
		t.Errorf("C frets = %v", c.Frets)
	}
	high, err := lib.Get("C/8")
	if err != nil {
		t.Fatal(err)
	}
	if high.LargestFret() != 10 {
		t.Errorf("C/8 largest fret = %d", high.LargestFret())
	}
}

func TestNew(t *testing.T) {
	a := chord.MustNew([]int{-1, 3, 2, 0, 1, 0}, nil)
	a.Name = "C"
	dup := chord.MustNew([]int{3, 2, 0, 0, 0, 3}, nil)
	dup.Name = "c"
	bad := chord.MustNew([]int{0, 0, 0, 0, 0, 0}, nil)
	bad.Name = "open strings"

	if _, err := New(a, dup); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("duplicate error = %v", err)
	}
	if _, err := New(bad); !errors.Is(err, errors.ErrCodeInvalidChordName) {
		t.Errorf("invalid name error = %v", err)
	}
	if _, err := New(&chord.Chord{Name: "X", Frets: []int{1}}); !errors.Is(err, errors.ErrCodeMalformedChord) {
		t.Errorf("malformed error = %v", err)
	}

	lib, err := New(a, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := lib.Get("D"); !errors.Is(err, errors.ErrCodeChordNotFound) {
		t.Errorf("Get(missing) error = %v", err)
	}
}

func TestParseTOML(t *testing.T) {
	lib, err := ParseTOML([]byte(`
[[chord]]
name = "G"
frets = "320003"
fingers = "210004"

[[chord]]
name = "Bb/6"
frets = "6-8-8-7-6-6"
`))
	if err != nil {
		t.Fatalf("ParseTOML() error = %v", err)
	}
	if got := lib.Names(); !reflect.DeepEqual(got, []string{"G", "Bb/6"}) {
		t.Errorf("Names() = %v", got)
	}
	bb, _ := lib.Get("bb/6")
	if bb.HasFingers() || bb.LeastFret() != 6 {
		t.Errorf("Bb/6 = %v", bb)
	}
}

func TestParseTOMLErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code errors.Code
	}{
		{"syntax", `[[chord]`, errors.ErrCodeInvalidFormat},
		{"unknown key", "[[chord]]\nname = \"C\"\nfrets = \"x32010\"\ncapo = 2", errors.ErrCodeInvalidFormat},
		{"bad frets", "[[chord]]\nname = \"C\"\nfrets = \"x3201\"", errors.ErrCodeMalformedChord},
		{"bad name", "[[chord]]\nname = \"\"\nfrets = \"x32010\"", errors.ErrCodeInvalidChordName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseTOML([]byte(tt.doc)); !errors.Is(err, tt.code) {
				t.Errorf("ParseTOML() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestParseYAML(t *testing.T) {
	lib, err := ParseYAML([]byte(`
chords:
  - name: Am
    frets: x02210
    fingers: "002310"
  - name: E
    frets: "022100"
`))
	if err != nil {
		t.Fatalf("ParseYAML() error = %v", err)
	}
	am, err := lib.Get("Am")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(am.Fingers, []int{0, 0, 2, 3, 1, 0}) {
		t.Errorf("Am fingers = %v", am.Fingers)
	}

	if _, err := ParseYAML([]byte("chords: [")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("invalid yaml error = %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	toml := filepath.Join(dir, "lib.toml")
	yml := filepath.Join(dir, "lib.yml")
	if err := os.WriteFile(toml, []byte("[[chord]]\nname = \"D\"\nfrets = \"xx0232\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(yml, []byte("chords:\n  - name: D\n    frets: xx0232\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{toml, yml} {
		lib, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%s) error = %v", path, err)
		}
		if lib.Len() != 1 {
			t.Errorf("Load(%s) = %d chords", path, lib.Len())
		}
	}

	if _, err := Load(filepath.Join(dir, "lib.json")); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("Load(json) error = %v", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v", err)
	}
}

func TestEncodeTOMLRoundTrip(t *testing.T) {
	data, err := EncodeTOML(Default())
	if err != nil {
		t.Fatal(err)
	}
	lib, err := ParseTOML(data)
	if err != nil {
		t.Fatalf("ParseTOML(encoded) error = %v\n%s", err, data)
	}
	if !reflect.DeepEqual(lib.Names(), Default().Names()) {
		t.Error("round trip changed chord names")
	}
	for _, c := range Default().Chords() {
		got, _ := lib.Get(c.Name)
		if !got.Equal(c) {
			t.Errorf("%s: got %v, want %v", c.Name, got, c)
		}
	}
}

func TestSearch(t *testing.T) {
	lib := Default()
	got := lib.Search("maj7")
	if len(got) != 2 {
		t.Errorf("Search(maj7) = %d chords, want 2", len(got))
	}
	if len(lib.Search("")) != lib.Len() {
		t.Error("empty search should return every chord")
	}
}

func TestLoadExampleLibrary(t *testing.T) {
	lib, err := Load(filepath.Join("..", "..", "..", "examples", "library", "jazz.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if lib.Len() != 7 {
		t.Errorf("Len() = %d, want 7", lib.Len())
	}
	c, err := lib.Get("e7#9")
	if err != nil {
		t.Fatalf("Get(e7#9) error = %v", err)
	}
	if c.FretString() != "076780" {
		t.Errorf("E7#9 frets = %s, want 076780", c.FretString())
	}
}
