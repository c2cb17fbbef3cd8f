package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/chordview/pkg/chord"
	"github.com/matzehuels/chordview/pkg/errors"
)

func TestLibraryList(t *testing.T) {
	c, out := newTestCLI(t)

	if err := execute(t, c, "library", "list"); err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, want := range []string{"Name", "Am", "x02210", "C/8", "fret 8"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("list output missing %q", want)
		}
	}
}

func TestLibraryListSearch(t *testing.T) {
	c, out := newTestCLI(t)

	if err := execute(t, c, "library", "list", "--search", "maj"); err != nil {
		t.Fatalf("list: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Cmaj7") || !strings.Contains(got, "Fmaj7") {
		t.Errorf("search output missing maj7 chords:\n%s", got)
	}
	if strings.Contains(got, "Am7") {
		t.Errorf("search output has non-matching chord:\n%s", got)
	}

	out.Reset()
	if err := execute(t, c, "library", "ls", "-s", "zzz"); err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out.String(), "No chords match") {
		t.Errorf("output = %q", out.String())
	}
}

func TestLibraryShow(t *testing.T) {
	c, out := newTestCLI(t)

	if err := execute(t, c, "library", "show", "c"); err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{"Frets", "x32010", "Fingers", "032010", tbNut, `chordview render "C"`} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("show output missing %q:\n%s", want, out.String())
		}
	}

	if err := execute(t, c, "library", "show", "nope"); !errors.Is(err, errors.ErrCodeChordNotFound) {
		t.Errorf("show unknown: err = %v", err)
	}
	if err := execute(t, c, "library", "show", "C", "--mode", "tiny"); !errors.Is(err, errors.ErrCodeInvalidStyle) {
		t.Errorf("show bad mode: err = %v", err)
	}
}

func TestLibraryAddRemove(t *testing.T) {
	c, out := newTestCLI(t)
	ctx := t.Context()

	if err := execute(t, c, "library", "add", "Hendrix", "0-7-6-7-8-0", "0-2-1-3-4-0"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(out.String(), "Added Hendrix") {
		t.Errorf("add output = %q", out.String())
	}

	store, err := c.userStore()
	if err != nil {
		t.Fatal(err)
	}
	got, err := store.Get(ctx, "hendrix")
	if err != nil {
		t.Fatalf("stored chord: %v", err)
	}
	if want := chord.MustParse("0-7-6-7-8-0", "0-2-1-3-4-0"); !got.Equal(want) {
		t.Errorf("stored %v, want %v", got, want)
	}

	out.Reset()
	if err := execute(t, c, "library", "rm", "Hendrix"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := store.Get(ctx, "Hendrix"); !errors.Is(err, errors.ErrCodeChordNotFound) {
		t.Errorf("chord still stored: %v", err)
	}

	if err := execute(t, c, "library", "remove", "Hendrix"); !errors.Is(err, errors.ErrCodeChordNotFound) {
		t.Errorf("remove twice: err = %v", err)
	}
}

func TestLibraryAddInvalid(t *testing.T) {
	c, _ := newTestCLI(t)

	tests := []struct {
		name string
		args []string
	}{
		{"short frets", []string{"library", "add", "Bad", "x3201"}},
		{"finger out of range", []string{"library", "add", "Bad", "x32010", "092010"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := execute(t, c, tt.args...); !errors.IsClientError(err) {
				t.Errorf("err = %v, want a client error", err)
			}
		})
	}
}

func TestBarreLabel(t *testing.T) {
	if got := barreLabel(chord.MustParse("133211", "")); got != "fret 1" {
		t.Errorf("barreLabel(F) = %q", got)
	}
	if got := barreLabel(chord.MustParse("x32010", "")); got != "" {
		t.Errorf("barreLabel(C) = %q", got)
	}
}
