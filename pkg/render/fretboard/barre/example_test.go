package barre_test

import (
	"fmt"

	"github.com/matzehuels/chordview/pkg/chord"
	"github.com/matzehuels/chordview/pkg/render/fretboard/barre"
)

func ExampleDetect() {
	f := chord.MustParse("x02220", "")
	if s, ok := barre.Detect(f); ok {
		fmt.Printf("fret %d, strings %d-%d\n", s.Fret, s.First, s.Last())
	}
	// Output: fret 2, strings 2-4
}
