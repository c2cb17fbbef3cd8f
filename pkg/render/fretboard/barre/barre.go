// Package barre finds the barre of a chord fingering.
//
// A barre is one finger laid flat across several adjacent strings at the
// lowest pressed fret. A diagram shows it as a single bar instead of a row
// of separate note circles.
//
// # Detection Rule
//
// [Detect] scans the strings in index order for runs of adjacent strings
// all pressed at exactly [chord.Chord.LeastFret]. A run of two or more
// strings qualifies. The widest qualifying run wins; among runs of equal
// width the first one found (lowest string index) is kept. Open and closed
// strings, and strings pressed at any other fret, end a run.
//
// Detection looks only at frets. Finger annotations are ignored, so a
// shape played with separate fingers on the same fret is still drawn as
// a barre.
package barre

import "github.com/matzehuels/chordview/pkg/chord"

// Span is a detected barre: Count adjacent strings starting at First, all
// pressed at Fret.
type Span struct {
	Fret  int `json:"fret"`
	First int `json:"first"`
	Count int `json:"count"`
}

// Last returns the index of the last string covered by the span.
func (s Span) Last() int { return s.First + s.Count - 1 }

// Contains reports whether string i lies within the span.
func (s Span) Contains(i int) bool { return i >= s.First && i <= s.Last() }

// Absorbs reports whether the note on string i at fret is drawn by the
// barre instead of as a standalone circle.
func (s Span) Absorbs(i, fret int) bool { return fret == s.Fret && s.Contains(i) }

// Detect returns the barre of c, if any. A nil chord, or one with the
// wrong number of frets, has no barre.
func Detect(c *chord.Chord) (Span, bool) {
	if c == nil || len(c.Frets) != chord.Strings {
		return Span{}, false
	}

	least := c.LeastFret()
	var best Span
	start, n := 0, 0
	flush := func() {
		if n >= 2 && n > best.Count {
			best = Span{Fret: least, First: start, Count: n}
		}
		n = 0
	}
	for i, f := range c.Frets {
		if f != least {
			flush()
			continue
		}
		if n == 0 {
			start = i
		}
		n++
	}
	flush()

	return best, best.Count > 0
}
