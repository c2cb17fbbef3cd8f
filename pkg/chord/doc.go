// Package chord defines the fingering model rendered by chordview.
//
// A [Chord] describes one fingering on a six-string instrument: one fret
// value per string, lowest (thickest) string first, and optional finger
// numbers aligned index-for-index with the frets.
//
// # Fret Values
//
//   - -1: closed (muted) string
//   - 0: open string
//   - n ≥ 1: string pressed at fret n
//
// # Notation
//
// [Parse] accepts the two notations commonly found in song sheets:
//
//	chord.Parse("x32010", "032010")        // compact, one character per string
//	chord.Parse("8-10-10-9-8-8", "")       // separated, for frets above 9
//	chord.Parse("-1,3,2,0,1,0", "")        // separated with explicit -1
//
// Chords are treated as immutable values once constructed; nothing in
// chordview mutates a Chord it was handed.
package chord
