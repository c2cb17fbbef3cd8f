// Package layout turns a chord fingering into fretboard drawing primitives.
//
// [Engine.Layout] is a pure function of its inputs: a [chord.Chord], a
// [styles.Config] and the size of the drawing area. It returns an ordered
// slice of [primitive.Primitive] values that a sink draws back to front.
// The engine keeps no state between calls and is safe for concurrent use.
//
// # Grid
//
// A diagram has six vertical string lines and four horizontal fret rows.
// In [styles.Simple] mode a chord confined to the first three frets gets
// three rows instead. Grid lines are centred on their own stroke so that
// the outer edges of the first and last line sit exactly on the grid
// boundary.
//
// # Fret Window
//
// When the highest pressed fret is above 4 the diagram no longer starts
// at the nut. The window then slides so that the lowest pressed fret sits
// in the first row, fret numbers are printed in a label column on the
// left, and the nut (head) is omitted once the highest fret passes 5.
//
// # Emission Order
//
//  1. string indicators (images above open and muted strings)
//  2. fret labels
//  3. head
//  4. horizontal grid lines, then vertical grid lines
//  5. barre: rectangle, outline, end anchors
//  6. notes: fill, finger label, outline, per string in index order
//
// A string covered by the barre at the barre fret never gets a separate
// note circle.
package layout
