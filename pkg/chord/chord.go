package chord

import (
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/chordview/pkg/errors"
)

// Strings is the number of strings every chord describes.
const Strings = 6

// Fret values with special meaning.
const (
	Closed = -1
	Open   = 0
)

// MaxFinger is the highest finger number (index through little finger).
const MaxFinger = 4

// MaxFret bounds fret values accepted by Validate.
const MaxFret = 24

// Chord is one fingering. Frets and Fingers are indexed by string, lowest
// string first. Fingers is nil when no finger annotations exist.
type Chord struct {
	Name    string `json:"name,omitempty" toml:"name" yaml:"name" bson:"name"`
	Frets   []int  `json:"frets" toml:"frets" yaml:"frets" bson:"frets"`
	Fingers []int  `json:"fingers,omitempty" toml:"fingers" yaml:"fingers" bson:"fingers,omitempty"`
}

// New builds a validated chord. The slices are copied.
func New(frets, fingers []int) (*Chord, error) {
	c := &Chord{Frets: slices.Clone(frets)}
	if fingers != nil {
		c.Fingers = slices.Clone(fingers)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNew is like New but panics on invalid input. Intended for tests and
// package-level tables.
func MustNew(frets, fingers []int) *Chord {
	c, err := New(frets, fingers)
	if err != nil {
		panic(err)
	}
	return c
}

// ValidateShape checks only the sequence lengths. This is the check the
// layout engine relies on.
func (c *Chord) ValidateShape() error {
	if len(c.Frets) != Strings {
		return errors.New(errors.ErrCodeMalformedChord, "expected %d frets, got %d", Strings, len(c.Frets))
	}
	if c.Fingers != nil && len(c.Fingers) != Strings {
		return errors.New(errors.ErrCodeMalformedChord, "expected %d fingers, got %d", Strings, len(c.Fingers))
	}
	return nil
}

// Validate checks the shape and the value range of every entry.
func (c *Chord) Validate() error {
	if err := c.ValidateShape(); err != nil {
		return err
	}
	for i, f := range c.Frets {
		if f < Closed || f > MaxFret {
			return errors.New(errors.ErrCodeMalformedChord, "string %d: fret %d out of range [-1, %d]", i, f, MaxFret)
		}
	}
	for i, f := range c.Fingers {
		if f < 0 || f > MaxFinger {
			return errors.New(errors.ErrCodeMalformedChord, "string %d: finger %d out of range [0, %d]", i, f, MaxFinger)
		}
	}
	return nil
}

// LeastFret returns the lowest pressed fret, or 1 when nothing is pressed.
func (c *Chord) LeastFret() int {
	least := 0
	for _, f := range c.Frets {
		if f > 0 && (least == 0 || f < least) {
			least = f
		}
	}
	if least == 0 {
		return 1
	}
	return least
}

// LargestFret returns the highest pressed fret, or 1 when nothing is pressed.
func (c *Chord) LargestFret() int {
	largest := 0
	for _, f := range c.Frets {
		if f > largest {
			largest = f
		}
	}
	if largest == 0 {
		return 1
	}
	return largest
}

// HasClosed reports whether any string is muted.
func (c *Chord) HasClosed() bool { return slices.Contains(c.Frets, Closed) }

// HasOpen reports whether any string is played open.
func (c *Chord) HasOpen() bool { return slices.Contains(c.Frets, Open) }

// HasFingers reports whether finger annotations are present.
func (c *Chord) HasFingers() bool { return c.Fingers != nil }

// Finger returns the finger for string i, or 0 when unannotated.
func (c *Chord) Finger(i int) int {
	if c.Fingers == nil || i < 0 || i >= len(c.Fingers) {
		return 0
	}
	return c.Fingers[i]
}

// Pressed reports whether string i is pressed at some fret.
func (c *Chord) Pressed(i int) bool {
	return i >= 0 && i < len(c.Frets) && c.Frets[i] > 0
}

// Equal reports whether two chords describe the same fingering. Names are
// ignored.
func (c *Chord) Equal(o *Chord) bool {
	if c == nil || o == nil {
		return c == o
	}
	return slices.Equal(c.Frets, o.Frets) && slices.Equal(c.Fingers, o.Fingers)
}

// FretString renders the frets in compact notation when every fret is a
// single digit, otherwise dash-separated.
func (c *Chord) FretString() string {
	return formatSequence(c.Frets, "x")
}

// FingerString renders the fingers like FretString, or "" when absent.
func (c *Chord) FingerString() string {
	if c.Fingers == nil {
		return ""
	}
	return formatSequence(c.Fingers, "")
}

// String implements fmt.Stringer.
func (c *Chord) String() string {
	s := c.FretString()
	if c.Fingers != nil {
		s += " (" + c.FingerString() + ")"
	}
	if c.Name != "" {
		s = c.Name + " " + s
	}
	return s
}

func formatSequence(vals []int, closed string) string {
	compact := true
	for _, v := range vals {
		if v > 9 {
			compact = false
			break
		}
	}
	parts := make([]string, len(vals))
	for i, v := range vals {
		if v == Closed && closed != "" {
			parts[i] = closed
			continue
		}
		parts[i] = strconv.Itoa(v)
	}
	if compact {
		return strings.Join(parts, "")
	}
	return strings.Join(parts, "-")
}
