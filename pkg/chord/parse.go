package chord

import (
	"strconv"
	"strings"

	"github.com/matzehuels/chordview/pkg/errors"
)

// Parse builds a chord from fret and finger notation. fingers may be empty.
// See the package documentation for the accepted notations.
func Parse(frets, fingers string) (*Chord, error) {
	fv, err := parseSequence(frets, true)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedChord, err, "frets %q", frets)
	}
	var gv []int
	if strings.TrimSpace(fingers) != "" {
		gv, err = parseSequence(fingers, false)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedChord, err, "fingers %q", fingers)
		}
	}
	return New(fv, gv)
}

// MustParse is like Parse but panics on error.
func MustParse(frets, fingers string) *Chord {
	c, err := Parse(frets, fingers)
	if err != nil {
		panic(err)
	}
	return c
}

func parseSequence(s string, allowClosed bool) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty sequence")
	}
	if fields := splitFields(s); len(fields) > 1 {
		return parseFields(fields, allowClosed)
	}
	return parseCompact(s, allowClosed)
}

// splitFields splits separated notation. In dash-separated input a dash
// that does not follow a value is the sign of -1 ("-1-3-2-0-1-0", "3--1").
func splitFields(s string) []string {
	if strings.ContainsAny(s, ", \t") {
		return strings.FieldsFunc(s, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
	}
	var (
		fields []string
		cur    strings.Builder
	)
	for _, r := range s {
		if r == '-' && cur.Len() > 0 {
			fields = append(fields, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteRune(r)
	}
	if cur.Len() > 0 {
		fields = append(fields, cur.String())
	}
	return fields
}

func parseFields(fields []string, allowClosed bool) ([]int, error) {
	vals := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := parseValue(f, allowClosed)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

func parseCompact(s string, allowClosed bool) ([]int, error) {
	vals := make([]int, 0, len(s))
	for _, r := range s {
		v, err := parseValue(string(r), allowClosed)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

func parseValue(s string, allowClosed bool) (int, error) {
	if allowClosed && (s == "x" || s == "X") {
		return Closed, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid value %q", s)
	}
	if v == Closed && !allowClosed {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid value %q", s)
	}
	return v, nil
}
