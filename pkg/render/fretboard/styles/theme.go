package styles

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/chordview/pkg/errors"
)

// themeFile mirrors Config in TOML form.
type themeFile struct {
	ShowMode ShowMode `toml:"show_mode"`

	ClosedString  *indicatorFile `toml:"closed_string"`
	EmptyString   *indicatorFile `toml:"empty_string"`
	StringOffsetY float64        `toml:"string_offset_y"`

	HeadRadius float64  `toml:"head_radius"`
	HeadColor  hexColor `toml:"head_color"`

	FretTextSize    float64  `toml:"fret_text_size"`
	FretTextColor   hexColor `toml:"fret_text_color"`
	FretTextOffsetX float64  `toml:"fret_text_offset_x"`

	GridLineWidth float64  `toml:"grid_line_width"`
	GridLineColor hexColor `toml:"grid_line_color"`

	NoteColor       hexColor `toml:"note_color"`
	NoteRadius      float64  `toml:"note_radius"`
	NoteTextSize    float64  `toml:"note_text_size"`
	NoteTextColor   hexColor `toml:"note_text_color"`
	NoteStrokeWidth float64  `toml:"note_stroke_width"`
	NoteStrokeColor hexColor `toml:"note_stroke_color"`
	NoteAlpha       int      `toml:"note_alpha"`

	BarreColor       hexColor `toml:"barre_color"`
	BarreAlpha       int      `toml:"barre_alpha"`
	BarreStrokeWidth float64  `toml:"barre_stroke_width"`
	BarreStrokeColor hexColor `toml:"barre_stroke_color"`

	Background hexColor `toml:"background"`
}

// indicatorFile selects either a builtin glyph or an image file.
type indicatorFile struct {
	Builtin string   `toml:"builtin"`
	File    string   `toml:"file"`
	Size    float64  `toml:"size"`
	Width   float64  `toml:"width"`
	Height  float64  `toml:"height"`
	Color   hexColor `toml:"color"`
}

// LoadTheme reads a TOML theme file and applies it on top of Default.
// Relative indicator image paths are resolved against the theme's directory.
func LoadTheme(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "theme %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidStyle, err, "read theme %s", path)
	}
	return parseTheme(data, filepath.Dir(path))
}

// ParseTheme decodes a TOML theme and applies it on top of Default.
// Indicator files are resolved against the working directory.
func ParseTheme(data []byte) (Config, error) {
	return parseTheme(data, "")
}

func parseTheme(data []byte, baseDir string) (Config, error) {
	tf := toThemeFile(Default())

	md, err := toml.Decode(string(data), &tf)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidStyle, err, "decode theme")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, errors.New(errors.ErrCodeInvalidStyle, "unknown theme keys: %s", strings.Join(keys, ", "))
	}

	cfg, err := tf.config(baseDir)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// EncodeTheme writes cfg as TOML. Indicators are written as builtin glyphs
// when they are builtins and omitted otherwise.
func EncodeTheme(cfg Config) ([]byte, error) {
	tf := toThemeFile(cfg)
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(tf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode theme")
	}
	return buf.Bytes(), nil
}

func toThemeFile(c Config) themeFile {
	return themeFile{
		ShowMode:         c.ShowMode,
		ClosedString:     toIndicatorFile(c.ClosedString),
		EmptyString:      toIndicatorFile(c.EmptyString),
		StringOffsetY:    c.StringOffsetY,
		HeadRadius:       c.HeadRadius,
		HeadColor:        hexColor(c.HeadColor),
		FretTextSize:     c.FretTextSize,
		FretTextColor:    hexColor(c.FretTextColor),
		FretTextOffsetX:  c.FretTextOffsetX,
		GridLineWidth:    c.GridLineWidth,
		GridLineColor:    hexColor(c.GridLineColor),
		NoteColor:        hexColor(c.NoteColor),
		NoteRadius:       c.NoteRadius,
		NoteTextSize:     c.NoteTextSize,
		NoteTextColor:    hexColor(c.NoteTextColor),
		NoteStrokeWidth:  c.NoteStrokeWidth,
		NoteStrokeColor:  hexColor(c.NoteStrokeColor),
		NoteAlpha:        int(c.NoteAlpha),
		BarreColor:       hexColor(c.BarreColor),
		BarreAlpha:       int(c.BarreAlpha),
		BarreStrokeWidth: c.BarreStrokeWidth,
		BarreStrokeColor: hexColor(c.BarreStrokeColor),
		Background:       hexColor(c.Background),
	}
}

func toIndicatorFile(ind *Indicator) *indicatorFile {
	if ind == nil || (ind.Name != BuiltinCross && ind.Name != BuiltinRing) {
		return nil
	}
	return &indicatorFile{Builtin: ind.Name, Size: ind.Width, Color: hexColor(ind.Color)}
}

func (tf themeFile) config(baseDir string) (Config, error) {
	for _, a := range []struct {
		name string
		v    int
	}{{"note_alpha", tf.NoteAlpha}, {"barre_alpha", tf.BarreAlpha}} {
		if a.v < 0 || a.v > 255 {
			return Config{}, errors.New(errors.ErrCodeInvalidStyle, "%s must be within [0, 255], got %d", a.name, a.v)
		}
	}

	closed, err := tf.ClosedString.load(baseDir)
	if err != nil {
		return Config{}, err
	}
	empty, err := tf.EmptyString.load(baseDir)
	if err != nil {
		return Config{}, err
	}

	return Config{
		ShowMode:         tf.ShowMode,
		ClosedString:     closed,
		EmptyString:      empty,
		StringOffsetY:    tf.StringOffsetY,
		HeadRadius:       tf.HeadRadius,
		HeadColor:        colorOf(tf.HeadColor),
		FretTextSize:     tf.FretTextSize,
		FretTextColor:    colorOf(tf.FretTextColor),
		FretTextOffsetX:  tf.FretTextOffsetX,
		GridLineWidth:    tf.GridLineWidth,
		GridLineColor:    colorOf(tf.GridLineColor),
		NoteColor:        colorOf(tf.NoteColor),
		NoteRadius:       tf.NoteRadius,
		NoteTextSize:     tf.NoteTextSize,
		NoteTextColor:    colorOf(tf.NoteTextColor),
		NoteStrokeWidth:  tf.NoteStrokeWidth,
		NoteStrokeColor:  colorOf(tf.NoteStrokeColor),
		NoteAlpha:        uint8(tf.NoteAlpha),
		BarreColor:       colorOf(tf.BarreColor),
		BarreAlpha:       uint8(tf.BarreAlpha),
		BarreStrokeWidth: tf.BarreStrokeWidth,
		BarreStrokeColor: colorOf(tf.BarreStrokeColor),
		Background:       colorOf(tf.Background),
	}, nil
}

func (f *indicatorFile) load(baseDir string) (*Indicator, error) {
	if f == nil {
		return nil, nil
	}
	switch {
	case f.Builtin != "" && f.File != "":
		return nil, errors.New(errors.ErrCodeInvalidStyle, "indicator sets both builtin and file")
	case f.Builtin != "":
		size := f.Size
		if size <= 0 {
			size = 32
		}
		c := colorOf(f.Color)
		if c == Transparent {
			c = White
		}
		return Builtin(f.Builtin, size, c)
	case f.File != "":
		path := f.File
		if baseDir != "" && !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		w, h := f.Width, f.Height
		if w == 0 && h == 0 && f.Size > 0 {
			w, h = f.Size, f.Size
		}
		return LoadIndicator(path, w, h)
	}
	return nil, nil
}

func colorOf(h hexColor) color.NRGBA { return color.NRGBA(h) }
