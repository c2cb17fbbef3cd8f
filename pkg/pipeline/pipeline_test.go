package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/chordview/pkg/cache"
	"github.com/matzehuels/chordview/pkg/chord"
	"github.com/matzehuels/chordview/pkg/chord/library"
	"github.com/matzehuels/chordview/pkg/errors"
	"github.com/matzehuels/chordview/pkg/observability"
	"github.com/matzehuels/chordview/pkg/render/fretboard/styles"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s, want INVALID_FORMAT", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestParseFormats(t *testing.T) {
	got, err := ParseFormats(" SVG, png,,svg ")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "svg" || got[1] != "png" {
		t.Errorf("ParseFormats = %v, want [svg png]", got)
	}
	if _, err := ParseFormats("svg,gif"); err == nil {
		t.Error("gif should be rejected")
	}
}

func TestLooksLikeFrets(t *testing.T) {
	tests := map[string]bool{
		"x32010":        true,
		"X02210":        true,
		"8-10-10-9-8-8": true,
		"-1,3,2,0,1,0":  true,
		"Am":            false,
		"C/8":           false,
		"xxx":           false,
		"":              false,
	}
	for in, want := range tests {
		if got := LooksLikeFrets(in); got != want {
			t.Errorf("LooksLikeFrets(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestResolveChord(t *testing.T) {
	am := chord.MustParse("x02210", "002310")
	am.Name = "Am"
	lib, err := library.New(am)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		opts     Options
		wantFret string
		wantName string
		wantCode errors.Code
	}{
		{"frets", Options{Frets: "x32010"}, "x32010", "", ""},
		{"frets with label", Options{Frets: "x32010", Fingers: "032010", Name: "C"}, "x32010", "C", ""},
		{"library name", Options{Name: "am", Library: lib}, "x02210", "Am", ""},
		{"default library", Options{Name: "G"}, "320003", "G", ""},
		{"explicit chord wins", Options{Chord: am, Frets: "x32010"}, "x02210", "Am", ""},
		{"unknown name", Options{Name: "H#13", Library: lib}, "", "", errors.ErrCodeChordNotFound},
		{"bad frets", Options{Frets: "x3201"}, "", "", errors.ErrCodeMalformedChord},
		{"nothing", Options{}, "", "", errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ResolveChord(tt.opts)
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("err = %v, want %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveChord: %v", err)
			}
			if c.FretString() != tt.wantFret || c.Name != tt.wantName {
				t.Errorf("got %s (name %q), want %s (name %q)", c.FretString(), c.Name, tt.wantFret, tt.wantName)
			}
		})
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{Frets: "x32010"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
		t.Errorf("size = %vx%v, want defaults", opts.Width, opts.Height)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", opts.Scale, DefaultScale)
	}
	if opts.Mode != "normal" {
		t.Errorf("Mode = %q, want normal", opts.Mode)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	// idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
}

func TestValidateAndSetDefaultsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want errors.Code
	}{
		{"negative width", Options{Frets: "x32010", Width: -1}, errors.ErrCodeInvalidLayoutArea},
		{"huge height", Options{Frets: "x32010", Height: 1e6}, errors.ErrCodeInvalidLayoutArea},
		{"bad mode", Options{Frets: "x32010", Mode: "fancy"}, errors.ErrCodeInvalidStyle},
		{"bad format", Options{Frets: "x32010", Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"bad scale", Options{Frets: "x32010", Scale: 100}, errors.ErrCodeInvalidInput},
		{"bad style", Options{Frets: "x32010", Style: &styles.Config{GridLineWidth: -1}}, errors.ErrCodeInvalidStyle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %s", err, tt.want)
			}
		})
	}
}

func TestModeOverridesStyle(t *testing.T) {
	cfg := styles.Default()
	opts := Options{Frets: "x32010", Style: &cfg, Mode: "simple"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Config().ShowMode != styles.Simple {
		t.Error("Mode should override the style's show mode")
	}
	if cfg.ShowMode != styles.Normal {
		t.Error("the caller's style must not be modified")
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Frets: "x32010", Formats: []string{"svg", "png"}, Scale: 2}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	svg := opts.ArtifactKeyOpts(FormatSVG)
	png := opts.ArtifactKeyOpts(FormatPNG)
	if svg.Scale != 0 {
		t.Error("scale should only key PNG artifacts")
	}
	if png.Scale != 2 {
		t.Errorf("png scale = %v, want 2", png.Scale)
	}
	if svg.Chord != "x32010" || svg.StyleHash == "" {
		t.Errorf("unexpected key opts: %+v", svg)
	}

	other := Options{Frets: "x32010", Mode: "simple"}
	if err := other.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if other.StyleHash() == opts.StyleHash() {
		t.Error("show mode should change the style hash")
	}
}

func TestArtifactKeyIndicators(t *testing.T) {
	red := color.NRGBA{R: 0xff, A: 0xff}
	solid := func(c color.NRGBA) image.Image {
		img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
		for i := 0; i < len(img.Pix); i += 4 {
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
		}
		return img
	}

	tests := []struct {
		name string
		a, b *styles.Indicator
	}{
		{"glyph color", styles.CrossIndicator(32, red), styles.CrossIndicator(32, styles.White)},
		{"glyph size", styles.RingIndicator(24, red), styles.RingIndicator(32, red)},
		{"file size",
			&styles.Indicator{Name: "mute.png", Width: 20, Height: 20, Image: solid(red)},
			&styles.Indicator{Name: "mute.png", Width: 30, Height: 30, Image: solid(red)}},
		{"file pixels",
			&styles.Indicator{Name: "mute.png", Width: 8, Height: 8, Image: solid(red)},
			&styles.Indicator{Name: "mute.png", Width: 8, Height: 8, Image: solid(styles.White)}},
		{"present vs absent", styles.CrossIndicator(32, red), nil},
	}
	key := func(ind *styles.Indicator) string {
		cfg := styles.Default()
		cfg.ClosedString = ind
		opts := Options{Frets: "x32010", Style: &cfg}
		if err := opts.ValidateAndSetDefaults(); err != nil {
			t.Fatal(err)
		}
		return cache.NewDefaultKeyer().ArtifactKey(opts.ArtifactKeyOpts(FormatPNG))
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if ka, kb := key(tt.a), key(tt.b); ka == kb {
				t.Errorf("indicators produced the same key %s", ka)
			}
		})
	}

	if key(styles.CrossIndicator(32, red)) != key(styles.CrossIndicator(32, red)) {
		t.Error("identical indicators should share a key")
	}
}

// memCache is a map-backed cache.Cache that counts writes.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

var _ cache.Cache = (*memCache)(nil)

func TestRunnerExecute(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, nil)

	opts := Options{Name: "Am", Formats: []string{FormatSVG, FormatJSON, FormatPNG}}
	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}
	if res.Chord.Name != "Am" {
		t.Errorf("Chord = %v", res.Chord)
	}
	if res.Stats.Primitives == 0 || res.Stats.Primitives != len(res.Diagram.Primitives) {
		t.Errorf("Primitives = %d", res.Stats.Primitives)
	}
	if !bytes.HasPrefix(res.Artifacts[FormatSVG], []byte("<svg")) {
		t.Errorf("svg artifact starts with %q", res.Artifacts[FormatSVG][:min(10, len(res.Artifacts[FormatSVG]))])
	}
	if !bytes.HasPrefix(res.Artifacts[FormatPNG], []byte("\x89PNG")) {
		t.Error("png artifact is not a PNG")
	}
	var doc map[string]any
	if err := json.Unmarshal(res.Artifacts[FormatJSON], &doc); err != nil {
		t.Errorf("json artifact: %v", err)
	}
	if c.sets != 3 {
		t.Errorf("cache sets = %d, want 3", c.sets)
	}

	again, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !again.CacheInfo.RenderHit {
		t.Error("second run should hit the cache")
	}
	if !bytes.Equal(again.Artifacts[FormatSVG], res.Artifacts[FormatSVG]) {
		t.Error("cached svg differs")
	}

	opts.Refresh = true
	refreshed, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if refreshed.CacheInfo.RenderHit {
		t.Error("refresh should bypass the cache")
	}
}

func TestRunnerPartialCacheHit(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, nil)

	if _, err := r.Execute(ctx, Options{Frets: "x32010", Formats: []string{FormatSVG}}); err != nil {
		t.Fatal(err)
	}
	res, err := r.Execute(ctx, Options{Frets: "x32010", Formats: []string{FormatSVG, FormatJSON}})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.RenderHit {
		t.Error("partial hit should not report a full cache hit")
	}
	if len(res.Artifacts) != 2 {
		t.Errorf("got %d artifacts, want 2", len(res.Artifacts))
	}
	if c.sets != 2 {
		t.Errorf("cache sets = %d, want 2 (json only on second run)", c.sets)
	}
}

func TestRunnerLayoutErrors(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Layout(context.Background(), Options{Frets: "x32010", Width: 10, Height: 10})
	if !errors.Is(err, errors.ErrCodeInvalidLayoutArea) {
		t.Errorf("err = %v, want INVALID_LAYOUT_AREA", err)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu      sync.Mutex
	layouts []string
	renders [][]string
}

func (h *recordingHooks) OnLayoutComplete(_ context.Context, chord string, _ int, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.layouts = append(h.layouts, chord)
}

func (h *recordingHooks) OnRenderComplete(_ context.Context, formats []string, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.renders = append(h.renders, formats)
}

func TestRunnerHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(context.Background(), Options{Frets: "x32010", Formats: []string{FormatJSON}}); err != nil {
		t.Fatal(err)
	}
	if len(hooks.layouts) != 1 || hooks.layouts[0] != "x32010" {
		t.Errorf("layout events = %v", hooks.layouts)
	}
	if len(hooks.renders) != 1 || hooks.renders[0][0] != FormatJSON {
		t.Errorf("render events = %v", hooks.renders)
	}
}
