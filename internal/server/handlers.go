package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/chordview/pkg/buildinfo"
	"github.com/matzehuels/chordview/pkg/chord"
	"github.com/matzehuels/chordview/pkg/errors"
	"github.com/matzehuels/chordview/pkg/pipeline"
)

// maxBodyBytes bounds PUT request bodies.
const maxBodyBytes = 64 << 10

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Version})
}

// chordResponse is the listing form of a chord.
type chordResponse struct {
	Name    string `json:"name"`
	Frets   string `json:"frets"`
	Fingers string `json:"fingers,omitempty"`
}

func toChordResponse(c *chord.Chord) chordResponse {
	return chordResponse{Name: c.Name, Frets: c.FretString(), Fingers: c.FingerString()}
}

func (s *Server) handleListChords(w http.ResponseWriter, r *http.Request) {
	chords, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	out := make([]chordResponse, 0, len(chords))
	for _, c := range chords {
		if q != "" && !strings.Contains(strings.ToLower(c.Name), q) {
			continue
		}
		out = append(out, toChordResponse(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRenderChord(w http.ResponseWriter, r *http.Request) {
	name, err := pathName(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := s.store.Get(r.Context(), name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := s.renderOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Chord = c
	s.render(w, r, opts)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.renderOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	q := r.URL.Query()
	opts.Frets = q.Get("frets")
	opts.Fingers = q.Get("fingers")
	opts.Name = q.Get("name")
	if strings.TrimSpace(opts.Frets) == "" {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "frets query parameter is required"))
		return
	}
	s.render(w, r, opts)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, opts pipeline.Options) {
	format := opts.Formats[0]
	res, err := s.cfg.Runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if res.CacheInfo.RenderHit {
		w.Header().Set(cacheHeader, "HIT")
	} else {
		w.Header().Set(cacheHeader, "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// renderOptions reads the format path parameter and the shared query
// parameters.
func (s *Server) renderOptions(r *http.Request) (pipeline.Options, error) {
	format := strings.ToLower(chi.URLParam(r, "format"))
	if err := pipeline.ValidateFormat(format); err != nil {
		return pipeline.Options{}, err
	}
	q := r.URL.Query()
	opts := pipeline.Options{
		Formats: []string{format},
		Mode:    q.Get("mode"),
		Style:   s.cfg.Style,
		Logger:  s.logger,
	}
	var err error
	if opts.Width, err = floatParam(q, "width"); err != nil {
		return opts, err
	}
	if opts.Height, err = floatParam(q, "height"); err != nil {
		return opts, err
	}
	if opts.Scale, err = floatParam(q, "scale"); err != nil {
		return opts, err
	}
	return opts, nil
}

// putChordRequest is the body of PUT /v1/chords/{name}. Frets and fingers
// use the same notation as the CLI.
type putChordRequest struct {
	Frets   string `json:"frets"`
	Fingers string `json:"fingers,omitempty"`
}

func (s *Server) handlePutChord(w http.ResponseWriter, r *http.Request) {
	name, err := pathName(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := errors.ValidateChordName(name); err != nil {
		s.writeError(w, r, err)
		return
	}

	var req putChordRequest
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode body"))
		return
	}
	c, err := chord.Parse(req.Frets, req.Fingers)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	c.Name = name

	if err := s.store.Put(r.Context(), c); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("stored chord", "name", name, "frets", c.FretString())
	writeJSON(w, http.StatusCreated, toChordResponse(c))
}

func (s *Server) handleDeleteChord(w http.ResponseWriter, r *http.Request) {
	name, err := pathName(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.Delete(r.Context(), name); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pathName returns the unescaped {name} parameter. Slash chords arrive
// escaped ("C%2F8").
func pathName(r *http.Request) (string, error) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidChordName, err, "chord name")
	}
	if name == "" {
		return "", errors.New(errors.ErrCodeInvalidChordName, "chord name cannot be empty")
	}
	return name, nil
}

func floatParam(q url.Values, key string) (float64, error) {
	s := q.Get(key)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s must be a number, got %q", key, s)
	}
	return v, nil
}
