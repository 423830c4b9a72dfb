package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/panforge/panlayout/pkg/buildinfo"
	"github.com/panforge/panlayout/pkg/errors"
	"github.com/panforge/panlayout/pkg/notation"
	"github.com/panforge/panlayout/pkg/pipeline"
	"github.com/panforge/panlayout/pkg/pitch"
	"github.com/panforge/panlayout/pkg/spell"
	"github.com/panforge/panlayout/pkg/store"
)

// maxBody bounds request bodies; layouts are tiny.
const maxBody = 64 << 10

// layoutRequest is the body of /v1/parse, /v1/layout and /v1/render.
// Either Layout or Preset must be set; a preset supplies its mode unless
// Mode is given.
type layoutRequest struct {
	Layout      string  `json:"layout"`
	Preset      string  `json:"preset"`
	Mode        string  `json:"mode"`
	Radius      float64 `json:"radius"`
	Accidentals string  `json:"accidentals"`
	Notation    string  `json:"notation"`
	Style       string  `json:"style"`
	Title       string  `json:"title"`
	Format      string  `json:"format"`
	Scale       float64 `json:"scale"`
	SamplePath  string  `json:"sample_path"`
}

type noteResponse struct {
	Name    string `json:"name"`
	Pitch   string `json:"pitch"`
	Octave  int    `json:"octave"`
	Role    string `json:"role"`
	Display string `json:"display"`
	Sample  string `json:"sample"`
	MIDI    int    `json:"midi"`
}

type parseResponse struct {
	Format    string             `json:"format"`
	Canonical string             `json:"canonical"`
	UseFlats  bool               `json:"use_flats"`
	Notes     []noteResponse     `json:"notes"`
	Skipped   []notation.Skipped `json:"skipped,omitempty"`
}

type spellResponse struct {
	Root         string `json:"root"`
	Mode         string `json:"mode"`
	UseFlats     bool   `json:"use_flats"`
	KeySignature int    `json:"key_signature"`
}

type instrumentRequest struct {
	Name   string `json:"name"`
	Layout string `json:"layout"`
	Mode   string `json:"mode"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}

// options turns a request into validated pipeline options over the server defaults.
func (s *Server) options(req layoutRequest) (pipeline.Options, error) {
	opts := s.defaults
	opts.Formats = nil

	layout, mode := req.Layout, req.Mode
	if req.Preset != "" {
		p, err := s.catalog.Get(req.Preset)
		if err != nil {
			return opts, err
		}
		layout = p.Layout
		if mode == "" {
			mode = p.Mode
		}
		if req.Title == "" {
			req.Title = p.Name
		}
	}

	opts.Layout = layout
	if mode != "" {
		opts.Mode = mode
	}
	if req.Radius != 0 {
		opts.ShellRadius = req.Radius
	}
	if req.Accidentals != "" {
		opts.Accidentals = req.Accidentals
	}
	if req.Notation != "" {
		opts.Naming = req.Notation
	}
	if req.Style != "" {
		opts.Style = req.Style
	}
	if req.Scale != 0 {
		opts.Scale = req.Scale
	}
	if req.SamplePath != "" {
		opts.SamplePath = req.SamplePath
	}
	opts.Title = req.Title
	if req.Format != "" {
		opts.Formats = []string{req.Format}
	}
	return opts, opts.Validate()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := s.options(req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	placed, err := s.runner.Layout(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	l := placed.Layout
	sp := opts.Spelling(l)

	resp := parseResponse{
		Format:    l.Format.String(),
		Canonical: l.Canonical(),
		UseFlats:  sp.UseFlats,
		Notes:     make([]noteResponse, len(l.Notes)),
		Skipped:   l.Skipped,
	}
	for i, n := range l.Notes {
		resp.Notes[i] = noteResponse{
			Name:    n.String(),
			Pitch:   n.Pitch.String(),
			Octave:  n.Octave,
			Role:    n.Role.String(),
			Display: n.DisplayName(sp),
			Sample:  opts.SamplePath + n.SampleName(),
			MIDI:    n.MIDI(),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleLayout returns the positioned notes, in the same document the JSON sink writes.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	req.Format = pipeline.FormatJSON
	s.render(w, r, req)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Format == "" {
		req.Format = pipeline.FormatSVG
	}
	s.render(w, r, req)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, req layoutRequest) {
	opts, err := s.options(req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", pipeline.ContentTypes[req.Format])
	if res.UseFlats {
		w.Header().Set("X-Use-Flats", "true")
	} else {
		w.Header().Set("X-Use-Flats", "false")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[req.Format])
}

func (s *Server) handleSpell(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	root, err := pitch.Parse(q.Get("root"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	mode, err := spell.ParseMode(q.Get("mode"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, spellResponse{
		Root:         root.String(),
		Mode:         mode.String(),
		UseFlats:     spell.ShouldUseFlats(root, mode),
		KeySignature: spell.KeySignature(root, mode),
	})
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.List())
}

func (s *Server) handlePreset(w http.ResponseWriter, r *http.Request) {
	p, err := s.catalog.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleListInstruments(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleSaveInstrument(w http.ResponseWriter, r *http.Request) {
	var req instrumentRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	inst := &store.Instrument{Name: req.Name, Layout: req.Layout, Mode: req.Mode}
	if err := s.store.Save(r.Context(), inst); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, inst)
}

func (s *Server) handleGetInstrument(w http.ResponseWriter, r *http.Request) {
	inst, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inst)
}

func (s *Server) handleDeleteInstrument(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
