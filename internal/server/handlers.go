package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/blockfill/pkg/buildinfo"
	"github.com/matzehuels/blockfill/pkg/errors"
	"github.com/matzehuels/blockfill/pkg/pipeline"
	"github.com/matzehuels/blockfill/pkg/store"
	"github.com/matzehuels/blockfill/pkg/tiling"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	t, err := s.runner.Generate(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	format := chi.URLParam(r, "format")
	opts.Formats = []string{format}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("X-Blockfill-Rects", strconv.Itoa(res.Stats.Rects))
	w.Header().Set("X-Blockfill-Reason", string(res.Tiling.Reason))
	writeArtifact(w, format, res.Artifacts[format])
}

// runSummary is the list view of a stored run.
type runSummary struct {
	ID        string          `json:"id"`
	Name      string          `json:"name,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	Seed      int64           `json:"seed"`
	Strategy  tiling.Strategy `json:"strategy"`
	Reason    tiling.Reason   `json:"reason"`
	Rects     int             `json:"rects"`
}

func summarize(run *store.Run) runSummary {
	t := run.Tiling
	return runSummary{
		ID:        run.ID,
		Name:      run.Name,
		CreatedAt: run.CreatedAt,
		Width:     t.Width,
		Height:    t.Height,
		Seed:      t.Seed,
		Strategy:  t.Strategy,
		Reason:    t.Reason,
		Rects:     len(t.Rects),
	}
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	var opts store.ListOptions
	if err := queryInt(r.URL.Query(), "limit", &opts.Limit); err != nil {
		s.writeError(w, r, err)
		return
	}
	if v := r.URL.Query().Get("strategy"); v != "" {
		strategy, err := tiling.ParseStrategy(v)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		opts.Strategy = strategy
	}

	runs, err := s.store.List(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]runSummary, len(runs))
	for i, run := range runs {
		out[i] = summarize(run)
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": out})
}

// createRunRequest is the body of POST /v1/runs.
type createRunRequest struct {
	pipeline.Options
	Name string `json:"name,omitempty"`
}

func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	req := createRunRequest{Options: s.defaults}
	req.Formats = nil
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
			return
		}
	}
	req.SetGenerateDefaults()
	if s.maxCells > 0 && errors.ExceedsCells(req.Width, req.Height, s.maxCells) {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "grid %dx%d exceeds %d cells", req.Width, req.Height, s.maxCells))
		return
	}

	t, err := s.runner.Generate(r.Context(), req.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	run := store.NewRun(t, req.Name)
	if err := s.store.Save(r.Context(), run); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/v1/runs/"+run.ID)
	writeJSON(w, http.StatusCreated, run)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleRenderRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := s.options(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	format := chi.URLParam(r, "format")
	opts.Formats = []string{format}

	artifacts, err := s.runner.Render(r.Context(), run.Tiling, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeArtifact(w, format, artifacts[format])
}

func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
