package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/ersonp/namesift/internal/application/handlers"
	"github.com/ersonp/namesift/internal/domain/entities"
	"github.com/ersonp/namesift/internal/infrastructure/render"
)

const defaultRunsLimit = 20

type treeResponse struct {
	RunID string      `json:"run_id"`
	Stats statsJSON   `json:"stats"`
	Tree  render.Node `json:"tree"`
}

type statsJSON struct {
	Total    int `json:"total"`
	Persons  int `json:"persons"`
	Flagged  int `json:"flagged"`
	Excluded int `json:"excluded"`
}

type overlapJSON struct {
	Parent   string   `json:"parent"`
	Siblings []string `json:"siblings"`
}

type reviewRecordJSON struct {
	Position int    `json:"position"`
	Name     string `json:"name"`
}

type runJSON struct {
	ID        string `json:"id"`
	Source    string `json:"source"`
	Total     int    `json:"total"`
	Persons   int    `json:"persons"`
	Flagged   int    `json:"flagged"`
	CreatedAt string `json:"created_at"`
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	result, ok := s.groupLatest(w, r)
	if !ok {
		return
	}
	writeJSON(w, treeResponse{
		RunID: result.Run.ID,
		Stats: statsJSON{
			Total:    result.Stats.Total,
			Persons:  result.Stats.Persons,
			Flagged:  result.Stats.Flagged,
			Excluded: result.Stats.Excluded(),
		},
		Tree: render.ToNode(result.Tree),
	})
}

func (s *Server) handleOverlaps(w http.ResponseWriter, r *http.Request) {
	result, ok := s.groupLatest(w, r)
	if !ok {
		return
	}
	out := make([]overlapJSON, 0, len(result.Overlaps))
	for _, o := range result.Overlaps {
		out = append(out, overlapJSON{Parent: o.Parent, Siblings: o.Siblings})
	}
	writeJSON(w, map[string]any{"run_id": result.Run.ID, "overlaps": out})
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	result, err := s.review.Handle(r.Context(), r.URL.Query().Get("run"))
	if err != nil {
		s.handleError(w, err)
		return
	}
	out := make([]reviewRecordJSON, 0, len(result.Records))
	for _, rec := range result.Records {
		out = append(out, reviewRecordJSON{Position: rec.Position, Name: entities.Str(rec.Name)})
	}
	writeJSON(w, map[string]any{"run_id": result.Run.ID, "records": out})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := defaultRunsLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			jsonError(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	runs, err := s.runs.List(r.Context(), limit)
	if err != nil {
		s.handleError(w, err)
		return
	}
	out := make([]runJSON, 0, len(runs))
	for _, run := range runs {
		out = append(out, runJSON{
			ID:        run.ID,
			Source:    run.Source,
			Total:     run.Total,
			Persons:   run.Persons,
			Flagged:   run.Flagged,
			CreatedAt: run.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}
	writeJSON(w, map[string]any{"runs": out})
}

// handleReport renders the markdown report of the latest run as HTML.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	result, ok := s.groupLatest(w, r)
	if !ok {
		return
	}

	var md bytes.Buffer
	if err := render.Markdown(&md, result.Tree, result.Overlaps); err != nil {
		s.handleError(w, err)
		return
	}
	var html bytes.Buffer
	if err := s.markdown.Convert(md.Bytes(), &html); err != nil {
		s.handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html.Bytes())
}

// groupLatest groups the run named by ?run (latest when absent). ?dates=false
// drops the date level. On failure the error response is already written.
func (s *Server) groupLatest(w http.ResponseWriter, r *http.Request) (*handlers.GroupResult, bool) {
	opts := s.opts
	if v := r.URL.Query().Get("dates"); v != "" {
		considerDates, err := strconv.ParseBool(v)
		if err != nil {
			jsonError(w, "dates must be true or false", http.StatusBadRequest)
			return nil, false
		}
		opts.ConsiderDates = considerDates
	}

	result, err := s.group.Handle(r.Context(), handlers.GroupRequest{
		RunID:   r.URL.Query().Get("run"),
		Options: opts,
	})
	if err != nil {
		s.handleError(w, err)
		return nil, false
	}
	return result, true
}

func (s *Server) handleError(w http.ResponseWriter, err error) {
	if errors.Is(err, entities.ErrRunNotFound) {
		jsonError(w, err.Error(), http.StatusNotFound)
		return
	}
	s.log.Error("request failed", "error", err)
	jsonError(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
