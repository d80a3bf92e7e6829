package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/automatalib/automata/pkg/definition"
	"github.com/automatalib/automata/pkg/fa"
	"github.com/automatalib/automata/pkg/pipeline"
	"github.com/automatalib/automata/pkg/render"
	"github.com/automatalib/automata/pkg/store"
)

// errorResponse is the JSON error envelope. Code carries the automaton
// error code when the failure came from validation or recognition.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorResponse{
		Error: fa.UserMessage(err),
		Code:  string(fa.ErrCode(err)),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCreate validates and stores a definition, assigning it a fresh ID.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	def, err := definition.Read(r.Body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	// Validate before storing; a malformed definition never enters the store.
	if def.IsNFA() {
		_, err = def.ToNFA()
	} else {
		_, err = def.ToDFA()
	}
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	rec := &store.Record{
		ID:         uuid.NewString(),
		Definition: def,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.store.Put(r.Context(), rec); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, recs)
}

// loadRecord fetches the automaton addressed by the id URL parameter,
// writing the error response itself on failure.
func (s *Server) loadRecord(w http.ResponseWriter, r *http.Request) (*store.Record, bool) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, err)
		return nil, false
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return nil, false
	}
	return rec, true
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	if rec, ok := s.loadRecord(w, r); ok {
		s.writeJSON(w, http.StatusOK, rec)
	}
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	err := s.store.Delete(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// runRequest is the payload for POST /automata/{id}/run.
type runRequest struct {
	Input []string `json:"input"`
}

// runResponse reports recognition of one input word.
type runResponse struct {
	Accepted bool     `json:"accepted"`
	Trace    []string `json:"trace"`
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.loadRecord(w, r)
	if !ok {
		return
	}
	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	trace, accepted, err := s.runner.Run(r.Context(), rec.Definition, req.Input)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	s.writeJSON(w, http.StatusOK, runResponse{Accepted: accepted, Trace: trace})
}

// operationRequest is the payload for POST /operations/{op}. Operands are
// inline definitions or references to stored automata by ID.
type operationRequest struct {
	Left    *definition.Definition `json:"left,omitempty"`
	LeftID  string                 `json:"left_id,omitempty"`
	Right   *definition.Definition `json:"right,omitempty"`
	RightID string                 `json:"right_id,omitempty"`

	RetainNames bool `json:"retain_names,omitempty"`
	SkipMinify  bool `json:"skip_minify,omitempty"`
}

// resolveOperand returns the inline definition or loads the referenced one.
func (s *Server) resolveOperand(r *http.Request, inline *definition.Definition, id string) (*definition.Definition, error) {
	if inline != nil {
		return inline, nil
	}
	if id == "" {
		return nil, nil
	}
	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		return nil, err
	}
	return rec.Definition, nil
}

func (s *Server) handleOperation(w http.ResponseWriter, r *http.Request) {
	var req operationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	left, err := s.resolveOperand(r, req.Left, req.LeftID)
	if err == nil && left == nil {
		err = errors.New("missing left operand")
	}
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	right, err := s.resolveOperand(r, req.Right, req.RightID)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := s.runner.Apply(r.Context(), pipeline.Request{
		Operation:   chi.URLParam(r, "op"),
		Left:        left,
		Right:       right,
		RetainNames: req.RetainNames,
		SkipMinify:  req.SkipMinify,
	})
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

// checkResponse reports a language predicate.
type checkResponse struct {
	Result bool `json:"result"`
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req operationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	left, err := s.resolveOperand(r, req.Left, req.LeftID)
	if err == nil && left == nil {
		err = errors.New("missing left operand")
	}
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	right, err := s.resolveOperand(r, req.Right, req.RightID)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := s.runner.Check(r.Context(), chi.URLParam(r, "predicate"), left, right)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	s.writeJSON(w, http.StatusOK, checkResponse{Result: result})
}

func (s *Server) handleDiagramDOT(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.loadRecord(w, r)
	if !ok {
		return
	}
	d, err := rec.Definition.ToDFA()
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz")
	_, _ = w.Write([]byte(render.ToDOT(d)))
}

func (s *Server) handleDiagramSVG(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.loadRecord(w, r)
	if !ok {
		return
	}
	d, err := rec.Definition.ToDFA()
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	svg, err := render.RenderSVG(r.Context(), d)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}
