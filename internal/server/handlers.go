package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/claude/repcycle/internal/models"
	"github.com/claude/repcycle/internal/session"
	"github.com/claude/repcycle/internal/timer"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps engine and timer sentinels to non-fatal HTTP statuses;
// anything else is a 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrExerciseNotFound),
		errors.Is(err, session.ErrNoSession),
		errors.Is(err, timer.ErrNoTimer):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		s.log.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TemplateID string `json:"template_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	// A timer shown for the outgoing session must not keep ticking into
	// the new one.
	s.timers.Dismiss(r.Context())

	sess, err := s.engine.StartSession(r.Context(), req.TemplateID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// positionParams parses the zero-based {section}/{exercise} URL params.
func positionParams(r *http.Request) (int, int, error) {
	section, err := strconv.Atoi(chi.URLParam(r, "section"))
	if err != nil {
		return 0, 0, errors.New("invalid section index")
	}
	exercise, err := strconv.Atoi(chi.URLParam(r, "exercise"))
	if err != nil {
		return 0, 0, errors.New("invalid exercise index")
	}
	return section, exercise, nil
}

func (s *Server) handleCompleteExercise(w http.ResponseWriter, r *http.Request) {
	section, exercise, err := positionParams(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	sess, err := s.engine.CompleteExerciseAt(r.Context(), section, exercise)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	sess, err := s.engine.AdvanceExercise(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleSaveProgress(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.SavePartialProgress(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleResetSession(w http.ResponseWriter, r *http.Request) {
	s.timers.Discard()
	if err := s.engine.ResetSession(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGetSession reconciles stale sessions before answering, mirroring
// the check the UI runs whenever the home screen loads.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.CheckStaleSession(r.Context()); err != nil {
		s.log.Warn("stale session check failed", "error", err)
	}

	sess, active := s.engine.Session(r.Context())
	if !active {
		writeJSON(w, http.StatusOK, map[string]any{"active": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"active": true, "session": sess})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.engine.Stats(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := s.engine.History(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if entries == nil {
		entries = []models.HistoryEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Templates())
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	tmpl, ok := s.engine.Template(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "template not found"})
		return
	}
	writeJSON(w, http.StatusOK, tmpl)
}

func (s *Server) handleTimerShow(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Section  int `json:"section"`
		Exercise int `json:"exercise"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	snap, err := s.timers.Show(r.Context(), req.Section, req.Exercise)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleTimerStart(w http.ResponseWriter, r *http.Request) {
	snap, err := s.timers.Start()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleTimerPause(w http.ResponseWriter, r *http.Request) {
	snap, err := s.timers.Pause()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleTimerReset(w http.ResponseWriter, r *http.Request) {
	snap, err := s.timers.Reset()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleTimerComplete(w http.ResponseWriter, r *http.Request) {
	snap, err := s.timers.Complete()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleTimerDismiss(w http.ResponseWriter, r *http.Request) {
	s.timers.Dismiss(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetTimer(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.timers.Snapshot()
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"active": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"active": true, "timer": snap})
}
