package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"novabot/internal/matcher"
	"novabot/internal/session"
	"novabot/internal/suggest"
)

type askRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id,omitempty"`
}

type askResponse struct {
	SessionID uuid.UUID `json:"session_id"`
	Answer    string    `json:"answer"`
	Question  string    `json:"question,omitempty"`
	Index     int       `json:"index"`
	Score     float64   `json:"score"`
}

type pageRequest struct {
	Page string `json:"page"`
}

type chatRequest struct {
	Open bool `json:"open"`
}

type healthResponse struct {
	Status      string `json:"status"`
	Entries     int    `json:"entries"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, NewBadRequestError("invalid JSON body"))
		return
	}
	// A blank query still reaches the matcher and yields its default entry;
	// the session transcript ignores it.
	query := strings.TrimSpace(req.Query)

	st := session.New()
	if req.SessionID != "" {
		var appErr *AppError
		if st, appErr = s.loadSession(req.SessionID); appErr != nil {
			s.writeError(w, appErr)
			return
		}
	}

	match, err := s.assistant.Ask(query)
	if err != nil {
		if errors.Is(err, matcher.ErrEmptyCorpus) {
			s.writeError(w, NewUnavailableError())
			return
		}
		s.logger.Error("ask failed", "err", err)
		s.writeError(w, NewInternalServerError(""))
		return
	}
	st = st.OpenChat().Record(query, match)
	if err := s.sessions.Put(st); err != nil {
		s.logger.Error("session save failed", "session", st.ID, "err", err)
		s.writeError(w, NewInternalServerError(""))
		return
	}

	s.writeJSON(w, http.StatusOK, askResponse{
		SessionID: st.ID,
		Answer:    match.Entry.Answer,
		Question:  match.Entry.Question,
		Index:     match.Index,
		Score:     match.Score,
	})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	st := session.New()
	if err := s.sessions.Put(st); err != nil {
		s.logger.Error("session save failed", "session", st.ID, "err", err)
		s.writeError(w, NewInternalServerError(""))
		return
	}
	s.writeJSON(w, http.StatusCreated, st)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	st, appErr := s.loadSession(r.PathValue("id"))
	if appErr != nil {
		s.writeError(w, appErr)
		return
	}
	s.writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	st, appErr := s.loadSession(r.PathValue("id"))
	if appErr != nil {
		s.writeError(w, appErr)
		return
	}
	if err := s.sessions.Delete(st.ID); err != nil {
		s.logger.Error("session delete failed", "session", st.ID, "err", err)
		s.writeError(w, NewInternalServerError(""))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	st, appErr := s.loadSession(r.PathValue("id"))
	if appErr != nil {
		s.writeError(w, appErr)
		return
	}
	var req pageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, NewBadRequestError("invalid JSON body"))
		return
	}
	st, err := st.Navigate(session.Page(req.Page))
	if err != nil {
		s.writeError(w, NewUnknownPageError(err.Error()))
		return
	}
	s.saveAndWrite(w, st)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	st, appErr := s.loadSession(r.PathValue("id"))
	if appErr != nil {
		s.writeError(w, appErr)
		return
	}
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, NewBadRequestError("invalid JSON body"))
		return
	}
	if req.Open {
		st = st.OpenChat()
	} else {
		st = st.CloseChat()
	}
	s.saveAndWrite(w, st)
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	n := suggest.DefaultCount
	if raw := r.URL.Query().Get("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			s.writeError(w, NewValidationError("n must be a positive integer"))
			return
		}
		n = v
	}
	suggestions := s.assistant.Suggestions(n)
	if suggestions == nil {
		suggestions = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"suggestions": suggestions})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	c := s.assistant.Corpus()
	if c.Len() == 0 {
		s.writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		return
	}
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Entries: c.Len(), Fingerprint: c.Fingerprint()})
}

func (s *Server) loadSession(raw string) (session.State, *AppError) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return session.State{}, NewValidationError("invalid session id")
	}
	st, err := s.sessions.Get(id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return session.State{}, NewSessionNotFoundError()
		}
		s.logger.Error("session load failed", "session", id, "err", err)
		return session.State{}, NewInternalServerError("")
	}
	return st, nil
}

func (s *Server) saveAndWrite(w http.ResponseWriter, st session.State) {
	if err := s.sessions.Put(st); err != nil {
		s.logger.Error("session save failed", "session", st.ID, "err", err)
		s.writeError(w, NewInternalServerError(""))
		return
	}
	s.writeJSON(w, http.StatusOK, st)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("response write failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, e *AppError) {
	s.writeJSON(w, e.HTTPCode, e)
}
