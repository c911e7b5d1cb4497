// Package api provides the HTTP surface for talking to the resident
// and observing her state. GET endpoints are read-only observation; the
// POST chat endpoint is rate limited per caller.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Cheetoyumyum/Project-Jessica/internal/mind"
)

// Server serves the resident's state over HTTP.
type Server struct {
	Mind *mind.Mind
	Port int

	chatThrottle *throttle
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	if s.chatThrottle == nil {
		s.chatThrottle = newThrottle(30, time.Minute)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/world", s.handleWorld)
	mux.HandleFunc("/api/v1/affect", s.handleAffect)
	mux.HandleFunc("/api/v1/events", s.handleEvents)
	mux.HandleFunc("/api/v1/say", s.throttled(s.handleSay))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr)

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	st := s.Mind.CurrentStatus()
	out := map[string]any{
		"status":           st,
		"last_interaction": humanize.Time(st.LastInteraction),
	}
	writeJSON(w, out)
}

func (s *Server) handleWorld(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Mind.WorldView())
}

func (s *Server) handleAffect(w http.ResponseWriter, r *http.Request) {
	st := s.Mind.CurrentStatus()
	writeJSON(w, map[string]any{
		"affect":      st.Affect,
		"mood":        st.Affect.Mood,
		"psych_state": st.PsychState,
	})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 256 {
			limit = n
		}
	}
	events := s.Mind.RecentEvents(limit)

	type eventView struct {
		Beat int64  `json:"beat"`
		Ago  string `json:"ago"`
		Kind string `json:"kind"`
		Text string `json:"text"`
	}
	out := make([]eventView, 0, len(events))
	for _, ev := range events {
		out = append(out, eventView{
			Beat: ev.Beat,
			Ago:  humanize.Time(ev.At),
			Kind: ev.Kind,
			Text: ev.Text,
		})
	}
	writeJSON(w, map[string]any{"events": out})
}

// sayRequest is an incoming chat message.
type sayRequest struct {
	UserID string `json:"user_id"`
	Text   string `json:"text"`
}

func (s *Server) handleSay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}
	var req sayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		http.Error(w, "text is required", http.StatusBadRequest)
		return
	}
	if req.UserID == "" {
		req.UserID = "friend"
	}
	if err := s.Mind.Say(req.UserID, req.Text); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, map[string]any{"accepted": true})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write response", "error", err)
	}
}
