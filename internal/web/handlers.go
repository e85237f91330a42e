package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Fbari2002/side-quest/internal/quest"
)

const maxBodyBytes = 64 << 10

const (
	headerRequestID = "X-Request-Id"
	headerPath      = "X-Generation-Path"
	headerMode      = "X-Mode"
)

const msgInvalidRequest = "Invalid request."

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := uuid.NewString()
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set(headerRequestID, requestID)

	log := s.logger().With(zap.String("request_id", requestID))

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "Method not allowed."})
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: msgInvalidRequest})
		return
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Debug("unparsable request body", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, errorBody{Error: msgInvalidRequest})
		return
	}

	req, err := quest.Validate(payload)
	if err != nil {
		w.Header().Set(headerPath, string(quest.PathValidationError))
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	res, err := s.Quests.Generate(r.Context(), req)
	if err != nil {
		if errors.Is(err, quest.ErrMissingCredential) {
			w.Header().Set(headerPath, string(quest.PathMissingKey))
		}
		log.Error("generation failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
		return
	}

	w.Header().Set(headerPath, string(res.Path))
	w.Header().Set(headerMode, string(res.Mode()))
	writeJSON(w, http.StatusOK, res.Quest)

	log.Info("quest served",
		zap.String("path", string(res.Path)),
		zap.String("mode", string(res.Mode())),
		zap.Duration("took", time.Since(start)))
}

type healthBody struct {
	Status           string     `json:"status"`
	Mode             quest.Mode `json:"mode"`
	CircuitOpen      bool       `json:"circuit_open"`
	CircuitDownUntil *time.Time `json:"circuit_down_until,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	h := healthBody{Status: "ok", Mode: quest.ModeOffline}
	if s.Online {
		h.Mode = quest.ModeOnline
	}
	if s.State != nil {
		now := time.Now()
		if c := s.State.Circuit(); c.Open(now) {
			h.Mode = quest.ModeOffline
			h.CircuitOpen = true
			h.CircuitDownUntil = &c.DownUntil
		}
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, h)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
