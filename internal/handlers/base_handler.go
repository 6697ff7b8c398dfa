package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/learnhub/lms-webclient/internal/middleware"
	"github.com/learnhub/lms-webclient/internal/models"
	"github.com/learnhub/lms-webclient/internal/services"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

type BaseHandler struct {
	logger *zap.Logger
}

// respondJSON sends a JSON response
func (h *BaseHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// respondError sends an error JSON response
func (h *BaseHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError maps a service error to a status code and a generic message.
//
// Remote client errors keep their status; any other remote failure is a bad gateway.
// fallback is the message used when the error carries nothing safe to show.
func (h *BaseHandler) respondServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		h.respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "validation failed", Fields: verr.Fields})
		return
	case errors.Is(err, services.ErrUnauthenticated):
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	case errors.Is(err, services.ErrInvalidCredentials):
		h.respondError(w, http.StatusUnauthorized, "invalid email or password")
		return
	case errors.Is(err, services.ErrViewNotFound):
		h.respondError(w, http.StatusNotFound, "course view not open")
		return
	case errors.Is(err, services.ErrContentNotFound):
		h.respondError(w, http.StatusNotFound, "content not found")
		return
	case errors.Is(err, services.ErrCourseNotFound):
		h.respondError(w, http.StatusNotFound, "course not found")
		return
	}

	status := services.RemoteStatus(err)
	switch status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound, http.StatusConflict:
		h.respondError(w, status, fallback)
		return
	case 0:
		h.logger.Error(fallback,
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err),
		)
		h.respondError(w, http.StatusInternalServerError, fallback)
		return
	}

	h.logger.Error(fallback,
		zap.String("request_id", middleware.GetRequestID(r.Context())),
		zap.Int("remote_status", status),
		zap.Error(err),
	)
	h.respondError(w, http.StatusBadGateway, fallback)
}

// idParam parses a positive int64 URL parameter
func (h *BaseHandler) idParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		h.respondError(w, http.StatusBadRequest, name+" parameter is required")
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.respondError(w, http.StatusBadRequest, "invalid "+name+" parameter")
		return 0, false
	}
	return id, true
}

// session returns the session loaded by the session middleware
func (h *BaseHandler) session(r *http.Request) *models.Session {
	sess, _ := middleware.GetSession(r.Context())
	return sess
}
