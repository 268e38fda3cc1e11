// Package handler exposes the push endpoint for server-mode deployments
// where the bus delivers events over HTTPS instead of invoking a function.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Specter099/aws-iam-root-user-activity-monitor/internal/monitor/models"
	"github.com/Specter099/aws-iam-root-user-activity-monitor/pkg/platform/sentinel"
)

// Service is the pipeline the handler feeds.
type Service interface {
	Handle(ctx context.Context, ev models.ActivityEvent) error
}

// Handler handles event delivery endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New creates an event Handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register registers the event routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/events", h.handleEvent)
}

// handleEvent accepts one bus envelope per request. A dispatch failure maps
// to 500 so the push subscription redelivers; everything else the pipeline
// absorbs is a success from the bus's point of view.
func (h *Handler) handleEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	deliveryID := uuid.NewString()

	var ev models.ActivityEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		h.logger.WarnContext(ctx, "malformed event envelope",
			"delivery_id", deliveryID,
			"error", err.Error(),
		)
		http.Error(w, "invalid event envelope", http.StatusBadRequest)
		return
	}

	if err := h.service.Handle(ctx, ev); err != nil {
		if errors.Is(err, sentinel.ErrDispatchFailed) {
			http.Error(w, "dispatch failed", http.StatusInternalServerError)
			return
		}
		h.logger.ErrorContext(ctx, "event processing failed",
			"delivery_id", deliveryID,
			"event_id", ev.ID,
			"error", err.Error(),
		)
		http.Error(w, "processing failed", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
