package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/iammorganparry/logoflow/internal/logo"
	"github.com/iammorganparry/logoflow/internal/models"
)

// NameSource generates brand name candidates.
type NameSource interface {
	Generate(ctx context.Context, description, model string) ([]string, error)
}

// LogoSource renders a logo and returns it as a data URI.
type LogoSource interface {
	Paint(ctx context.Context, name, description, model string) (string, error)
}

// HistoryRecorder stores completed generations.
type HistoryRecorder interface {
	RecordNames(description, model string, names []string) (*models.Generation, error)
	RecordLogo(name, description, model string, imageBytes int) (*models.Generation, error)
}

// GenerateHandler serves the two generation endpoints. A nil source means
// the provider credentials are not configured.
type GenerateHandler struct {
	names            NameSource
	logos            LogoSource
	history          HistoryRecorder
	metrics          *Metrics
	defaultNameModel string
	logoModel        string
	logger           *slog.Logger
}

func NewGenerateHandler(
	names NameSource,
	logos LogoSource,
	history HistoryRecorder,
	metrics *Metrics,
	defaultNameModel, logoModel string,
	logger *slog.Logger,
) *GenerateHandler {
	return &GenerateHandler{
		names:            names,
		logos:            logos,
		history:          history,
		metrics:          metrics,
		defaultNameModel: defaultNameModel,
		logoModel:        logoModel,
		logger:           logger,
	}
}

// Names handles POST /api/generate-names
func (h *GenerateHandler) Names(w http.ResponseWriter, r *http.Request) {
	const kind = string(models.GenerationKindNames)

	if h.names == nil {
		h.metrics.observe(kind, outcomeUnavailable, time.Time{})
		writeError(w, http.StatusInternalServerError, "Server Configuration Error: GOOGLE_API_KEY not set")
		return
	}

	var req models.GenerateNamesRequest
	if err := decodeJSON(r, &req); err != nil {
		h.metrics.observe(kind, outcomeInvalid, time.Time{})
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	req.Description = strings.TrimSpace(req.Description)
	if req.Description == "" {
		h.metrics.observe(kind, outcomeInvalid, time.Time{})
		writeError(w, http.StatusBadRequest, "description is required")
		return
	}
	if req.Model == "" {
		req.Model = h.defaultNameModel
	}

	start := time.Now()
	names, err := h.names.Generate(r.Context(), req.Description, req.Model)
	if err != nil {
		h.metrics.observe(kind, outcomeFailed, start)
		h.logger.Error("name generation failed", "request_id", GetRequestID(r), "model", req.Model, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.metrics.observe(kind, outcomeOK, start)

	if h.history != nil {
		if _, err := h.history.RecordNames(req.Description, req.Model, names); err != nil {
			h.logger.Warn("failed to record name generation", "error", err)
		}
	}

	writeJSON(w, http.StatusOK, models.GenerateNamesResponse{Names: names})
}

// Logo handles POST /api/generate-logo
func (h *GenerateHandler) Logo(w http.ResponseWriter, r *http.Request) {
	const kind = string(models.GenerationKindLogo)

	if h.logos == nil {
		h.metrics.observe(kind, outcomeUnavailable, time.Time{})
		writeError(w, http.StatusInternalServerError, "Server Configuration Error: HF_API_TOKEN not set")
		return
	}

	var req models.GenerateLogoRequest
	if err := decodeJSON(r, &req); err != nil {
		h.metrics.observe(kind, outcomeInvalid, time.Time{})
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		h.metrics.observe(kind, outcomeInvalid, time.Time{})
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Model == "" {
		req.Model = h.logoModel
	}

	start := time.Now()
	image, err := h.logos.Paint(r.Context(), req.Name, req.Description, req.Model)
	if err != nil {
		h.metrics.observe(kind, outcomeFailed, start)
		h.logger.Error("logo generation failed", "request_id", GetRequestID(r), "model", req.Model, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.metrics.observe(kind, outcomeOK, start)

	if h.history != nil {
		size := len(image)
		if _, data, err := logo.DecodeDataURI(image); err == nil {
			size = len(data)
		}
		if _, err := h.history.RecordLogo(req.Name, req.Description, req.Model, size); err != nil {
			h.logger.Warn("failed to record logo generation", "error", err)
		}
	}

	writeJSON(w, http.StatusOK, models.GenerateLogoResponse{Image: image})
}
