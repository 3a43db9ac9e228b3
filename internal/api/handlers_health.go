package api

import (
	"net/http"

	"github.com/iammorganparry/logoflow/internal/models"
)

// Pinger reports whether the history database is usable.
type Pinger interface {
	Ping() error
}

type HealthHandler struct {
	db      Pinger
	namesOK bool
	logosOK bool
}

func NewHealthHandler(db Pinger, namesConfigured, logosConfigured bool) *HealthHandler {
	return &HealthHandler{db: db, namesOK: namesConfigured, logosOK: logosConfigured}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := models.HealthResponse{
		Status: "ok",
	}

	// Name provider
	if h.namesOK {
		resp.Names = models.ServiceCheck{Status: "ok"}
	} else {
		resp.Names = models.ServiceCheck{Status: "error", Message: "GOOGLE_API_KEY not set"}
		resp.Status = "degraded"
	}

	// Logo provider
	if h.logosOK {
		resp.Logos = models.ServiceCheck{Status: "ok"}
	} else {
		resp.Logos = models.ServiceCheck{Status: "error", Message: "HF_API_TOKEN not set"}
		resp.Status = "degraded"
	}

	// History DB
	if h.db == nil {
		resp.DB = models.ServiceCheck{Status: "disabled"}
	} else if err := h.db.Ping(); err != nil {
		resp.DB = models.ServiceCheck{Status: "error", Message: err.Error()}
		resp.Status = "degraded"
	} else {
		resp.DB = models.ServiceCheck{Status: "ok"}
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}
