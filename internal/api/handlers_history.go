package api

import (
	"net/http"
	"strconv"

	"github.com/iammorganparry/logoflow/internal/models"
)

// HistoryLister reads recorded generations.
type HistoryLister interface {
	List(kind models.GenerationKind, limit int) ([]models.Generation, error)
}

type HistoryHandler struct {
	history HistoryLister
}

func NewHistoryHandler(history HistoryLister) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// List handles GET /api/history
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	kind := models.GenerationKind(r.URL.Query().Get("kind"))
	if kind != "" && !kind.IsValid() {
		writeError(w, http.StatusBadRequest, "invalid kind")
		return
	}

	generations, err := h.history.List(kind, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, models.HistoryResponse{Generations: generations})
}
