package handlers

import (
	"context"
	"net/http"

	"github.com/bistroboss/bistro-gobackend/internal/services"
)

type StatsProvider interface {
	Summary(ctx context.Context) (*services.AdminSummary, error)
	OrderStats(ctx context.Context) ([]services.CategoryStat, error)
}

type StatsHandler struct {
	stats StatsProvider
}

func NewStatsHandler(stats StatsProvider) *StatsHandler {
	return &StatsHandler{stats: stats}
}

func (h *StatsHandler) AdminHome(w http.ResponseWriter, r *http.Request) {
	summary, err := h.stats.Summary(r.Context())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to compute summary")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *StatsHandler) OrderStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.OrderStats(r.Context())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to compute order stats")
		return
	}
	if stats == nil {
		stats = []services.CategoryStat{}
	}
	writeJSON(w, http.StatusOK, stats)
}
