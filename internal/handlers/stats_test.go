package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bistroboss/bistro-gobackend/internal/services"
)

func TestAdminHome(t *testing.T) {
	stats := &mockStats{SummaryFunc: func(ctx context.Context) (*services.AdminSummary, error) {
		return &services.AdminSummary{TotalUser: 3, TotalMenu: 12, TotalOrder: 2, Revenue: 19.75}, nil
	}}
	h := NewStatsHandler(stats)

	w := httptest.NewRecorder()
	h.AdminHome(w, httptest.NewRequest(http.MethodGet, "/admin-home", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp map[string]float64
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if resp["totalUser"] != 3 || resp["totalMenu"] != 12 || resp["totalOrder"] != 2 {
		t.Errorf("counts = %v", resp)
	}
	if resp["revenue"] != 19.75 {
		t.Errorf("revenue = %v, want 19.75", resp["revenue"])
	}
}

func TestOrderStatsEmpty(t *testing.T) {
	stats := &mockStats{OrderStatsFunc: func(ctx context.Context) ([]services.CategoryStat, error) {
		return nil, nil
	}}
	h := NewStatsHandler(stats)

	w := httptest.NewRecorder()
	h.OrderStats(w, httptest.NewRequest(http.MethodGet, "/order-stats", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var rows []services.CategoryStat
	if err := json.NewDecoder(w.Body).Decode(&rows); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if rows == nil || len(rows) != 0 {
		t.Errorf("rows = %v, want an empty array", rows)
	}
}

func TestOrderStats(t *testing.T) {
	stats := &mockStats{OrderStatsFunc: func(ctx context.Context) ([]services.CategoryStat, error) {
		return []services.CategoryStat{{Category: "Dessert", Quantity: 2, Revenue: 13.0}}, nil
	}}
	h := NewStatsHandler(stats)

	w := httptest.NewRecorder()
	h.OrderStats(w, httptest.NewRequest(http.MethodGet, "/order-stats", nil))

	var rows []services.CategoryStat
	if err := json.NewDecoder(w.Body).Decode(&rows); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(rows) != 1 || rows[0].Category != "Dessert" || rows[0].Quantity != 2 {
		t.Errorf("rows = %+v", rows)
	}
}
