package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bistroboss/bistro-gobackend/internal/models"
)

type CartStore interface {
	ListByEmail(ctx context.Context, email string) ([]models.CartEntry, error)
	Add(ctx context.Context, entry *models.CartEntry) (*mongo.InsertOneResult, error)
	Delete(ctx context.Context, id string) (*mongo.DeleteResult, error)
}

type CartHandler struct {
	store CartStore
}

func NewCartHandler(store CartStore) *CartHandler {
	return &CartHandler{store: store}
}

// List returns the pending entries for the email given in the query.
func (h *CartHandler) List(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	entries, err := h.store.ListByEmail(r.Context(), email)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to fetch cart")
		return
	}
	if entries == nil {
		entries = []models.CartEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var entry models.CartEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.store.Add(r.Context(), &entry)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, insertAck(result))
}

func (h *CartHandler) Delete(w http.ResponseWriter, r *http.Request) {
	result, err := h.store.Delete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, deleteAck(result))
}
