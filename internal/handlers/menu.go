package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bistroboss/bistro-gobackend/internal/models"
)

// MenuStore is the catalog contract the HTTP surface needs.
type MenuStore interface {
	List(ctx context.Context) ([]models.MenuItem, error)
	Get(ctx context.Context, id string) (*models.MenuItem, error)
	Create(ctx context.Context, item *models.MenuItem) (*mongo.InsertOneResult, error)
	Update(ctx context.Context, id string, fields bson.M) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id string) (*mongo.DeleteResult, error)
}

type MenuHandler struct {
	store MenuStore
}

func NewMenuHandler(store MenuStore) *MenuHandler {
	return &MenuHandler{store: store}
}

func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.List(r.Context())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to fetch menu")
		return
	}
	if items == nil {
		items = []models.MenuItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// Get responds 200 with a null body when no item matches, matching the
// surface the frontend consumes.
func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.store.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	var item models.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.store.Create(r.Context(), &item)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, insertAck(result))
}

func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	var fields bson.M
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	// id comes from the path, never the body
	delete(fields, "_id")
	delete(fields, "id")

	result, err := h.store.Update(r.Context(), mux.Vars(r)["id"], fields)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, updateAck(result))
}

func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	result, err := h.store.Delete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, deleteAck(result))
}
