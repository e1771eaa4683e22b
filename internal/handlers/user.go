package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bistroboss/bistro-gobackend/internal/auth"
	"github.com/bistroboss/bistro-gobackend/internal/middleware"
	"github.com/bistroboss/bistro-gobackend/internal/models"
)

type UserDirectory interface {
	List(ctx context.Context) ([]models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Ensure(ctx context.Context, user *models.User) (*mongo.InsertOneResult, error)
	PromoteToAdmin(ctx context.Context, id string) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id string) (*mongo.DeleteResult, error)
}

type UserHandler struct {
	directory UserDirectory
}

func NewUserHandler(directory UserDirectory) *UserHandler {
	return &UserHandler{directory: directory}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.directory.List(r.Context())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to fetch users")
		return
	}
	if users == nil {
		users = []models.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// CheckAdmin reports whether the path email belongs to an Admin. Identity
// scoping applies regardless of role: callers may only ask about themselves.
func (h *UserHandler) CheckAdmin(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, auth.ErrMissingToken.Error())
		return
	}

	email := mux.Vars(r)["email"]
	if email != claims.Email {
		writeMessage(w, http.StatusForbidden, "forbidden access")
		return
	}

	user, err := h.directory.FindByEmail(r.Context(), email)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}

	admin := user != nil && user.Role == auth.RoleAdmin
	writeJSON(w, http.StatusOK, map[string]bool{"admin": admin})
}

// Ensure is the idempotent first-login upsert. Repeat calls report
// insertedId null and write nothing.
func (h *UserHandler) Ensure(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	user.Email = mux.Vars(r)["email"]

	result, err := h.directory.Ensure(r.Context(), &user)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	if result == nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"message":    "user already exists",
			"insertedId": nil,
		})
		return
	}

	writeJSON(w, http.StatusOK, insertAck(result))
}

func (h *UserHandler) Promote(w http.ResponseWriter, r *http.Request) {
	result, err := h.directory.PromoteToAdmin(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, updateAck(result))
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	result, err := h.directory.Delete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, deleteAck(result))
}
