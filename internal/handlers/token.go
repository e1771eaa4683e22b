package handlers

import (
	"encoding/json"
	"net/http"
)

// TokenIssuer is the token-service contract used by the /jwt route.
type TokenIssuer interface {
	Issue(email string) (string, error)
}

type TokenHandler struct {
	tokens TokenIssuer
}

func NewTokenHandler(tokens TokenIssuer) *TokenHandler {
	return &TokenHandler{tokens: tokens}
}

// Issue signs a short-lived token for the posted identity.
func (h *TokenHandler) Issue(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" {
		writeMessage(w, http.StatusBadRequest, "email is required")
		return
	}

	token, err := h.tokens.Issue(req.Email)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
