package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bistroboss/bistro-gobackend/internal/auth"
	"github.com/bistroboss/bistro-gobackend/internal/gateway"
	"github.com/bistroboss/bistro-gobackend/internal/middleware"
	"github.com/bistroboss/bistro-gobackend/internal/models"
	"github.com/bistroboss/bistro-gobackend/internal/services"
)

// PaymentWorkflow is the reconciliation contract the HTTP surface needs.
type PaymentWorkflow interface {
	CreateIntent(ctx context.Context, price float64) (string, error)
	Record(ctx context.Context, payment *models.Payment) (*services.ReceiptResult, error)
	HistoryByEmail(ctx context.Context, email string) ([]models.Payment, error)
}

type PaymentHandler struct {
	workflow PaymentWorkflow
}

func NewPaymentHandler(workflow PaymentWorkflow) *PaymentHandler {
	return &PaymentHandler{workflow: workflow}
}

// CreateIntent asks the gateway for a payment intent and hands the client
// secret back. Gateway failures surface with the gateway's error detail.
func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Price float64 `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Price < 0 {
		writeMessage(w, http.StatusBadRequest, "price must be non-negative")
		return
	}

	secret, err := h.workflow.CreateIntent(r.Context(), req.Price)
	if err != nil {
		var gerr *gateway.Error
		if errors.As(err, &gerr) {
			writeMessage(w, http.StatusBadGateway, fmt.Sprintf("payment gateway error (%d): %s", gerr.Status, gerr.Message))
			return
		}
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"clientSecret": secret})
}

// Record commits a completed payment and removes the cart entries it covers.
func (h *PaymentHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email         string   `json:"email"`
		Price         float64  `json:"price"`
		TransactionID string   `json:"transactionId"`
		CardIDs       []string `json:"cardIds"`
		MenuIDs       []string `json:"menuId"`
		Date          string   `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cartIDs, err := toObjectIDs(req.CardIDs)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid cart id format")
		return
	}
	menuIDs, err := toObjectIDs(req.MenuIDs)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid menu id format")
		return
	}

	payment := &models.Payment{
		Email:         req.Email,
		Price:         req.Price,
		TransactionID: req.TransactionID,
		CartIDs:       cartIDs,
		MenuIDs:       menuIDs,
	}
	if req.Date != "" {
		if date, perr := time.Parse(time.RFC3339, req.Date); perr == nil {
			payment.Date = date
		}
	}

	receipt, err := h.workflow.Record(r.Context(), payment)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"paymentResult": insertAck(receipt.PaymentResult),
		"deleteResult":  deleteAck(receipt.DeleteResult),
	})
}

// History returns the payment ledger for the path email. Callers may only
// read their own history, whatever their role.
func (h *PaymentHandler) History(w http.ResponseWriter, r *http.Request) {
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

	payments, err := h.workflow.HistoryByEmail(r.Context(), email)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to fetch payment history")
		return
	}
	if payments == nil {
		payments = []models.Payment{}
	}
	writeJSON(w, http.StatusOK, payments)
}

func toObjectIDs(hexIDs []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(hexIDs))
	for _, raw := range hexIDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
