package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bistroboss/bistro-gobackend/internal/gateway"
	"github.com/bistroboss/bistro-gobackend/internal/middleware"
	"github.com/bistroboss/bistro-gobackend/internal/models"
	"github.com/bistroboss/bistro-gobackend/internal/services"
)

func TestCreateIntent(t *testing.T) {
	var gotPrice float64
	workflow := &mockWorkflow{CreateIntentFunc: func(ctx context.Context, price float64) (string, error) {
		gotPrice = price
		return "pi_1_secret_x", nil
	}}
	h := NewPaymentHandler(workflow)

	req := httptest.NewRequest(http.MethodPost, "/create-payment-intent", bytes.NewBufferString(`{"price":12.5}`))
	w := httptest.NewRecorder()
	h.CreateIntent(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if gotPrice != 12.5 {
		t.Errorf("price = %v, want 12.5", gotPrice)
	}
	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if resp["clientSecret"] != "pi_1_secret_x" {
		t.Errorf("clientSecret = %q", resp["clientSecret"])
	}
}

func TestCreateIntentGatewayFailure(t *testing.T) {
	workflow := &mockWorkflow{CreateIntentFunc: func(ctx context.Context, price float64) (string, error) {
		return "", &gateway.Error{Status: 400, Message: "Amount must be at least 50 cents"}
	}}
	h := NewPaymentHandler(workflow)

	req := httptest.NewRequest(http.MethodPost, "/create-payment-intent", bytes.NewBufferString(`{"price":0.01}`))
	w := httptest.NewRecorder()
	h.CreateIntent(w, req)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Amount must be at least 50 cents") {
		t.Errorf("body = %q, want gateway detail propagated", w.Body.String())
	}
}

func TestRecordPayment(t *testing.T) {
	var recorded *models.Payment
	workflow := &mockWorkflow{RecordFunc: func(ctx context.Context, payment *models.Payment) (*services.ReceiptResult, error) {
		recorded = payment
		return &services.ReceiptResult{
			PaymentResult: newInsertResult(),
			DeleteResult:  &mongo.DeleteResult{DeletedCount: int64(len(payment.CartIDs))},
		}, nil
	}}
	h := NewPaymentHandler(workflow)

	body := `{
		"email": "ada@example.com",
		"price": 19.75,
		"transactionId": "pi_1",
		"cardIds": ["656f00000000000000000001", "656f00000000000000000002"],
		"menuId": ["656f00000000000000000003"]
	}`
	req := httptest.NewRequest(http.MethodPost, "/payment", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	h.Record(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if recorded == nil || len(recorded.CartIDs) != 2 || len(recorded.MenuIDs) != 1 {
		t.Fatalf("recorded = %+v", recorded)
	}
	if recorded.Email != "ada@example.com" || recorded.Price != 19.75 {
		t.Errorf("recorded = %+v", recorded)
	}

	var resp struct {
		PaymentResult map[string]any `json:"paymentResult"`
		DeleteResult  map[string]any `json:"deleteResult"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if id, ok := resp.PaymentResult["insertedId"].(string); !ok || id == "" {
		t.Errorf("paymentResult = %v", resp.PaymentResult)
	}
	if resp.DeleteResult["deletedCount"] != float64(2) {
		t.Errorf("deleteResult = %v", resp.DeleteResult)
	}
}

func TestRecordPaymentBadCartID(t *testing.T) {
	workflow := &mockWorkflow{RecordFunc: func(ctx context.Context, payment *models.Payment) (*services.ReceiptResult, error) {
		t.Fatal("Record should not run with a malformed id")
		return nil, nil
	}}
	h := NewPaymentHandler(workflow)

	req := httptest.NewRequest(http.MethodPost, "/payment", bytes.NewBufferString(`{"cardIds":["not-hex"]}`))
	w := httptest.NewRecorder()
	h.Record(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

// Payment history is identity-scoped: a valid token for a different email
// never sees another user's records.
func TestHistorySelfOnly(t *testing.T) {
	workflow := &mockWorkflow{HistoryByEmailFunc: func(ctx context.Context, email string) ([]models.Payment, error) {
		return []models.Payment{{Email: email, Price: 19.75}}, nil
	}}
	router := mux.NewRouter()
	router.Handle("/payment-history/{email}",
		middleware.Authenticate(&staticVerifier{email: "ada@example.com"})(
			http.HandlerFunc(NewPaymentHandler(workflow).History))).Methods("GET")

	req := httptest.NewRequest(http.MethodGet, "/payment-history/other@example.com", nil)
	req.Header.Set("Authorization", "Bearer t")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("cross-user status = %d, want 403", w.Code)
	}
	if strings.Contains(w.Body.String(), "19.75") {
		t.Error("foreign records leaked in a forbidden response")
	}

	req = httptest.NewRequest(http.MethodGet, "/payment-history/ada@example.com", nil)
	req.Header.Set("Authorization", "Bearer t")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("self status = %d, want 200", w.Code)
	}
	var payments []models.Payment
	if err := json.NewDecoder(w.Body).Decode(&payments); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(payments) != 1 || payments[0].Email != "ada@example.com" {
		t.Errorf("payments = %+v", payments)
	}
}
