package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bistroboss/bistro-gobackend/internal/models"
)

// IntentCreator is the payment-gateway contract the workflow depends on.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amountMinor int64) (string, error)
}

// ReceiptResult bundles the two driver acknowledgments of the commit phase.
type ReceiptResult struct {
	PaymentResult *mongo.InsertOneResult
	DeleteResult  *mongo.DeleteResult
}

type PaymentService struct {
	payments *mongo.Collection
	carts    *mongo.Collection
	gateway  IntentCreator
}

func NewPaymentService(database *mongo.Database, gateway IntentCreator) *PaymentService {
	return &PaymentService{
		payments: database.Collection("payments"),
		carts:    database.Collection("carts"),
		gateway:  gateway,
	}
}

// minorUnits converts a major-unit price to gateway minor units (cents).
func minorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// CreateIntent is the intent phase: it asks the gateway for an intent and
// returns the client secret. No local state is written.
func (s *PaymentService) CreateIntent(ctx context.Context, price float64) (string, error) {
	return s.gateway.CreateIntent(ctx, minorUnits(price))
}

// Record is the commit phase: insert the payment, then delete the covered
// cart entries. The two driver calls are independent; when the delete fails
// after the insert succeeded the payment stays recorded and the startup
// sweep removes the orphaned entries.
func (s *PaymentService) Record(ctx context.Context, payment *models.Payment) (*ReceiptResult, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	payment.ID = primitive.NewObjectID()
	if payment.Date.IsZero() {
		payment.Date = time.Now()
	}

	insertResult, err := s.payments.InsertOne(ctx, payment)
	if err != nil {
		return nil, fmt.Errorf("failed to record payment: %v", err)
	}

	deleteResult, err := s.carts.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": payment.CartIDs}})
	if err != nil {
		log.Printf("payment %s recorded but cart cleanup failed: %v", payment.ID.Hex(), err)
		return nil, fmt.Errorf("payment recorded but cart cleanup failed: %v", err)
	}

	return &ReceiptResult{PaymentResult: insertResult, DeleteResult: deleteResult}, nil
}

func (s *PaymentService) HistoryByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cur, err := s.payments.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment history: %v", err)
	}
	defer cur.Close(ctx)

	var payments []models.Payment
	if err := cur.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("failed to decode payment history: %v", err)
	}

	return payments, nil
}

// ReapPaidCartEntries deletes cart entries still present even though a
// recorded payment already covers them. Run at startup, it bounds the
// consistency gap left by the non-atomic commit phase.
func (s *PaymentService) ReapPaidCartEntries(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	ids, err := s.payments.Distinct(ctx, "cartIds", bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to collect paid cart ids: %v", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	result, err := s.carts.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, fmt.Errorf("failed to reap paid cart entries: %v", err)
	}

	return result.DeletedCount, nil
}
