package handlers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bistroboss/bistro-gobackend/internal/auth"
	"github.com/bistroboss/bistro-gobackend/internal/models"
	"github.com/bistroboss/bistro-gobackend/internal/services"
)

// Function-field mocks for the handler-side contracts.

type mockMenuStore struct {
	ListFunc   func(ctx context.Context) ([]models.MenuItem, error)
	GetFunc    func(ctx context.Context, id string) (*models.MenuItem, error)
	CreateFunc func(ctx context.Context, item *models.MenuItem) (*mongo.InsertOneResult, error)
	UpdateFunc func(ctx context.Context, id string, fields bson.M) (*mongo.UpdateResult, error)
	DeleteFunc func(ctx context.Context, id string) (*mongo.DeleteResult, error)
}

func (m *mockMenuStore) List(ctx context.Context) ([]models.MenuItem, error) {
	return m.ListFunc(ctx)
}

func (m *mockMenuStore) Get(ctx context.Context, id string) (*models.MenuItem, error) {
	return m.GetFunc(ctx, id)
}

func (m *mockMenuStore) Create(ctx context.Context, item *models.MenuItem) (*mongo.InsertOneResult, error) {
	return m.CreateFunc(ctx, item)
}

func (m *mockMenuStore) Update(ctx context.Context, id string, fields bson.M) (*mongo.UpdateResult, error) {
	return m.UpdateFunc(ctx, id, fields)
}

func (m *mockMenuStore) Delete(ctx context.Context, id string) (*mongo.DeleteResult, error) {
	return m.DeleteFunc(ctx, id)
}

type mockUserDirectory struct {
	ListFunc        func(ctx context.Context) ([]models.User, error)
	FindByEmailFunc func(ctx context.Context, email string) (*models.User, error)
	EnsureFunc      func(ctx context.Context, user *models.User) (*mongo.InsertOneResult, error)
	PromoteFunc     func(ctx context.Context, id string) (*mongo.UpdateResult, error)
	DeleteFunc      func(ctx context.Context, id string) (*mongo.DeleteResult, error)
}

func (m *mockUserDirectory) List(ctx context.Context) ([]models.User, error) {
	return m.ListFunc(ctx)
}

func (m *mockUserDirectory) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.FindByEmailFunc(ctx, email)
}

func (m *mockUserDirectory) Ensure(ctx context.Context, user *models.User) (*mongo.InsertOneResult, error) {
	return m.EnsureFunc(ctx, user)
}

func (m *mockUserDirectory) PromoteToAdmin(ctx context.Context, id string) (*mongo.UpdateResult, error) {
	return m.PromoteFunc(ctx, id)
}

func (m *mockUserDirectory) Delete(ctx context.Context, id string) (*mongo.DeleteResult, error) {
	return m.DeleteFunc(ctx, id)
}

type mockWorkflow struct {
	CreateIntentFunc   func(ctx context.Context, price float64) (string, error)
	RecordFunc         func(ctx context.Context, payment *models.Payment) (*services.ReceiptResult, error)
	HistoryByEmailFunc func(ctx context.Context, email string) ([]models.Payment, error)
}

func (m *mockWorkflow) CreateIntent(ctx context.Context, price float64) (string, error) {
	return m.CreateIntentFunc(ctx, price)
}

func (m *mockWorkflow) Record(ctx context.Context, payment *models.Payment) (*services.ReceiptResult, error) {
	return m.RecordFunc(ctx, payment)
}

func (m *mockWorkflow) HistoryByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	return m.HistoryByEmailFunc(ctx, email)
}

type mockStats struct {
	SummaryFunc    func(ctx context.Context) (*services.AdminSummary, error)
	OrderStatsFunc func(ctx context.Context) ([]services.CategoryStat, error)
}

func (m *mockStats) Summary(ctx context.Context) (*services.AdminSummary, error) {
	return m.SummaryFunc(ctx)
}

func (m *mockStats) OrderStats(ctx context.Context) ([]services.CategoryStat, error) {
	return m.OrderStatsFunc(ctx)
}

// staticVerifier satisfies middleware.TokenVerifier: any non-empty token
// resolves to the configured email.
type staticVerifier struct {
	email string
}

func (v *staticVerifier) Verify(raw string) (*auth.Claims, error) {
	if raw == "" {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Claims{Email: v.email}, nil
}

func newInsertResult() *mongo.InsertOneResult {
	return &mongo.InsertOneResult{InsertedID: primitive.NewObjectID()}
}
