package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// AdminSummary is the admin dashboard headline numbers.
type AdminSummary struct {
	TotalUser  int64   `json:"totalUser"`
	TotalMenu  int64   `json:"totalMenu"`
	TotalOrder int64   `json:"totalOrder"`
	Revenue    float64 `json:"revenue"`
}

// CategoryStat is one row of the per-category breakdown.
type CategoryStat struct {
	Category string  `bson:"category" json:"category"`
	Quantity int64   `bson:"quantity" json:"quantity"`
	Revenue  float64 `bson:"revenue" json:"revenue"`
}

type StatsService struct {
	users    *mongo.Collection
	menu     *mongo.Collection
	payments *mongo.Collection
}

func NewStatsService(database *mongo.Database) *StatsService {
	return &StatsService{
		users:    database.Collection("users"),
		menu:     database.Collection("menu"),
		payments: database.Collection("payments"),
	}
}

// Summary counts users, menu items and payments independently and sums
// payment prices. Revenue is 0 when no payments exist.
func (s *StatsService) Summary(ctx context.Context) (*AdminSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	totalUser, err := s.users.EstimatedDocumentCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %v", err)
	}
	totalMenu, err := s.menu.EstimatedDocumentCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count menu items: %v", err)
	}
	totalOrder, err := s.payments.EstimatedDocumentCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count payments: %v", err)
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalAmount", Value: bson.D{{Key: "$sum", Value: "$price"}}},
		}}},
	}
	cur, err := s.payments.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %v", err)
	}
	defer cur.Close(ctx)

	var totals []struct {
		TotalAmount float64 `bson:"totalAmount"`
	}
	if err := cur.All(ctx, &totals); err != nil {
		return nil, fmt.Errorf("failed to decode revenue: %v", err)
	}

	summary := &AdminSummary{
		TotalUser:  totalUser,
		TotalMenu:  totalMenu,
		TotalOrder: totalOrder,
	}
	if len(totals) > 0 {
		summary.Revenue = totals[0].TotalAmount
	}

	return summary, nil
}

// OrderStats expands each payment's menu-id list, joins the catalog and
// groups by category. Revenue comes from the catalog's current price via
// the join, not the price recorded on the payment, so the two diverge when
// prices change after a sale.
func (s *StatsService) OrderStats(ctx context.Context) ([]CategoryStat, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$unwind", Value: "$menuId"}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "menu"},
			{Key: "localField", Value: "menuId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "menuItems"},
		}}},
		bson.D{{Key: "$unwind", Value: "$menuItems"}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$menuItems.category"},
			{Key: "quantity", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$menuItems.price"}}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "category", Value: "$_id"},
			{Key: "quantity", Value: "$quantity"},
			{Key: "revenue", Value: "$revenue"},
		}}},
	}

	cur, err := s.payments.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate order stats: %v", err)
	}
	defer cur.Close(ctx)

	var stats []CategoryStat
	if err := cur.All(ctx, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode order stats: %v", err)
	}

	return stats, nil
}
