package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bistroboss/bistro-gobackend/internal/models"
)

type CartService struct {
	collection *mongo.Collection
}

func NewCartService(database *mongo.Database) *CartService {
	return &CartService{collection: database.Collection("carts")}
}

func (s *CartService) ListByEmail(ctx context.Context, email string) ([]models.CartEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cur, err := s.collection.Find(ctx, bson.M{"userEmail": email})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cart: %v", err)
	}
	defer cur.Close(ctx)

	var entries []models.CartEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %v", err)
	}

	return entries, nil
}

func (s *CartService) Add(ctx context.Context, entry *models.CartEntry) (*mongo.InsertOneResult, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	entry.ID = primitive.NewObjectID()
	result, err := s.collection.InsertOne(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to add cart entry: %v", err)
	}

	return result, nil
}

// Delete removes a cart entry by id regardless of owner. Reads are scoped
// by email, deletes are not.
func (s *CartService) Delete(ctx context.Context, id string) (*mongo.DeleteResult, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid cart id format: %v", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return nil, fmt.Errorf("failed to delete cart entry: %v", err)
	}

	return result, nil
}
