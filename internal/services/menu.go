package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bistroboss/bistro-gobackend/internal/models"
)

type MenuService struct {
	collection *mongo.Collection
}

func NewMenuService(database *mongo.Database) *MenuService {
	return &MenuService{collection: database.Collection("menu")}
}

func (s *MenuService) List(ctx context.Context) ([]models.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cur, err := s.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch menu: %v", err)
	}
	defer cur.Close(ctx)

	var items []models.MenuItem
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode menu: %v", err)
	}

	return items, nil
}

// Get returns nil without an error when no item matches; the handler
// serializes that as a null body.
func (s *MenuService) Get(ctx context.Context, id string) (*models.MenuItem, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid menu id format: %v", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var item models.MenuItem
	if err := s.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&item); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch menu item: %v", err)
	}

	return &item, nil
}

func (s *MenuService) Create(ctx context.Context, item *models.MenuItem) (*mongo.InsertOneResult, error) {
	if item.Price < 0 {
		return nil, fmt.Errorf("price must be non-negative")
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	item.ID = primitive.NewObjectID()
	result, err := s.collection.InsertOne(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("failed to create menu item: %v", err)
	}

	return result, nil
}

// Update applies the given fields with upsert semantics: when no document
// matches, a new one is created from the id plus the fields.
func (s *MenuService) Update(ctx context.Context, id string, fields bson.M) (*mongo.UpdateResult, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid menu id format: %v", err)
	}
	if price, ok := fields["price"].(float64); ok && price < 0 {
		return nil, fmt.Errorf("price must be non-negative")
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": objID},
		bson.M{"$set": fields},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update menu item: %v", err)
	}

	return result, nil
}

func (s *MenuService) Delete(ctx context.Context, id string) (*mongo.DeleteResult, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid menu id format: %v", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return nil, fmt.Errorf("failed to delete menu item: %v", err)
	}

	return result, nil
}
