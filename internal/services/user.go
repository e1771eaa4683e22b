package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bistroboss/bistro-gobackend/internal/auth"
	"github.com/bistroboss/bistro-gobackend/internal/models"
)

type UserService struct {
	collection *mongo.Collection
}

func NewUserService(database *mongo.Database) *UserService {
	return &UserService{collection: database.Collection("users")}
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cur, err := s.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %v", err)
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %v", err)
	}

	return users, nil
}

// FindByEmail returns nil without an error when no account exists.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	if err := s.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch user: %v", err)
	}

	return &user, nil
}

// Ensure inserts the account on first login. When one already exists for the
// email nothing is written and a nil result is returned, which the handler
// reports as insertedId null.
func (s *UserService) Ensure(ctx context.Context, user *models.User) (*mongo.InsertOneResult, error) {
	existing, err := s.FindByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	user.ID = primitive.NewObjectID()
	if user.Role == "" {
		user.Role = auth.RoleMember
	}
	result, err := s.collection.InsertOne(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %v", err)
	}

	return result, nil
}

// PromoteToAdmin is the only role mutation exposed; there is no demotion.
func (s *UserService) PromoteToAdmin(ctx context.Context, id string) (*mongo.UpdateResult, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user id format: %v", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": objID},
		bson.M{"$set": bson.M{"role": auth.RoleAdmin}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update user role: %v", err)
	}

	return result, nil
}

func (s *UserService) Delete(ctx context.Context, id string) (*mongo.DeleteResult, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user id format: %v", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return nil, fmt.Errorf("failed to delete user: %v", err)
	}

	return result, nil
}

// Role satisfies the authorization guard's directory lookup. Unknown emails
// resolve to Member so absent accounts never gain access.
func (s *UserService) Role(ctx context.Context, email string) (auth.Role, error) {
	user, err := s.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return auth.RoleMember, nil
	}
	return user.Role, nil
}
