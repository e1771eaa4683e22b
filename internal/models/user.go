package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bistroboss/bistro-gobackend/internal/auth"
)

// User is an account document. Email is unique and never changes after
// creation; the only permitted mutation is the role promotion to Admin.
type User struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name  string             `bson:"name,omitempty" json:"name,omitempty"`
	Email string             `bson:"email" json:"email"`
	Role  auth.Role          `bson:"role" json:"role"`
}
