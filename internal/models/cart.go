package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartEntry is a pending line item owned by UserEmail. Entries are removed
// individually by delete, or in bulk once a payment covering them is recorded.
type CartEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserEmail string             `bson:"userEmail" json:"userEmail"`
	MenuID    string             `bson:"menuId" json:"menuId"`
	Name      string             `bson:"name" json:"name"`
	Price     float64            `bson:"price" json:"price"`
}
