package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MenuItem is a catalog entry. Price is in major currency units and must
// be non-negative.
type MenuItem struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Category string             `bson:"category" json:"category"`
	Price    float64            `bson:"price" json:"price"`
	Image    string             `bson:"image" json:"image"`
	Recipe   string             `bson:"recipe" json:"recipe"`
}
