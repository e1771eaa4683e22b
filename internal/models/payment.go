package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment is an append-only ledger entry. CartIDs are the cart entries the
// payment covered at creation time; MenuIDs keep the purchased catalog ids
// for the category aggregation.
type Payment struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Email         string               `bson:"email" json:"email"`
	Price         float64              `bson:"price" json:"price"`
	TransactionID string               `bson:"transactionId" json:"transactionId"`
	CartIDs       []primitive.ObjectID `bson:"cartIds" json:"cartIds"`
	MenuIDs       []primitive.ObjectID `bson:"menuId" json:"menuId"`
	Date          time.Time            `bson:"date" json:"date"`
}
