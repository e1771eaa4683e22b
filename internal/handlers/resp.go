package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// Driver acknowledgments are surfaced to clients with the wire field names
// the frontend expects.

func insertAck(res *mongo.InsertOneResult) map[string]any {
	var id any = res.InsertedID
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		id = oid.Hex()
	}
	return map[string]any{"insertedId": id}
}

func updateAck(res *mongo.UpdateResult) map[string]any {
	ack := map[string]any{
		"matchedCount":  res.MatchedCount,
		"modifiedCount": res.ModifiedCount,
	}
	if res.UpsertedID != nil {
		if oid, ok := res.UpsertedID.(primitive.ObjectID); ok {
			ack["upsertedId"] = oid.Hex()
		} else {
			ack["upsertedId"] = res.UpsertedID
		}
	}
	return ack
}

func deleteAck(res *mongo.DeleteResult) map[string]any {
	return map[string]any{"deletedCount": res.DeletedCount}
}
