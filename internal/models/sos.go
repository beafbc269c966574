package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type GeoPoint struct {
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
}

// SOSAlert is immutable after creation except for admin deletion.
type SOSAlert struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"user_id" bson:"user_id"`
	Location  GeoPoint           `json:"location" bson:"location"`
	Timestamp time.Time          `json:"timestamp" bson:"timestamp"`

	// User is resolved from the users collection when alerts are
	// listed or broadcast. Never persisted.
	User *UserInfo `json:"user,omitempty" bson:"-"`
}
