package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type QueryStatus string

const (
	QueryStatusOpen     QueryStatus = "Open"
	QueryStatusAnswered QueryStatus = "Answered"
)

// Query is an inbound contact or mentorship message from the public
// contact form. Only admins mutate it, by replying or deleting.
type Query struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name" validate:"required"`
	Email     string             `json:"email" bson:"email" validate:"required,email"`
	Message   string             `json:"message" bson:"message" validate:"required"`
	Type      string             `json:"type" bson:"type" validate:"required"`
	Status    QueryStatus        `json:"status" bson:"status"`
	Answer    string             `json:"answer,omitempty" bson:"answer,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}
