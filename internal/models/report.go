package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReportStatus string

const (
	StatusSubmitted     ReportStatus = "Submitted"
	StatusInReview      ReportStatus = "In Review"
	StatusAssigned      ReportStatus = "Assigned"
	StatusInCounselling ReportStatus = "In Counselling"
	StatusResolved      ReportStatus = "Resolved"
)

// Valid reports whether s is one of the five canonical lifecycle states.
// Any write outside this set is rejected before it reaches the store.
func (s ReportStatus) Valid() bool {
	switch s {
	case StatusSubmitted, StatusInReview, StatusAssigned, StatusInCounselling, StatusResolved:
		return true
	}
	return false
}

const (
	DefaultReportTitle    = "Untitled"
	DefaultReportLocation = "Not specified"
	DefaultCounselorName  = "Not Yet Assigned"
)

type Report struct {
	ID                  primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	SubmittedBy         primitive.ObjectID  `json:"submitted_by" bson:"submitted_by"`
	Title               string              `json:"title" bson:"title"`
	Description         string              `json:"description" bson:"description" validate:"required"`
	Location            string              `json:"location" bson:"location"`
	DateOfIncident      time.Time           `json:"date_of_incident" bson:"date_of_incident" validate:"required"`
	Type                string              `json:"type" bson:"type" validate:"required"`
	OtherType           string              `json:"other_type,omitempty" bson:"other_type,omitempty"`
	IsAnonymous         bool                `json:"is_anonymous" bson:"is_anonymous"`
	Status              ReportStatus        `json:"status" bson:"status"`
	AssignedCounselor   string              `json:"assigned_counselor" bson:"assigned_counselor"`
	AssignedCounselorID *primitive.ObjectID `json:"assigned_counselor_id,omitempty" bson:"assigned_counselor_id,omitempty"`
	CreatedAt           time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at" bson:"updated_at"`

	// Submitter is resolved from the users collection for admin and
	// counsellor listings. Never persisted.
	Submitter *UserInfo `json:"submitter,omitempty" bson:"-"`
}
