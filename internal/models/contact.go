package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContactStatus is the closed set of pipeline states for a contact.
type ContactStatus string

const (
	StatusFuture   ContactStatus = "future"
	StatusRejected ContactStatus = "rejected"
	StatusLead     ContactStatus = "lead"
)

// ValidStatus reports whether value names a known contact status.
func ValidStatus(value string) bool {
	switch ContactStatus(value) {
	case StatusFuture, StatusRejected, StatusLead:
		return true
	default:
		return false
	}
}

// Contact is a lead record owned by exactly one user. UserID is set at
// creation and never changed by any update path.
type Contact struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	Name         string             `bson:"name" json:"name"`
	Phone        string             `bson:"phone" json:"phone"`
	Remark       string             `bson:"remark" json:"remark"`
	Status       ContactStatus      `bson:"status" json:"status"`
	FollowUpDate *time.Time         `bson:"followUpDate" json:"followUpDate"`
	Called       bool               `bson:"called" json:"called"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
