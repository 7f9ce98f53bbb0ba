package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Alert is a city-wide broadcast banner, active until it expires or is
// deactivated.
type Alert struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title" validate:"required"`
	Message   string             `bson:"message" json:"message" validate:"required"`
	Type      string             `bson:"type" json:"type" validate:"omitempty,oneof=Info Warning Critical Success"`
	CreatedBy primitive.ObjectID `bson:"created_by" json:"createdBy"`
	IsActive  bool               `bson:"is_active" json:"isActive"`
	ExpiresAt time.Time          `bson:"expires_at" json:"expiresAt"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Message is a single entry in a complaint's discussion thread.
type Message struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ComplaintID primitive.ObjectID `bson:"complaint_id" json:"complaintId"`
	SenderID    primitive.ObjectID `bson:"sender_id" json:"senderId"`
	SenderName  string             `bson:"sender_name" json:"senderName"`
	SenderRole  string             `bson:"sender_role" json:"senderRole"`
	Content     string             `bson:"content" json:"content" validate:"required"`
	IsRead      bool               `bson:"is_read" json:"isRead"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
}
