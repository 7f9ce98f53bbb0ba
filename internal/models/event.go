package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Event struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title       string               `bson:"title" json:"title" validate:"required"`
	Description string               `bson:"description" json:"description" validate:"required"`
	Type        string               `bson:"type" json:"type" validate:"omitempty,oneof='Cleanup Drive' 'Health Camp' 'Water Cut' Awareness Other"`
	Date        time.Time            `bson:"date" json:"date" validate:"required"`
	Location    string               `bson:"location" json:"location" validate:"required"`
	CreatedBy   primitive.ObjectID   `bson:"created_by" json:"createdBy"`
	Attendees   []primitive.ObjectID `bson:"attendees" json:"attendees"`
	CreatedAt   time.Time            `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updated_at" json:"updatedAt"`
}
