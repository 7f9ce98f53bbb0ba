package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ToiletOperational = "Operational"
	ToiletMaintenance = "Maintenance"
	ToiletClosed      = "Closed"
)

type Toilet struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name" validate:"required"`
	Address       string             `bson:"address" json:"address" validate:"required"`
	Location      Location           `bson:"location" json:"location"`
	Facilities    []string           `bson:"facilities" json:"facilities"`
	AverageRating float64            `bson:"average_rating" json:"averageRating"`
	NumReviews    int                `bson:"num_reviews" json:"numReviews"`
	Status        string             `bson:"status" json:"status" validate:"omitempty,oneof=Operational Maintenance Closed"`
	AddedBy       primitive.ObjectID `bson:"added_by" json:"addedBy"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`
}

type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	ToiletID  primitive.ObjectID `bson:"toilet_id" json:"toiletId"`
	Rating    int                `bson:"rating" json:"rating" validate:"required,min=1,max=5"`
	Comment   string             `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}
