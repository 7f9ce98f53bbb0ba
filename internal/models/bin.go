package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bin statuses. Critical is set once the fill level crosses the overflow
// threshold and is only cleared by an explicit empty operation.
const (
	BinStatusNormal   = "Normal"
	BinStatusCritical = "Critical"
)

type Bin struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Code        string             `bson:"code" json:"code" validate:"required"`
	Location    Location           `bson:"location" json:"location"`
	FillLevel   int                `bson:"fill_level" json:"fillLevel"`
	Status      string             `bson:"status" json:"status"`
	LastEmptied time.Time          `bson:"last_emptied" json:"lastEmptied"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}
