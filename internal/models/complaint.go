package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Complaint statuses. Typical progression is Pending -> In Progress ->
// Resolved/Rejected; records are never deleted.
const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusResolved   = "Resolved"
	StatusRejected   = "Rejected"
)

// Severity levels in ascending urgency. The triage classifier only emits
// Low/Medium/High; Critical is reserved for sensor-filed complaints.
const (
	SeverityLow      = "Low"
	SeverityMedium   = "Medium"
	SeverityHigh     = "High"
	SeverityCritical = "Critical"
)

type Complaint struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title" validate:"required"`
	Description string             `bson:"description" json:"description" validate:"required"`
	Category    string             `bson:"category" json:"category" validate:"required"`
	Severity    string             `bson:"severity" json:"severity" validate:"required,oneof=Low Medium High Critical"`
	Location    Location           `bson:"location" json:"location"`
	MediaURL    string             `bson:"media_url,omitempty" json:"mediaUrl,omitempty"`
	Status      string             `bson:"status" json:"status"`
	AssignedTo  primitive.ObjectID `bson:"assigned_to,omitempty" json:"assignedTo,omitempty"`
	CreatedBy   primitive.ObjectID `bson:"created_by" json:"createdBy"`

	ResolutionNote  string     `bson:"resolution_note,omitempty" json:"resolutionNote,omitempty"`
	ResolutionImage string     `bson:"resolution_image,omitempty" json:"resolutionImage,omitempty"`
	ResolutionDate  *time.Time `bson:"resolution_date,omitempty" json:"resolutionDate,omitempty"`

	VehicleNumber string     `bson:"vehicle_number,omitempty" json:"vehicleNumber,omitempty"`
	DriverName    string     `bson:"driver_name,omitempty" json:"driverName,omitempty"`
	DispatchTime  *time.Time `bson:"dispatch_time,omitempty" json:"dispatchTime,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

type Location struct {
	Lat     float64 `bson:"lat" json:"lat"`
	Lng     float64 `bson:"lng" json:"lng"`
	Address string  `bson:"address" json:"address"`
}
