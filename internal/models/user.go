package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name" validate:"required"`
	Email      string             `bson:"email" json:"email" validate:"required,email"`
	Phone      string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Password   string             `bson:"password" json:"-"`
	Role       string             `bson:"role" json:"role" validate:"required,oneof=citizen official admin"`
	Department string             `bson:"department" json:"department" validate:"omitempty,oneof=Health Sanitation Infrastructure Traffic Water None"`
	Points     int                `bson:"points" json:"points"`
	Badges     []string           `bson:"badges" json:"badges"`
	LastLogin  *time.Time         `bson:"last_login,omitempty" json:"lastLogin,omitempty"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updatedAt"`
}

// AuthUser is the user shape returned to clients after authentication.
type AuthUser struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department"`
	Points     int    `json:"points"`
}

// Actor identifies the requesting user when routing complaint queues.
type Actor struct {
	ID         string
	Role       string
	Department string
}
