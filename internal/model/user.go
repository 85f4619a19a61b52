// Package model defines database documents
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const RoleUser = "user"

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email    string             `bson:"email" json:"email"`
	Username string             `bson:"username" json:"username"`

	// Empty only for accounts provisioned through an external
	// identity provider
	PasswordHash string `bson:"password_hash,omitempty" json:"-"`

	// Name of the external provider the account came from, if any
	Provider string `bson:"provider,omitempty" json:"-"`

	ImageURL        string    `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	Role            string    `bson:"role" json:"role"`
	ProfileComplete bool      `bson:"profile_complete" json:"profileComplete"`
	CreatedAt       time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updatedAt"`
}
