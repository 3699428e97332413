// models/user.go
package models

import "time"

// User represents a patient account.
type User struct {
	ID               string    `bson:"id" json:"id"`
	Name             string    `bson:"name" json:"name"`
	Email            string    `bson:"email" json:"email"`
	PhoneNumber      string    `bson:"phone_number" json:"phoneNumber"`
	Password         string    `bson:"-" json:"password,omitempty"` // plaintext, request-only
	PasswordHash     string    `bson:"password_hash" json:"-"`
	TokenHash        string    `bson:"token_hash,omitempty" json:"-"`
	RefreshTokenHash string    `bson:"refresh_token_hash,omitempty" json:"-"`
	CreatedAt        time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time `bson:"updated_at" json:"updatedAt"`
}

// UserUpdateRequest is the patch payload for profile updates. The ID is
// filled from the authenticated context, never from the payload.
type UserUpdateRequest struct {
	ID          string `json:"-"`
	Name        string `json:"name,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}
