package models

import "time"

// UserBasicRegistrationData carries the fields collected at sign-up.
type UserBasicRegistrationData struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

// UserRegistrationSession tracks a sign-up between OTP initiation and
// finalization. Stored in Redis under a temp ID, never in MongoDB.
type UserRegistrationSession struct {
	TempID        string                     `json:"tempId"`
	BasicData     *UserBasicRegistrationData `json:"basicData"`
	OTPStatus     string                     `json:"otpStatus"` // "pending" or "verified"
	CreatedAt     time.Time                  `json:"createdAt"`
	LastUpdatedAt time.Time                  `json:"lastUpdatedAt"`
}
