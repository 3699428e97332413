package user

import (
	userRepo "clinio/database/repository/user"
	"clinio/models"
)

type UserService interface {
	// Registration
	InitiateRegistration(basicData models.UserBasicRegistrationData) (string, int, error)
	VerifyRegistrationOTP(sessionID string, providedOTP string) (int, error)
	FinalizeRegistration(sessionID string) (*AuthResponse, error)

	// Authentication
	AuthenticateUser(email, password string) (*AuthResponse, error)
	RefreshTokenPair(refreshToken string) (*AuthResponse, error)
	ResetPassword(email, providedOTP, newPassword, providedSessionID string) error

	// User Management
	GetUserByID(userID string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(req models.UserUpdateRequest) (*models.User, error)
	DeleteUser(userID string) error
	RevokeUserAuthToken(userID string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}

// NewPasswordRequiredError indicates that a new password is required after OTP verification.
type NewPasswordRequiredError struct {
	SessionID string
}

// AuthResponse contains the user's ID, token pair, and additional details.
type AuthResponse struct {
	ID           string `json:"id"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	Name         string `json:"name,omitempty"`
	Email        string `json:"email,omitempty"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
}
