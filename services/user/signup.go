package user

import (
	"fmt"
	"time"

	"clinio/models"
	"clinio/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// InitiateRegistration validates basic data, checks for duplicates, creates a
// registration session, initiates OTP, and returns the session ID with code
// 100 (OTP pending). No account document exists until finalization.
func (s *DefaultUserService) InitiateRegistration(basicReq models.UserBasicRegistrationData) (string, int, error) {
	if basicReq.Email == "" || basicReq.Password == "" || basicReq.Name == "" || basicReq.PhoneNumber == "" {
		return "", 0, fmt.Errorf("all fields are required")
	}

	if err := VerifyPasswordComplexity(basicReq.Password); err != nil {
		return "", 0, err
	}

	existing, err := s.Repo.GetByEmailWithProjection(basicReq.Email, bson.M{"id": 1})
	if err != nil {
		utils.GetLogger().Error("InitiateRegistration: failed to check for existing user", zap.Error(err))
		return "", 0, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return "", 0, fmt.Errorf("a user with this email already exists")
	}

	sessionClient := utils.GetAuthCacheClient()
	sessionID := uuid.New().String()

	regSession := models.UserRegistrationSession{
		TempID: sessionID,
		BasicData: &models.UserBasicRegistrationData{
			Name:        basicReq.Name,
			Email:       basicReq.Email,
			Password:    basicReq.Password,
			PhoneNumber: basicReq.PhoneNumber,
		},
		OTPStatus:     "pending",
		CreatedAt:     time.Now(),
		LastUpdatedAt: time.Now(),
	}

	if err := utils.InitiateOTP(basicReq.Email, "register", basicReq.PhoneNumber); err != nil {
		return "", 0, fmt.Errorf("failed to initiate OTP: %w", err)
	}

	if err := SaveUserRegistrationSession(sessionClient, sessionID, regSession, utils.RegistrationSessionTTL); err != nil {
		return "", 0, fmt.Errorf("failed to save registration session: %w", err)
	}

	// Return sessionID with code 100 (OTP pending).
	return sessionID, 100, nil
}

// VerifyRegistrationOTP retrieves the session, verifies the OTP, updates the
// session to "verified", and returns code 101 (OTP verified).
func (s *DefaultUserService) VerifyRegistrationOTP(sessionID string, providedOTP string) (int, error) {
	sessionClient := utils.GetAuthCacheClient()
	regSession, err := GetUserRegistrationSession(sessionClient, sessionID)
	if err != nil {
		return 0, fmt.Errorf("failed to retrieve registration session")
	}
	if regSession.BasicData == nil {
		return 0, fmt.Errorf("registration session missing basic data")
	}

	if err := utils.VerifyOTPRecord(regSession.BasicData.Email, "register", providedOTP); err != nil {
		return 0, fmt.Errorf("OTP verification failed: %w", err)
	}

	regSession.OTPStatus = "verified"
	regSession.LastUpdatedAt = time.Now()
	if err := SaveUserRegistrationSession(sessionClient, sessionID, regSession, utils.RegistrationSessionTTL); err != nil {
		return 0, fmt.Errorf("failed to update registration session: %w", err)
	}

	// Return code 101 to indicate OTP verified.
	return 101, nil
}

// FinalizeRegistration retrieves the session, builds and persists the user
// record from the stored basic data, clears the registration session, and
// returns an AuthResponse carrying the first token pair.
func (s *DefaultUserService) FinalizeRegistration(sessionID string) (*AuthResponse, error) {
	sessionClient := utils.GetAuthCacheClient()
	regSession, err := GetUserRegistrationSession(sessionClient, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve registration session")
	}
	if regSession.OTPStatus != "verified" {
		return nil, fmt.Errorf("OTP not verified")
	}
	if regSession.BasicData == nil {
		return nil, fmt.Errorf("registration session missing basic data")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(regSession.BasicData.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("FinalizeRegistration: Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	userObj := models.User{
		ID:           uuid.New().String(),
		Name:         regSession.BasicData.Name,
		Email:        regSession.BasicData.Email,
		PhoneNumber:  regSession.BasicData.PhoneNumber,
		PasswordHash: string(hashedPassword),
		Password:     "",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	token, err := utils.GenerateAccessToken(userObj.ID, userObj.Email)
	if err != nil {
		utils.GetLogger().Error("FinalizeRegistration: Failed to generate access token", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	refreshToken, err := utils.GenerateRefreshToken(userObj.ID, userObj.Email)
	if err != nil {
		utils.GetLogger().Error("FinalizeRegistration: Failed to generate refresh token", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	userObj.TokenHash = utils.HashToken(token)
	userObj.RefreshTokenHash = utils.HashToken(refreshToken)

	if err := s.Repo.Create(&userObj); err != nil {
		utils.GetLogger().Error("FinalizeRegistration: Failed to create user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	_ = DeleteUserRegistrationSession(sessionClient, sessionID)
	primeAuthCache(userObj.ID, userObj.TokenHash)

	return &AuthResponse{
		ID:           userObj.ID,
		Token:        token,
		RefreshToken: refreshToken,
		Name:         userObj.Name,
		Email:        userObj.Email,
		PhoneNumber:  userObj.PhoneNumber,
	}, nil
}
