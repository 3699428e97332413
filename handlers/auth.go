package handlers

import (
	"net/http"

	"clinio/models"
	"clinio/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler exposes the account and authentication endpoints.
type UserHandler struct {
	UserService user.UserService
}

// InitiateRegistrationHandler starts a sign-up: validates the payload, sends
// an OTP and returns the registration session ID with code 100.
func (h *UserHandler) InitiateRegistrationHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.UserBasicRegistrationData
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid registration request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	sessionID, code, err := h.UserService.InitiateRegistration(req)
	if err != nil {
		logger.Error("Registration initiation failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "OTP sent. Verify to continue registration.",
		"code":      code,
		"sessionID": sessionID,
	})
}

// VerifyRegistrationOTPHandler confirms the sign-up OTP and returns code 101.
func (h *UserHandler) VerifyRegistrationOTPHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		SessionID string `json:"sessionID" binding:"required"`
		OTP       string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid OTP verification request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	code, err := h.UserService.VerifyRegistrationOTP(req.SessionID, req.OTP)
	if err != nil {
		logger.Error("Registration OTP verification failed", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "OTP verified. Finalize to create your account.",
		"code":      code,
		"sessionID": req.SessionID,
	})
}

// FinalizeRegistrationHandler creates the account from a verified session and
// returns the first token pair.
func (h *UserHandler) FinalizeRegistrationHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		SessionID string `json:"sessionID" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid finalize request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.UserService.FinalizeRegistration(req.SessionID)
	if err != nil {
		logger.Error("Registration finalization failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// AuthenticateUserHandler handles sign-in and returns a token pair.
func (h *UserHandler) AuthenticateUserHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.UserService.AuthenticateUser(req.Email, req.Password)
	if err != nil {
		logger.Warn("Login failed", zap.String("email", req.Email), zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RefreshTokenHandler rotates the token pair from a valid refresh token.
func (h *UserHandler) RefreshTokenHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid refresh token request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.UserService.RefreshTokenPair(req.RefreshToken)
	if err != nil {
		logger.Warn("Token refresh failed", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RevokeUserAuthTokenHandler signs the authenticated user out everywhere.
func (h *UserHandler) RevokeUserAuthTokenHandler(c *gin.Context) {
	logger := getLogger(c)

	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.UserService.RevokeUserAuthToken(userID); err != nil {
		logger.Error("Token revocation failed", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}
