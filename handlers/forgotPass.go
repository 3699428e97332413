package handlers

import (
	"net/http"

	"clinio/services/user"

	"github.com/gin-gonic/gin"
)

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
	SessionID   string `json:"sessionID"`
}

// ResetUserPasswordHandler drives the three-state password reset flow. The
// same endpoint is called with progressively more fields; codes 100 and 101
// tell the client which step comes next.
func (h *UserHandler) ResetUserPasswordHandler(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.UserService.ResetPassword(req.Email, req.OTP, req.NewPassword, req.SessionID)
	if err != nil {
		if otpErr, ok := err.(user.OTPPendingError); ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":     "OTP verification required",
				"code":      100,
				"sessionID": otpErr.SessionID,
			})
			return
		}
		if npErr, ok := err.(user.NewPasswordRequiredError); ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":     "OTP verified. New password required.",
				"code":      101,
				"sessionID": npErr.SessionID,
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password has been successfully reset. Please sign in with your new password."})
}
