package middleware

import (
	"crypto/subtle"
	"net/http"

	"clinio/config"
	userRepo "clinio/database/repository/user"

	"github.com/gin-gonic/gin"
)

// StaffAuthMiddleware guards the administrative surface (dentist management,
// clinical records, appointment completion) with the configured API key.
func StaffAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		expected := config.AppConfig.StaffAPIKey
		if expected == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Staff access not configured"})
			return
		}

		provided := c.GetHeader("X-Staff-Key")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized staff access"})
			return
		}

		c.Set("isStaff", true)
		c.Next()
	}
}

// StaffOrUserAuthMiddleware admits either a staff key or a patient bearer
// token, for endpoints both may call. A request carrying X-Staff-Key is
// judged as staff and gets no userID; everything else goes through the
// normal token check.
func StaffOrUserAuthMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	staffAuth := StaffAuthMiddleware()
	userAuth := JWTAuthUserMiddleware(users)
	return func(c *gin.Context) {
		if c.GetHeader("X-Staff-Key") != "" {
			staffAuth(c)
			return
		}
		userAuth(c)
	}
}
