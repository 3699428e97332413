package user

import (
	"fmt"

	"clinio/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// RefreshTokenPair validates a refresh token against the stored hash and
// rotates the pair. A refresh token can be used once: rotation overwrites the
// stored hash, so replaying the old token fails.
func (s *DefaultUserService) RefreshTokenPair(refreshToken string) (*AuthResponse, error) {
	userID, err := utils.ExtractIDFromToken(refreshToken, "refresh")
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token")
	}

	userRec, err := s.Repo.GetByIDWithProjection(userID, bson.M{})
	if err != nil {
		utils.GetLogger().Error("RefreshTokenPair: Failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("token refresh failed, please try again")
	}
	if userRec == nil {
		return nil, fmt.Errorf("invalid refresh token")
	}

	if userRec.RefreshTokenHash == "" || utils.HashToken(refreshToken) != userRec.RefreshTokenHash {
		return nil, fmt.Errorf("refresh token revoked")
	}

	return s.issueTokenPair(userRec)
}
