package user

import (
	"context"
	"fmt"
	"time"

	"clinio/models"
	"clinio/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthenticateUser verifies the email/password pair and issues a fresh token
// pair. Issuing rotates the persisted hashes, so any previously issued tokens
// stop authenticating.
func (s *DefaultUserService) AuthenticateUser(email, password string) (*AuthResponse, error) {
	userRec, err := s.Repo.GetByEmailWithProjection(email, bson.M{})
	if err != nil {
		utils.GetLogger().Error("AuthenticateUser: Failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if userRec == nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userRec.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	return s.issueTokenPair(userRec)
}

// issueTokenPair mints an access/refresh pair, persists their hashes on the
// user record, and primes the authorization cache with the access hash.
func (s *DefaultUserService) issueTokenPair(userRec *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateAccessToken(userRec.ID, userRec.Email)
	if err != nil {
		utils.GetLogger().Error("issueTokenPair: Failed to generate access token", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	refreshToken, err := utils.GenerateRefreshToken(userRec.ID, userRec.Email)
	if err != nil {
		utils.GetLogger().Error("issueTokenPair: Failed to generate refresh token", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	tokenHash := utils.HashToken(token)
	refreshHash := utils.HashToken(refreshToken)

	if _, err := s.Repo.UpdateSetDocument(userRec.ID, bson.M{
		"token_hash":         tokenHash,
		"refresh_token_hash": refreshHash,
		"updated_at":         time.Now(),
	}); err != nil {
		utils.GetLogger().Error("issueTokenPair: Failed to persist token hashes", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	primeAuthCache(userRec.ID, tokenHash)

	return &AuthResponse{
		ID:           userRec.ID,
		Token:        token,
		RefreshToken: refreshToken,
		Name:         userRec.Name,
		Email:        userRec.Email,
		PhoneNumber:  userRec.PhoneNumber,
	}, nil
}

// primeAuthCache stores the access token hash so the auth middleware can skip
// the database on the hot path. Failures are logged and ignored; the
// middleware falls back to the user record.
func primeAuthCache(userID, tokenHash string) {
	client := utils.GetAuthCacheClient()
	cacheKey := utils.AuthCachePrefix + userID
	if err := client.Set(context.Background(), cacheKey, tokenHash, utils.AuthCacheTTL).Err(); err != nil {
		utils.GetLogger().Error("Failed to prime auth cache", zap.String("userID", userID), zap.Error(err))
	}
}

// dropAuthCache removes the cached access hash, forcing the next request
// through the database check.
func dropAuthCache(userID string) {
	client := utils.GetAuthCacheClient()
	cacheKey := utils.AuthCachePrefix + userID
	if err := client.Del(context.Background(), cacheKey).Err(); err != nil {
		utils.GetLogger().Error("Failed to drop auth cache", zap.String("userID", userID), zap.Error(err))
	}
}
