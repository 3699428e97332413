package user

import (
	"fmt"
	"time"

	"clinio/models"
	"clinio/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// sensitiveFields are never returned from profile reads.
var sensitiveFields = bson.M{
	"password_hash":      0,
	"token_hash":         0,
	"refresh_token_hash": 0,
}

// GetUserByID fetches a user profile without credential material.
func (s *DefaultUserService) GetUserByID(userID string) (*models.User, error) {
	userRec, err := s.Repo.GetByIDWithProjection(userID, sensitiveFields)
	if err != nil {
		utils.GetLogger().Error("GetUserByID: Failed to fetch user", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch user")
	}
	if userRec == nil {
		return nil, fmt.Errorf("user with id %s not found", userID)
	}
	return userRec, nil
}

// GetUserByEmail fetches a user profile by email without credential material.
func (s *DefaultUserService) GetUserByEmail(email string) (*models.User, error) {
	userRec, err := s.Repo.GetByEmailWithProjection(email, sensitiveFields)
	if err != nil {
		utils.GetLogger().Error("GetUserByEmail: Failed to fetch user", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch user")
	}
	if userRec == nil {
		return nil, fmt.Errorf("user with email %s not found", email)
	}
	return userRec, nil
}

// UpdateUser applies the non-empty profile fields as a patch and returns the
// updated record. Email and password never change through this path.
func (s *DefaultUserService) UpdateUser(req models.UserUpdateRequest) (*models.User, error) {
	updateFields := bson.M{}
	if req.Name != "" {
		updateFields["name"] = req.Name
	}
	if req.PhoneNumber != "" {
		updateFields["phone_number"] = req.PhoneNumber
	}
	if len(updateFields) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}
	updateFields["updated_at"] = time.Now()

	updated, err := s.Repo.UpdateSetDocument(req.ID, updateFields)
	if err != nil {
		utils.GetLogger().Error("UpdateUser: Failed to update user", zap.String("userID", req.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to update user")
	}
	if updated == nil {
		return nil, fmt.Errorf("user with id %s not found", req.ID)
	}
	updated.PasswordHash = ""
	updated.TokenHash = ""
	updated.RefreshTokenHash = ""
	return updated, nil
}

// DeleteUser removes the account document and its cached authorization.
func (s *DefaultUserService) DeleteUser(userID string) error {
	if err := s.Repo.Delete(userID); err != nil {
		utils.GetLogger().Error("DeleteUser: Failed to delete user", zap.String("userID", userID), zap.Error(err))
		return fmt.Errorf("failed to delete user")
	}
	dropAuthCache(userID)
	return nil
}

// RevokeUserAuthToken clears the stored token hashes so neither the current
// access token nor the refresh token authenticates again.
func (s *DefaultUserService) RevokeUserAuthToken(userID string) error {
	if _, err := s.Repo.UpdateSetDocument(userID, bson.M{
		"token_hash":         "",
		"refresh_token_hash": "",
		"updated_at":         time.Now(),
	}); err != nil {
		utils.GetLogger().Error("RevokeUserAuthToken: Failed to clear token hashes", zap.String("userID", userID), zap.Error(err))
		return fmt.Errorf("failed to revoke auth token")
	}
	dropAuthCache(userID)
	return nil
}
