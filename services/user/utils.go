package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"clinio/models"
	"clinio/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const registrationSessionPrefix = "regSession:"

var (
	upperRe  = regexp.MustCompile(`[A-Z]`)
	lowerRe  = regexp.MustCompile(`[a-z]`)
	digitRe  = regexp.MustCompile(`[0-9]`)
	symbolRe = regexp.MustCompile(`[\W_]`)
)

// VerifyPasswordComplexity enforces the minimum password policy: at least
// eight characters with an uppercase letter, a lowercase letter, a digit and
// a symbol.
func VerifyPasswordComplexity(pw string) error {
	switch {
	case len(pw) < 8:
		return errors.New("password must be at least 8 characters long")
	case !upperRe.MatchString(pw):
		return errors.New("password must include at least one uppercase letter")
	case !lowerRe.MatchString(pw):
		return errors.New("password must include at least one lowercase letter")
	case !digitRe.MatchString(pw):
		return errors.New("password must include at least one number")
	case !symbolRe.MatchString(pw):
		return errors.New("password must include at least one symbol")
	}
	return nil
}

func registrationKey(sessionID string) string {
	return registrationSessionPrefix + sessionID
}

// SaveUserRegistrationSession stores the in-progress registration in Redis.
// The TTL bounds how long an applicant has to finish the OTP flow.
func SaveUserRegistrationSession(client *redis.Client, sessionID string, session models.UserRegistrationSession, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal registration session: %w", err)
	}
	if err := client.Set(context.Background(), registrationKey(sessionID), data, ttl).Err(); err != nil {
		utils.GetLogger().Error("Could not store registration session",
			zap.String("sessionID", sessionID), zap.Error(err))
		return fmt.Errorf("store registration session: %w", err)
	}
	return nil
}

// GetUserRegistrationSession loads an in-progress registration. A missing or
// expired session surfaces as redis.Nil for the caller to map.
func GetUserRegistrationSession(client *redis.Client, sessionID string) (models.UserRegistrationSession, error) {
	var session models.UserRegistrationSession

	data, err := client.Get(context.Background(), registrationKey(sessionID)).Result()
	if err != nil {
		return session, err
	}
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		utils.GetLogger().Error("Corrupt registration session",
			zap.String("sessionID", sessionID), zap.Error(err))
		return session, fmt.Errorf("decode registration session: %w", err)
	}
	return session, nil
}

// DeleteUserRegistrationSession discards a registration session once the
// account is finalized or the flow is abandoned.
func DeleteUserRegistrationSession(client *redis.Client, sessionID string) error {
	if err := client.Del(context.Background(), registrationKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete registration session: %w", err)
	}
	return nil
}
