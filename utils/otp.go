package utils

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// generateSecureOTP generates a random numeric OTP of the specified length.
// crypto/rand is used so codes are never predictable; the original system
// shipped with a constant placeholder code, which is treated here as a defect.
func generateSecureOTP(length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}

// deliverOTP hands the code to the messaging channel. Delivery itself is out
// of scope for this service; the code is logged for operators and test rigs.
func deliverOTP(phoneNumber, message string) error {
	GetLogger().Sugar().Infof("Dispatching OTP message to %s: %s", phoneNumber, message)
	return nil
}

// InitiateOTP generates an OTP, stores it in Redis with a short TTL and hands
// it off for delivery. The key is scoped to the subject and purpose so that a
// registration code cannot be replayed against a password reset.
func InitiateOTP(subject, purpose, phoneNumber string) error {
	otp, err := generateSecureOTP(6)
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}
	otpKey := fmt.Sprintf("otp:%s:%s", subject, purpose)

	ctx := context.Background()
	client := GetOTPCacheClient()
	if client == nil {
		return fmt.Errorf("OTP cache client not initialized")
	}

	if err := client.Set(ctx, otpKey, otp, OTPTTL).Err(); err != nil {
		GetLogger().Error("Failed to cache OTP", zap.Error(err))
		return fmt.Errorf("failed to initiate OTP")
	}

	message := fmt.Sprintf("Your Clinio verification code is: %s. It expires in %v.", otp, OTPTTL)
	if err := deliverOTP(phoneNumber, message); err != nil {
		GetLogger().Error("Failed to send OTP", zap.Error(err))
		return fmt.Errorf("failed to send OTP")
	}

	GetLogger().Sugar().Infof("Sent OTP to phone %s for %s/%s (expires in %v)", phoneNumber, subject, purpose, OTPTTL)
	return nil
}

// VerifyOTPRecord retrieves the stored OTP from Redis and compares it to the
// provided OTP. If they match, it deletes the OTP from the cache.
func VerifyOTPRecord(subject, purpose, providedOTP string) error {
	otpKey := fmt.Sprintf("otp:%s:%s", subject, purpose)
	ctx := context.Background()
	client := GetOTPCacheClient()
	if client == nil {
		return fmt.Errorf("OTP cache client not initialized")
	}

	storedOTP, err := client.Get(ctx, otpKey).Result()
	if err != nil {
		if err == redis.Nil {
			return fmt.Errorf("OTP not found or expired")
		}
		return fmt.Errorf("failed to retrieve OTP: %w", err)
	}

	if storedOTP != providedOTP {
		return fmt.Errorf("OTP does not match")
	}

	// Delete the OTP after successful verification.
	if err := client.Del(ctx, otpKey).Err(); err != nil {
		GetLogger().Error("Failed to delete OTP after verification", zap.Error(err))
	}
	return nil
}
