package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecureOTP(t *testing.T) {
	otp, err := generateSecureOTP(6)
	require.NoError(t, err)
	assert.Len(t, otp, 6)
	for _, r := range otp {
		assert.True(t, r >= '0' && r <= '9', "OTP must be numeric, got %q", otp)
	}
}

func TestGenerateSecureOTPVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		otp, err := generateSecureOTP(6)
		require.NoError(t, err)
		seen[otp] = true
	}
	// Ten identical draws from a million-value space means a broken generator.
	assert.Greater(t, len(seen), 1)
}
