// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = 10 * time.Minute

// OTPTTL is how long a generated one-time password stays valid.
const OTPTTL = 5 * time.Minute

// RegistrationSessionTTL bounds how long a sign-up may stay half-finished.
const RegistrationSessionTTL = 30 * time.Minute
