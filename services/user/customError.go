package user

import "fmt"

// OTPPendingError signals that OTP initiation succeeded but verification is pending.
type OTPPendingError struct {
	SessionID string
}

func (e OTPPendingError) Error() string {
	return "OTP pending; sessionID: " + e.SessionID
}

func (e NewPasswordRequiredError) Error() string {
	return fmt.Sprintf("OTP verified. New password required. SessionID: %s", e.SessionID)
}
