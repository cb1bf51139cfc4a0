package domain

import (
	"errors"
	"time"
)

const (
	OTPStatusSent     = "sent"
	OTPStatusVerified = "verified"

	OTPPurposeLogin = "login"
)

var ErrInvalidOTP = errors.New("invalid or expired otp")
var ErrOTPThrottled = errors.New("otp recently sent, retry later")

// OTPRecord tracks one issued one-time code. A record transitions
// sent -> verified at most once, and only while now < ExpiresAt. An expired
// or already-verified code is dead; a new one must be issued.
type OTPRecord struct {
	ID          int64      `json:"id" bson:"id"`
	PhoneNumber string     `json:"phone_number" bson:"phone_number"`
	OTPCode     string     `json:"otp_code" bson:"otp_code"`
	Purpose     string     `json:"purpose" bson:"purpose"`
	Status      string     `json:"status" bson:"status"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	ExpiresAt   time.Time  `json:"expires_at" bson:"expires_at"`
	VerifiedAt  *time.Time `json:"verified_at,omitempty" bson:"verified_at,omitempty"`
}

// Usable reports whether the record can still be verified at the given time.
func (r *OTPRecord) Usable(now time.Time) bool {
	return r.Status == OTPStatusSent && now.Before(r.ExpiresAt)
}
