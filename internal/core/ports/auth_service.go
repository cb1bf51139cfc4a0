package ports

import (
	"context"

	"github.com/ostrich-systems/field-service-api/internal/core/domain"
)

// AuthResult is returned after a successful login or OTP verification.
type AuthResult struct {
	Token    string
	Identity domain.Identity
}

// OTPIssued is returned after a one-time code has been issued.
type OTPIssued struct {
	Contact   string
	ExpiresIn int // seconds
	// Code is populated only outside production so demo clients can complete
	// the flow without a real SMS channel.
	Code string
}

// AuthService covers credential login, the OTP flow, and session tokens.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	IssueOTP(ctx context.Context, contact string) (*OTPIssued, error)
	VerifyOTP(ctx context.Context, contact, code string) (*AuthResult, error)
	// ValidateToken verifies signature and expiry and yields the identity.
	// All failure shapes (malformed, bad signature, expired) collapse into
	// domain.ErrInvalidToken.
	ValidateToken(token string) (*domain.Identity, error)
}

// SMSSender dispatches a one-time code to a contact. Delivery transport is an
// external collaborator; only the stored record and expiry matter here.
type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

// ProfileService exposes the technician's own profile.
type ProfileService interface {
	Get(ctx context.Context, userID int64) (*domain.User, error)
	Update(ctx context.Context, userID int64, fullName, email, phone string) (*domain.User, error)
}
