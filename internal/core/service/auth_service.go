package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ostrich-systems/field-service-api/internal/core/domain"
	"github.com/ostrich-systems/field-service-api/internal/core/ports"
)

const (
	otpLength    = 6
	otpTTL       = 5 * time.Minute
	defaultToken = 24 * time.Hour
)

// ResendThrottle abstracts the OTP resend limiter (Redis).
type ResendThrottle interface {
	// Allow reports whether a new code may be issued for the contact. When it
	// returns false, retryAfter is the remaining wait in seconds.
	Allow(ctx context.Context, contact string) (ok bool, retryAfter int64, err error)
	// Mark opens a new throttle window for the contact.
	Mark(ctx context.Context, contact string) error
}

// AuthService implements credential login, the OTP flow, and session tokens.
type AuthService struct {
	users     ports.UserRepository
	otps      ports.OTPRepository
	throttle  ResendThrottle
	sms       ports.SMSSender
	jwtSecret string
	tokenTTL  time.Duration
	env       string
	log       zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	otps ports.OTPRepository,
	throttle ResendThrottle,
	sms ports.SMSSender,
	jwtSecret string,
	tokenTTL time.Duration,
	env string,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultToken
	}
	return &AuthService{
		users:     users,
		otps:      otps,
		throttle:  throttle,
		sms:       sms,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		env:       env,
		log:       log,
	}
}

// Login authenticates an active service_staff account by username/password.
// Unknown users, wrong passwords, inactive accounts, and wrong-role accounts
// all collapse into ErrInvalidCredentials so nothing is leaked to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.AuthResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.CanAuthenticate() {
		return nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.authResult(user)
}

// IssueOTP generates a numeric one-time code for the contact, records it in
// the ledger, and dispatches it via the SMS collaborator.
func (s *AuthService) IssueOTP(ctx context.Context, contact string) (*ports.OTPIssued, error) {
	if ok, wait, err := s.throttle.Allow(ctx, contact); err != nil {
		s.log.Warn().Err(err).Str("contact", contact).Msg("otp throttle check failed, issuing anyway")
	} else if !ok {
		return nil, fmt.Errorf("%w (retry in %ds)", domain.ErrOTPThrottled, wait)
	}

	code, err := generateOTPCode(otpLength)
	if err != nil {
		return nil, fmt.Errorf("issue otp: %w", err)
	}

	now := time.Now().UTC()
	rec := &domain.OTPRecord{
		PhoneNumber: contact,
		OTPCode:     code,
		Purpose:     domain.OTPPurposeLogin,
		Status:      domain.OTPStatusSent,
		CreatedAt:   now,
		ExpiresAt:   now.Add(otpTTL),
	}
	if _, err := s.otps.Insert(ctx, rec); err != nil {
		return nil, fmt.Errorf("issue otp: %w", err)
	}

	if err := s.throttle.Mark(ctx, contact); err != nil {
		s.log.Warn().Err(err).Str("contact", contact).Msg("failed to set otp resend throttle")
	}

	message := fmt.Sprintf("Your verification code is %s. Valid for %d minutes.", code, int(otpTTL.Minutes()))
	if err := s.sms.SendSMS(ctx, contact, message); err != nil {
		return nil, fmt.Errorf("issue otp: send sms: %w", err)
	}

	s.log.Info().Str("contact", contact).Msg("otp issued")

	issued := &ports.OTPIssued{
		Contact:   contact,
		ExpiresIn: int(otpTTL.Seconds()),
	}
	if s.env != "production" {
		issued.Code = code
	}
	return issued, nil
}

// VerifyOTP consumes the most recent live code for the contact. The record
// transitions to verified exactly once; expired, already-verified, or
// mismatched codes all yield ErrInvalidOTP.
func (s *AuthService) VerifyOTP(ctx context.Context, contact, code string) (*ports.AuthResult, error) {
	rec, err := s.otps.FindLatestSent(ctx, contact, code)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidOTP) {
			return nil, domain.ErrInvalidOTP
		}
		return nil, err
	}

	now := time.Now().UTC()
	if !rec.Usable(now) {
		return nil, domain.ErrInvalidOTP
	}
	if err := s.otps.MarkVerified(ctx, rec.ID, now); err != nil {
		return nil, err
	}

	user, err := s.users.FindByPhone(ctx, contact)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.CanAuthenticate() {
		return nil, domain.ErrInvalidCredentials
	}

	s.log.Info().Int64("user_id", user.ID).Msg("otp login")
	return s.authResult(user)
}

func (s *AuthService) authResult(user *domain.User) (*ports.AuthResult, error) {
	identity := domain.Identity{UserID: user.ID, FullName: user.FullName, Role: user.Role}
	token, err := s.IssueToken(identity)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: token, Identity: identity}, nil
}

// IssueToken signs a 24-hour session token for the identity.
func (s *AuthService) IssueToken(identity domain.Identity) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       identity.UserID,
		"full_name": identity.FullName,
		"role":      identity.Role,
		"iat":       now.Unix(),
		"exp":       now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// ValidateToken verifies signature and expiry. Malformed tokens, wrong
// signatures, and expired tokens are indistinguishable to the caller.
func (s *AuthService) ValidateToken(token string) (*domain.Identity, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	role, ok := claims["role"].(string)
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	fullName, _ := claims["full_name"].(string)

	return &domain.Identity{UserID: int64(sub), FullName: fullName, Role: role}, nil
}

// generateOTPCode builds a fixed-length numeric code from crypto/rand.
func generateOTPCode(length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
