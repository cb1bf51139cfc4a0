package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ostrich-systems/field-service-api/internal/core/domain"
)

type stubUserRepo struct {
	users map[int64]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) add(u *domain.User) {
	r.users[u.ID] = cloneUser(u)
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByPhone(_ context.Context, phone string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Phone == phone {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id int64, fullName, email, phone string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.FullName = fullName
	u.Email = email
	u.Phone = phone
	u.UpdatedAt = time.Now().UTC()
	return cloneUser(u), nil
}

type stubOTPRepo struct {
	records []*domain.OTPRecord
	nextID  int64
}

func newStubOTPRepo() *stubOTPRepo {
	return &stubOTPRepo{}
}

func (r *stubOTPRepo) Insert(_ context.Context, rec *domain.OTPRecord) (*domain.OTPRecord, error) {
	r.nextID++
	clone := *rec
	clone.ID = r.nextID
	r.records = append(r.records, &clone)
	saved := clone
	return &saved, nil
}

func (r *stubOTPRepo) FindLatestSent(_ context.Context, phone, code string) (*domain.OTPRecord, error) {
	matches := make([]*domain.OTPRecord, 0)
	for _, rec := range r.records {
		if rec.PhoneNumber == phone && rec.OTPCode == code && rec.Status == domain.OTPStatusSent {
			matches = append(matches, rec)
		}
	}
	if len(matches) == 0 {
		return nil, domain.ErrInvalidOTP
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	clone := *matches[0]
	return &clone, nil
}

func (r *stubOTPRepo) MarkVerified(_ context.Context, id int64, at time.Time) error {
	for _, rec := range r.records {
		if rec.ID == id && rec.Status == domain.OTPStatusSent {
			rec.Status = domain.OTPStatusVerified
			rec.VerifiedAt = &at
			return nil
		}
	}
	return domain.ErrInvalidOTP
}

type stubThrottle struct {
	allow      bool
	retryAfter int64
	marked     []string
}

func (t *stubThrottle) Allow(_ context.Context, _ string) (bool, int64, error) {
	return t.allow, t.retryAfter, nil
}

func (t *stubThrottle) Mark(_ context.Context, contact string) error {
	t.marked = append(t.marked, contact)
	return nil
}

type stubSMS struct {
	sent []string
	err  error
}

func (s *stubSMS) SendSMS(_ context.Context, to, _ string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, to)
	return nil
}

func newAuthFixture(t *testing.T) (*AuthService, *stubUserRepo, *stubOTPRepo, *stubThrottle, *stubSMS) {
	t.Helper()
	users := newStubUserRepo()
	otps := newStubOTPRepo()
	throttle := &stubThrottle{allow: true}
	sms := &stubSMS{}
	svc := NewAuthService(users, otps, throttle, sms, "secret", time.Hour, "development", zerolog.Nop())
	return svc, users, otps, throttle, sms
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(hash)
}

func technician(t *testing.T, id int64, username, password, phone string) *domain.User {
	t.Helper()
	return &domain.User{
		ID:           id,
		Username:     username,
		FullName:     "Tech " + username,
		Phone:        phone,
		PasswordHash: hashOf(t, password),
		Role:         domain.RoleServiceStaff,
		IsActive:     true,
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, users, _, _, _ := newAuthFixture(t)
	users.add(technician(t, 1, "alice", "s3cret", "+15550001"))

	res, err := svc.Login(context.Background(), "alice", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("expected token, got empty")
	}
	if res.Identity.UserID != 1 || res.Identity.Role != domain.RoleServiceStaff {
		t.Fatalf("unexpected identity: %+v", res.Identity)
	}

	identity, err := svc.ValidateToken(res.Token)
	if err != nil {
		t.Fatalf("token round trip failed: %v", err)
	}
	if identity.UserID != 1 || identity.FullName != "Tech alice" {
		t.Fatalf("unexpected decoded identity: %+v", identity)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc, users, _, _, _ := newAuthFixture(t)
	users.add(technician(t, 1, "bob", "goodpass", "+15550002"))

	if _, err := svc.Login(context.Background(), "bob", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc, _, _, _, _ := newAuthFixture(t)

	if _, err := svc.Login(context.Background(), "ghost", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_InactiveOrWrongRole(t *testing.T) {
	svc, users, _, _, _ := newAuthFixture(t)

	inactive := technician(t, 1, "carol", "pass", "+15550003")
	inactive.IsActive = false
	users.add(inactive)

	admin := technician(t, 2, "dave", "pass", "+15550004")
	admin.Role = domain.RoleAdmin
	users.add(admin)

	if _, err := svc.Login(context.Background(), "carol", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("inactive account: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "dave", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong role: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_IssueOTP(t *testing.T) {
	svc, _, otps, throttle, sms := newAuthFixture(t)

	issued, err := svc.IssueOTP(context.Background(), "+15550010")
	if err != nil {
		t.Fatalf("issue otp failed: %v", err)
	}
	if len(issued.Code) != otpLength {
		t.Fatalf("expected %d-digit code, got %q", otpLength, issued.Code)
	}
	if issued.ExpiresIn != int(otpTTL.Seconds()) {
		t.Fatalf("unexpected expires_in: %d", issued.ExpiresIn)
	}
	if len(otps.records) != 1 {
		t.Fatalf("expected one stored record, got %d", len(otps.records))
	}
	if otps.records[0].Status != domain.OTPStatusSent {
		t.Fatalf("expected status sent, got %s", otps.records[0].Status)
	}
	if len(sms.sent) != 1 || sms.sent[0] != "+15550010" {
		t.Fatalf("expected sms to contact, got %v", sms.sent)
	}
	if len(throttle.marked) != 1 {
		t.Fatalf("expected throttle window opened, got %v", throttle.marked)
	}
}

func TestAuthService_IssueOTP_HiddenInProduction(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, newStubOTPRepo(), &stubThrottle{allow: true}, &stubSMS{}, "secret", time.Hour, "production", zerolog.Nop())

	issued, err := svc.IssueOTP(context.Background(), "+15550011")
	if err != nil {
		t.Fatalf("issue otp failed: %v", err)
	}
	if issued.Code != "" {
		t.Fatalf("code must not be echoed in production")
	}
}

func TestAuthService_IssueOTP_Throttled(t *testing.T) {
	svc, _, otps, throttle, _ := newAuthFixture(t)
	throttle.allow = false
	throttle.retryAfter = 42

	_, err := svc.IssueOTP(context.Background(), "+15550012")
	if !errors.Is(err, domain.ErrOTPThrottled) {
		t.Fatalf("expected ErrOTPThrottled, got %v", err)
	}
	if len(otps.records) != 0 {
		t.Fatalf("no record should be stored when throttled")
	}
}

func TestAuthService_VerifyOTP_Success(t *testing.T) {
	svc, users, _, _, _ := newAuthFixture(t)
	users.add(technician(t, 7, "erin", "pass", "+15550020"))

	issued, err := svc.IssueOTP(context.Background(), "+15550020")
	if err != nil {
		t.Fatalf("issue otp failed: %v", err)
	}

	res, err := svc.VerifyOTP(context.Background(), "+15550020", issued.Code)
	if err != nil {
		t.Fatalf("verify otp failed: %v", err)
	}
	if res.Identity.UserID != 7 {
		t.Fatalf("unexpected identity: %+v", res.Identity)
	}

	// The code is single-use.
	if _, err := svc.VerifyOTP(context.Background(), "+15550020", issued.Code); !errors.Is(err, domain.ErrInvalidOTP) {
		t.Fatalf("expected ErrInvalidOTP on second use, got %v", err)
	}
}

func TestAuthService_VerifyOTP_WrongCode(t *testing.T) {
	svc, users, _, _, _ := newAuthFixture(t)
	users.add(technician(t, 8, "frank", "pass", "+15550021"))

	if _, err := svc.IssueOTP(context.Background(), "+15550021"); err != nil {
		t.Fatalf("issue otp failed: %v", err)
	}
	if _, err := svc.VerifyOTP(context.Background(), "+15550021", "000000"); !errors.Is(err, domain.ErrInvalidOTP) {
		t.Fatalf("expected ErrInvalidOTP, got %v", err)
	}
}

func TestAuthService_VerifyOTP_Expired(t *testing.T) {
	svc, users, otps, _, _ := newAuthFixture(t)
	users.add(technician(t, 9, "grace", "pass", "+15550022"))

	past := time.Now().UTC().Add(-time.Hour)
	if _, err := otps.Insert(context.Background(), &domain.OTPRecord{
		PhoneNumber: "+15550022",
		OTPCode:     "123456",
		Purpose:     domain.OTPPurposeLogin,
		Status:      domain.OTPStatusSent,
		CreatedAt:   past,
		ExpiresAt:   past.Add(otpTTL),
	}); err != nil {
		t.Fatalf("seed record: %v", err)
	}

	if _, err := svc.VerifyOTP(context.Background(), "+15550022", "123456"); !errors.Is(err, domain.ErrInvalidOTP) {
		t.Fatalf("expected ErrInvalidOTP for expired code, got %v", err)
	}
}

func TestAuthService_VerifyOTP_LatestRecordWins(t *testing.T) {
	svc, users, _, _, _ := newAuthFixture(t)
	users.add(technician(t, 10, "heidi", "pass", "+15550023"))

	first, err := svc.IssueOTP(context.Background(), "+15550023")
	if err != nil {
		t.Fatalf("issue first otp: %v", err)
	}
	second, err := svc.IssueOTP(context.Background(), "+15550023")
	if err != nil {
		t.Fatalf("issue second otp: %v", err)
	}

	if _, err := svc.VerifyOTP(context.Background(), "+15550023", second.Code); err != nil {
		t.Fatalf("latest code should verify: %v", err)
	}
	if first.Code != second.Code {
		if _, err := svc.VerifyOTP(context.Background(), "+15550023", first.Code); err != nil {
			// Earlier unexpired codes remain valid until used or expired.
			t.Fatalf("earlier unexpired code should still verify: %v", err)
		}
	}
}

func TestAuthService_ValidateToken_Expired(t *testing.T) {
	svc, _, _, _, _ := newAuthFixture(t)

	now := time.Now()
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":       int64(1),
		"full_name": "Tech ivan",
		"role":      domain.RoleServiceStaff,
		"iat":       now.Add(-2 * time.Hour).Unix(),
		"exp":       now.Add(-time.Hour).Unix(),
	})
	token, err := expired.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.ValidateToken(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestAuthService_ValidateToken_WrongSecret(t *testing.T) {
	svc, users, _, _, _ := newAuthFixture(t)
	users.add(technician(t, 1, "judy", "pass", "+15550031"))

	other := NewAuthService(users, newStubOTPRepo(), &stubThrottle{allow: true}, &stubSMS{}, "other-secret", time.Hour, "development", zerolog.Nop())
	res, err := other.Login(context.Background(), "judy", "pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if _, err := svc.ValidateToken(res.Token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong signature, got %v", err)
	}
}

func TestAuthService_ValidateToken_Garbage(t *testing.T) {
	svc, _, _, _, _ := newAuthFixture(t)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.ValidateToken(token); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", token, err)
		}
	}
}
