package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	resendKeyPrefix     = "otp:res:"
	defaultResendWindow = 60 * time.Second
)

// OTPThrottle rate-limits OTP resends per contact using a short-lived Redis
// key. While the key exists, further sends to the same contact are refused.
type OTPThrottle struct {
	client *redis.Client
	window time.Duration
}

func NewOTPThrottle(client *redis.Client, window time.Duration) *OTPThrottle {
	if window <= 0 {
		window = defaultResendWindow
	}
	return &OTPThrottle{client: client, window: window}
}

// Allow reports whether a new code may be sent to the contact. When refused,
// retryAfter carries the remaining cooldown in seconds.
func (t *OTPThrottle) Allow(ctx context.Context, contact string) (bool, int64, error) {
	ttl, err := t.client.TTL(ctx, resendKeyPrefix+contact).Result()
	if err != nil {
		return false, 0, fmt.Errorf("otp throttle ttl: %w", err)
	}
	// TTL returns a negative duration when the key does not exist or has no
	// expiry set.
	if ttl <= 0 {
		return true, 0, nil
	}
	retryAfter := int64(ttl.Seconds())
	if retryAfter < 1 {
		retryAfter = 1
	}
	return false, retryAfter, nil
}

// Mark starts the resend cooldown for the contact.
func (t *OTPThrottle) Mark(ctx context.Context, contact string) error {
	if err := t.client.Set(ctx, resendKeyPrefix+contact, 1, t.window).Err(); err != nil {
		return fmt.Errorf("otp throttle mark: %w", err)
	}
	return nil
}
