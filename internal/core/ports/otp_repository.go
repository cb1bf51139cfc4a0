package ports

import (
	"context"
	"time"

	"github.com/ostrich-systems/field-service-api/internal/core/domain"
)

// OTPRepository defines persistence for the one-time-code ledger.
type OTPRepository interface {
	Insert(ctx context.Context, rec *domain.OTPRecord) (*domain.OTPRecord, error)
	// FindLatestSent returns the most recent record for the contact with the
	// given code and status "sent" (tie-break: latest created_at). Expiry is
	// not evaluated here; the caller decides whether the record is usable.
	FindLatestSent(ctx context.Context, phone, code string) (*domain.OTPRecord, error)
	// MarkVerified transitions the record sent -> verified. It must be a
	// guarded update: a record that is no longer "sent" is left untouched and
	// domain.ErrInvalidOTP is returned, so a code verifies at most once.
	MarkVerified(ctx context.Context, id int64, at time.Time) error
}
