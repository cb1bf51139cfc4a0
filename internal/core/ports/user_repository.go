package ports

import (
	"context"

	"github.com/ostrich-systems/field-service-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindByPhone resolves the account behind an OTP contact.
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// UpdateProfile persists the mutable profile fields (full name, email,
	// phone). Role and active flag are immutable through this surface.
	UpdateProfile(ctx context.Context, id int64, fullName, email, phone string) (*domain.User, error)
}

// CustomerRepository provides read-only access to customer records.
type CustomerRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Customer, error)
	// FindByIDs returns the customers for the given ids, keyed by id. Missing
	// ids are simply absent from the map.
	FindByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Customer, error)
}
