package service

import (
	"context"

	"github.com/ostrich-systems/field-service-api/internal/core/domain"
	"github.com/ostrich-systems/field-service-api/internal/core/ports"
)

// ProfileService reads and updates the technician's own profile fields.
type ProfileService struct {
	users ports.UserRepository
}

func NewProfileService(users ports.UserRepository) *ProfileService {
	return &ProfileService{users: users}
}

func (s *ProfileService) Get(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// Update persists the mutable profile fields. Empty values keep the current
// ones; role and active flag cannot be changed through this surface.
func (s *ProfileService) Update(ctx context.Context, userID int64, fullName, email, phone string) (*domain.User, error) {
	current, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if fullName == "" {
		fullName = current.FullName
	}
	if email == "" {
		email = current.Email
	}
	if phone == "" {
		phone = current.Phone
	}
	return s.users.UpdateProfile(ctx, userID, fullName, email, phone)
}
