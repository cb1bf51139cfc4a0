package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ostrich-systems/field-service-api/internal/core/domain"
)

func TestProfileService_Update_KeepsEmptyFields(t *testing.T) {
	users := newStubUserRepo()
	users.add(&domain.User{
		ID: 1, Username: "alice", FullName: "Alice Field",
		Email: "alice@example.test", Phone: "+15550001",
		Role: domain.RoleServiceStaff, IsActive: true,
	})
	svc := NewProfileService(users)

	updated, err := svc.Update(context.Background(), 1, "", "new@example.test", "")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.FullName != "Alice Field" || updated.Phone != "+15550001" {
		t.Fatalf("empty fields must keep current values, got %+v", updated)
	}
	if updated.Email != "new@example.test" {
		t.Fatalf("email not updated: %q", updated.Email)
	}
	if updated.Role != domain.RoleServiceStaff {
		t.Fatalf("role must be immutable, got %q", updated.Role)
	}
}

func TestProfileService_Update_UnknownUser(t *testing.T) {
	svc := NewProfileService(newStubUserRepo())

	if _, err := svc.Update(context.Background(), 42, "x", "", ""); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
