package ports

import (
	"context"
	"time"

	"github.com/ostrich-systems/field-service-api/internal/core/domain"
)

// AssignedTicketsFilter carries the query parameters for the assigned list.
// Statuses defaults to the open set {SCHEDULED, IN_PROGRESS} when empty.
type AssignedTicketsFilter struct {
	StaffID  int64
	Statuses []domain.TicketStatus
	Priority domain.TicketPriority // empty = no priority filter
	Limit    int                   // already clamped by the service to [1,100]
	Offset   int                   // already clamped by the service to >= 0
}

// StatusUpdate describes a single mutation applied by UpdateStatus. PartsUsed
// entries are appended, never replaced.
type StatusUpdate struct {
	Status        domain.TicketStatus
	ServiceNotes  string
	WorkPerformed string
	PartsUsed     []domain.PartUsed
	CompletedDate *time.Time // set when entering COMPLETED
	UpdatedAt     time.Time
}

// TicketRepository defines persistence operations for service tickets.
type TicketRepository interface {
	// ListAssigned returns a page of matching tickets ordered by
	// scheduled_date ascending, plus the total count before pagination.
	ListAssigned(ctx context.Context, f AssignedTicketsFilter) ([]*domain.Ticket, int64, error)
	// ListCompleted returns COMPLETED tickets for the staff member ordered by
	// updated_at descending, plus the total count before pagination.
	ListCompleted(ctx context.Context, staffID int64, limit, offset int) ([]*domain.Ticket, int64, error)
	// ListScheduledBetween returns the staff member's tickets with
	// scheduled_date in [from, to), ordered by scheduled_date ascending.
	ListScheduledBetween(ctx context.Context, staffID int64, from, to time.Time) ([]*domain.Ticket, error)
	FindByID(ctx context.Context, id int64) (*domain.Ticket, error)
	ApplyStatusUpdate(ctx context.Context, id int64, upd StatusUpdate) error
	// SetLocation overwrites the captured location; last write wins.
	SetLocation(ctx context.Context, id int64, loc domain.GeoPoint, at time.Time) error
	// SetPhotoRefs replaces the photo reference list.
	SetPhotoRefs(ctx context.Context, id int64, refs []string, at time.Time) error
	SetSignature(ctx context.Context, id int64, sig domain.Signature) error
	// CountByStatus counts the staff member's tickets in the given status.
	CountByStatus(ctx context.Context, staffID int64, status domain.TicketStatus) (int64, error)
	// CountCompletedBetween counts COMPLETED tickets whose updated_at falls
	// in [from, to).
	CountCompletedBetween(ctx context.Context, staffID int64, from, to time.Time) (int64, error)
}
