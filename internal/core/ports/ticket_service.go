package ports

import (
	"context"
	"time"

	"github.com/ostrich-systems/field-service-api/internal/core/domain"
)

// ListAssignedInput carries the raw query parameters for the assigned list.
// Status and Priority are case-insensitive; limit/offset are clamped by the
// service (limit to [1,100], offset to >= 0).
type ListAssignedInput struct {
	StaffID  int64
	Status   string
	Priority string
	Limit    int
	Offset   int
}

// TicketSummary is the display-oriented list item: ticket fields merged with
// the joined customer, defaulting to "Unknown Customer" / "N/A" when the
// customer record is absent.
type TicketSummary struct {
	ID               int64
	TicketNumber     string
	CustomerName     string
	CustomerPhone    string
	CustomerAddress  string
	ProductName      string
	IssueDescription string
	Status           string
	Priority         string
	ScheduledDate    time.Time
	AssignedStaffID  int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TicketListResult is a page of summaries plus the pre-pagination total.
type TicketListResult struct {
	Tickets    []TicketSummary
	TotalCount int64
}

// TicketDetail is the full joined view of one ticket.
type TicketDetail struct {
	TicketSummary
	CustomerEmail  string
	TechnicianName string
	ServiceNotes   string
	WorkPerformed  string
	CompletedDate  *time.Time
	Location       *domain.GeoPoint
	Signature      *domain.Signature
	PhotoRefs      []string
	PartsUsed      []domain.PartUsed
}

// UpdateStatusInput carries a status mutation request.
type UpdateStatusInput struct {
	TicketID      int64
	ActorID       int64
	Status        string
	Notes         string
	WorkPerformed string
	PartsUsed     []domain.PartUsed
}

// UpdateStatusResult acknowledges a status mutation.
type UpdateStatusResult struct {
	TicketID  int64
	NewStatus string
	UpdatedAt time.Time
}

// LocationAck acknowledges a location capture.
type LocationAck struct {
	TicketID   int64
	Latitude   float64
	Longitude  float64
	CapturedAt time.Time
}

// PhotosAck acknowledges a photo attachment with the generated references.
type PhotosAck struct {
	TicketID  int64
	PhotoURLs []string
}

// SignatureAck acknowledges a signature capture.
type SignatureAck struct {
	TicketID     int64
	SignatureURL string
	CapturedAt   time.Time
}

// ScheduleEntry is one appointment on a technician's day plan.
type ScheduleEntry struct {
	TicketID     int64
	TicketNumber string
	CustomerName string
	Address      string
	StartTime    time.Time
	Status       string
	Priority     string
}

// TicketService defines use-case operations for the ticket lifecycle.
type TicketService interface {
	ListAssigned(ctx context.Context, in ListAssignedInput) (*TicketListResult, error)
	ListCompleted(ctx context.Context, staffID int64, limit, offset int) (*TicketListResult, error)
	GetDetail(ctx context.Context, ticketID int64) (*TicketDetail, error)
	UpdateStatus(ctx context.Context, in UpdateStatusInput) (*UpdateStatusResult, error)
	CaptureLocation(ctx context.Context, ticketID int64, lat, lng float64) (*LocationAck, error)
	AttachPhotos(ctx context.Context, ticketID int64, photoRefs []string) (*PhotosAck, error)
	AttachSignature(ctx context.Context, ticketID int64, customerName, signatureRef string) (*SignatureAck, error)
	// DaySchedule lists the technician's appointments for one calendar date.
	DaySchedule(ctx context.Context, staffID int64, date time.Time) ([]ScheduleEntry, error)
}
