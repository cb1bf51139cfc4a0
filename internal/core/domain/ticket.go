package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// TicketStatus represents the lifecycle state of a service ticket.
type TicketStatus string

const (
	StatusScheduled  TicketStatus = "SCHEDULED"
	StatusInProgress TicketStatus = "IN_PROGRESS"
	StatusCompleted  TicketStatus = "COMPLETED"
	StatusCancelled  TicketStatus = "CANCELLED"
)

// TicketPriority represents how urgently a ticket must be serviced.
type TicketPriority string

const (
	PriorityLow    TicketPriority = "LOW"
	PriorityMedium TicketPriority = "MEDIUM"
	PriorityHigh   TicketPriority = "HIGH"
	PriorityUrgent TicketPriority = "URGENT"
)

var ErrTicketNotFound = errors.New("ticket not found")
var ErrInvalidStatus = errors.New("invalid ticket status")
var ErrInvalidPriority = errors.New("invalid ticket priority")

// ParseStatus normalizes a case-insensitive status string.
func ParseStatus(s string) (TicketStatus, error) {
	switch TicketStatus(strings.ToUpper(s)) {
	case StatusScheduled:
		return StatusScheduled, nil
	case StatusInProgress:
		return StatusInProgress, nil
	case StatusCompleted:
		return StatusCompleted, nil
	case StatusCancelled:
		return StatusCancelled, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// ParsePriority normalizes a case-insensitive priority string.
func ParsePriority(s string) (TicketPriority, error) {
	switch TicketPriority(strings.ToUpper(s)) {
	case PriorityLow:
		return PriorityLow, nil
	case PriorityMedium:
		return PriorityMedium, nil
	case PriorityHigh:
		return PriorityHigh, nil
	case PriorityUrgent:
		return PriorityUrgent, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
}

// GeoPoint is a captured technician location.
type GeoPoint struct {
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
}

// PartUsed is an append-only ledger entry for a part consumed on a ticket.
// Entries are never updated or removed; repeated status updates accumulate.
type PartUsed struct {
	PartName string  `json:"part_name" bson:"part_name"`
	Quantity int     `json:"quantity" bson:"quantity"`
	UnitCost float64 `json:"unit_cost" bson:"unit_cost"`
}

// Signature records the customer sign-off on a completed visit.
type Signature struct {
	CustomerName string    `json:"customer_name" bson:"customer_name"`
	Ref          string    `json:"ref" bson:"ref"`
	CapturedAt   time.Time `json:"captured_at" bson:"captured_at"`
}

// Customer is referenced by tickets and read-only from this service.
type Customer struct {
	ID            int64  `json:"id" bson:"id"`
	ContactPerson string `json:"contact_person" bson:"contact_person"`
	Phone         string `json:"phone" bson:"phone"`
	Address       string `json:"address" bson:"address"`
	City          string `json:"city" bson:"city"`
	Email         string `json:"email" bson:"email"`
}

// Ticket is the core aggregate root: one unit of field-service work tied to a
// customer and an assigned technician.
//
// Status transitions are intentionally permissive: any status may move to any
// other via an update. CompletedDate is set on every transition into
// COMPLETED, including re-entries.
type Ticket struct {
	ID                  int64          `json:"id" bson:"id"`
	TicketNumber        string         `json:"ticket_number" bson:"ticket_number"`
	CustomerID          int64          `json:"customer_id" bson:"customer_id"`
	AssignedStaffID     int64          `json:"assigned_staff_id" bson:"assigned_staff_id"`
	ProductSerialNumber string         `json:"product_serial_number,omitempty" bson:"product_serial_number,omitempty"`
	IssueDescription    string         `json:"issue_description" bson:"issue_description"`
	Status              TicketStatus   `json:"status" bson:"status"`
	Priority            TicketPriority `json:"priority" bson:"priority"`
	ScheduledDate       time.Time      `json:"scheduled_date" bson:"scheduled_date"`
	ServiceNotes        string         `json:"service_notes,omitempty" bson:"service_notes,omitempty"`
	WorkPerformed       string         `json:"work_performed,omitempty" bson:"work_performed,omitempty"`
	CompletedDate       *time.Time     `json:"completed_date,omitempty" bson:"completed_date,omitempty"`
	Location            *GeoPoint      `json:"location,omitempty" bson:"location,omitempty"`
	LocationCapturedAt  *time.Time     `json:"location_captured_at,omitempty" bson:"location_captured_at,omitempty"`
	Signature           *Signature     `json:"signature,omitempty" bson:"signature,omitempty"`
	PhotoRefs           []string       `json:"photo_refs,omitempty" bson:"photo_refs,omitempty"`
	PartsUsed           []PartUsed     `json:"parts_used,omitempty" bson:"parts_used,omitempty"`
	CreatedAt           time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at" bson:"updated_at"`
}

// TicketNumberFormat builds the immutable ticket number for a sequence value,
// e.g. TKT000042.
func TicketNumberFormat(seq int64) string {
	return fmt.Sprintf("TKT%06d", seq)
}
