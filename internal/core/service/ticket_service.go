package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ostrich-systems/field-service-api/internal/core/domain"
	"github.com/ostrich-systems/field-service-api/internal/core/ports"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// TicketService implements the ticket lifecycle use cases.
type TicketService struct {
	tickets   ports.TicketRepository
	customers ports.CustomerRepository
	users     ports.UserRepository
	notifier  ports.NotificationPublisher
	log       zerolog.Logger
}

func NewTicketService(
	tickets ports.TicketRepository,
	customers ports.CustomerRepository,
	users ports.UserRepository,
	notifier ports.NotificationPublisher,
	log zerolog.Logger,
) *TicketService {
	return &TicketService{
		tickets:   tickets,
		customers: customers,
		users:     users,
		notifier:  notifier,
		log:       log,
	}
}

// openStatuses is the default working set for the assigned list.
var openStatuses = []domain.TicketStatus{domain.StatusScheduled, domain.StatusInProgress}

// ListAssigned returns the technician's open tickets, soonest scheduled
// first. An explicit status filter narrows within the open set; filtering by
// a status outside it (e.g. COMPLETED) therefore yields an empty page.
func (s *TicketService) ListAssigned(ctx context.Context, in ports.ListAssignedInput) (*ports.TicketListResult, error) {
	statuses := openStatuses
	if in.Status != "" {
		st, err := domain.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		if st != domain.StatusScheduled && st != domain.StatusInProgress {
			return &ports.TicketListResult{Tickets: []ports.TicketSummary{}}, nil
		}
		statuses = []domain.TicketStatus{st}
	}

	var priority domain.TicketPriority
	if in.Priority != "" {
		p, err := domain.ParsePriority(in.Priority)
		if err != nil {
			return nil, err
		}
		priority = p
	}

	filter := ports.AssignedTicketsFilter{
		StaffID:  in.StaffID,
		Statuses: statuses,
		Priority: priority,
		Limit:    clampLimit(in.Limit),
		Offset:   clampOffset(in.Offset),
	}

	tickets, total, err := s.tickets.ListAssigned(ctx, filter)
	if err != nil {
		return nil, err
	}

	summaries, err := s.summarize(ctx, tickets)
	if err != nil {
		return nil, err
	}
	return &ports.TicketListResult{Tickets: summaries, TotalCount: total}, nil
}

// ListCompleted returns the technician's finished tickets, most recently
// completed first.
func (s *TicketService) ListCompleted(ctx context.Context, staffID int64, limit, offset int) (*ports.TicketListResult, error) {
	tickets, total, err := s.tickets.ListCompleted(ctx, staffID, clampLimit(limit), clampOffset(offset))
	if err != nil {
		return nil, err
	}
	summaries, err := s.summarize(ctx, tickets)
	if err != nil {
		return nil, err
	}
	return &ports.TicketListResult{Tickets: summaries, TotalCount: total}, nil
}

// GetDetail returns the full joined view of a single ticket.
func (s *TicketService) GetDetail(ctx context.Context, ticketID int64) (*ports.TicketDetail, error) {
	ticket, err := s.tickets.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	customer := s.customerOrNil(ctx, ticket.CustomerID)

	techName := fmt.Sprintf("Technician %d", ticket.AssignedStaffID)
	if staff, err := s.users.FindByID(ctx, ticket.AssignedStaffID); err == nil {
		techName = staff.FullName
	}

	detail := &ports.TicketDetail{
		TicketSummary:  summaryOf(ticket, customer),
		TechnicianName: techName,
		ServiceNotes:   ticket.ServiceNotes,
		WorkPerformed:  ticket.WorkPerformed,
		CompletedDate:  ticket.CompletedDate,
		Location:       ticket.Location,
		Signature:      ticket.Signature,
		PhotoRefs:      ticket.PhotoRefs,
		PartsUsed:      ticket.PartsUsed,
	}
	if customer != nil {
		detail.CustomerEmail = customer.Email
	} else {
		detail.CustomerEmail = "N/A"
	}
	return detail, nil
}

// UpdateStatus applies a status mutation. Transitions are permissive (any
// status to any other); completed_date is stamped on every entry into
// COMPLETED; parts-used entries accumulate across calls.
func (s *TicketService) UpdateStatus(ctx context.Context, in ports.UpdateStatusInput) (*ports.UpdateStatusResult, error) {
	status, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}

	ticket, err := s.tickets.FindByID(ctx, in.TicketID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	upd := ports.StatusUpdate{
		Status:        status,
		ServiceNotes:  in.Notes,
		WorkPerformed: in.WorkPerformed,
		PartsUsed:     in.PartsUsed,
		UpdatedAt:     now,
	}
	if status == domain.StatusCompleted {
		upd.CompletedDate = &now
	}

	if err := s.tickets.ApplyStatusUpdate(ctx, in.TicketID, upd); err != nil {
		return nil, fmt.Errorf("update ticket %d: %w", in.TicketID, err)
	}

	s.log.Info().
		Int64("ticket_id", in.TicketID).
		Str("from", string(ticket.Status)).
		Str("to", string(status)).
		Int64("actor_id", in.ActorID).
		Msg("ticket status updated")

	ticketID := in.TicketID
	s.notifier.Publish(ports.NotificationEvent{
		UserID:   ticket.AssignedStaffID,
		Title:    "Ticket Updated",
		Message:  fmt.Sprintf("Ticket %s moved to %s", ticket.TicketNumber, status),
		Type:     domain.NotificationTicketUpdated,
		TicketID: &ticketID,
	})

	return &ports.UpdateStatusResult{TicketID: in.TicketID, NewStatus: string(status), UpdatedAt: now}, nil
}

// CaptureLocation overwrites the ticket's captured location; last write wins,
// no history is retained.
func (s *TicketService) CaptureLocation(ctx context.Context, ticketID int64, lat, lng float64) (*ports.LocationAck, error) {
	if _, err := s.tickets.FindByID(ctx, ticketID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	loc := domain.GeoPoint{Latitude: lat, Longitude: lng}
	if err := s.tickets.SetLocation(ctx, ticketID, loc, now); err != nil {
		return nil, fmt.Errorf("capture location for ticket %d: %w", ticketID, err)
	}
	return &ports.LocationAck{TicketID: ticketID, Latitude: lat, Longitude: lng, CapturedAt: now}, nil
}

// AttachPhotos replaces the ticket's photo list with generated references.
func (s *TicketService) AttachPhotos(ctx context.Context, ticketID int64, photoRefs []string) (*ports.PhotosAck, error) {
	if _, err := s.tickets.FindByID(ctx, ticketID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	urls := make([]string, len(photoRefs))
	for i := range photoRefs {
		urls[i] = fmt.Sprintf("/media/tickets/%d/photos/%d.jpg", ticketID, i+1)
	}
	if err := s.tickets.SetPhotoRefs(ctx, ticketID, urls, now); err != nil {
		return nil, fmt.Errorf("attach photos to ticket %d: %w", ticketID, err)
	}
	return &ports.PhotosAck{TicketID: ticketID, PhotoURLs: urls}, nil
}

// AttachSignature overwrites the customer sign-off reference.
func (s *TicketService) AttachSignature(ctx context.Context, ticketID int64, customerName, signatureRef string) (*ports.SignatureAck, error) {
	if _, err := s.tickets.FindByID(ctx, ticketID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	url := signatureRef
	if url == "" {
		url = fmt.Sprintf("/media/tickets/%d/signature.png", ticketID)
	}
	sig := domain.Signature{CustomerName: customerName, Ref: url, CapturedAt: now}
	if err := s.tickets.SetSignature(ctx, ticketID, sig); err != nil {
		return nil, fmt.Errorf("attach signature to ticket %d: %w", ticketID, err)
	}
	return &ports.SignatureAck{TicketID: ticketID, SignatureURL: url, CapturedAt: now}, nil
}

// DaySchedule lists the technician's appointments for one calendar date in
// the server's local zone.
func (s *TicketService) DaySchedule(ctx context.Context, staffID int64, date time.Time) ([]ports.ScheduleEntry, error) {
	from := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	to := from.AddDate(0, 0, 1)

	tickets, err := s.tickets.ListScheduledBetween(ctx, staffID, from, to)
	if err != nil {
		return nil, err
	}

	summaries, err := s.summarize(ctx, tickets)
	if err != nil {
		return nil, err
	}

	entries := make([]ports.ScheduleEntry, len(summaries))
	for i, sum := range summaries {
		entries[i] = ports.ScheduleEntry{
			TicketID:     sum.ID,
			TicketNumber: sum.TicketNumber,
			CustomerName: sum.CustomerName,
			Address:      sum.CustomerAddress,
			StartTime:    sum.ScheduledDate,
			Status:       sum.Status,
			Priority:     sum.Priority,
		}
	}
	return entries, nil
}

// summarize reshapes tickets into display summaries, resolving the customer
// join in one batch.
func (s *TicketService) summarize(ctx context.Context, tickets []*domain.Ticket) ([]ports.TicketSummary, error) {
	ids := make([]int64, 0, len(tickets))
	for _, t := range tickets {
		ids = append(ids, t.CustomerID)
	}
	customers, err := s.customers.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]ports.TicketSummary, len(tickets))
	for i, t := range tickets {
		out[i] = summaryOf(t, customers[t.CustomerID])
	}
	return out, nil
}

func (s *TicketService) customerOrNil(ctx context.Context, id int64) *domain.Customer {
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil
	}
	return customer
}

// summaryOf merges a ticket with its (possibly absent) customer. Display
// defaults mirror the mobile client's expectations.
func summaryOf(t *domain.Ticket, c *domain.Customer) ports.TicketSummary {
	sum := ports.TicketSummary{
		ID:               t.ID,
		TicketNumber:     t.TicketNumber,
		CustomerName:     "Unknown Customer",
		CustomerPhone:    "N/A",
		CustomerAddress:  "",
		ProductName:      "Service Request",
		IssueDescription: t.IssueDescription,
		Status:           string(t.Status),
		Priority:         string(t.Priority),
		ScheduledDate:    t.ScheduledDate,
		AssignedStaffID:  t.AssignedStaffID,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
	if t.ProductSerialNumber != "" {
		sum.ProductName = t.ProductSerialNumber
	}
	if c != nil {
		if c.ContactPerson != "" {
			sum.CustomerName = c.ContactPerson
		}
		if c.Phone != "" {
			sum.CustomerPhone = c.Phone
		}
		sum.CustomerAddress = strings.Trim(c.Address+", "+c.City, ", ")
	}
	return sum
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultPageLimit
	}
	if limit > maxPageLimit {
		return maxPageLimit
	}
	return limit
}

func clampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
