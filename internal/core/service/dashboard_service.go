package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ostrich-systems/field-service-api/internal/core/domain"
	"github.com/ostrich-systems/field-service-api/internal/core/ports"
)

const (
	overviewAssignedLimit  = 5
	overviewCompletedLimit = 3
)

// DashboardService composes ticket repository reads into the technician's
// landing view. Pure read side; owns no state.
type DashboardService struct {
	tickets   ports.TicketRepository
	customers ports.CustomerRepository
	users     ports.UserRepository
}

func NewDashboardService(
	tickets ports.TicketRepository,
	customers ports.CustomerRepository,
	users ports.UserRepository,
) *DashboardService {
	return &DashboardService{tickets: tickets, customers: customers, users: users}
}

// Overview derives the summary counts and recent-activity lists.
// "Completed today" means updated_at falls on the current calendar date in
// server-local time.
func (s *DashboardService) Overview(ctx context.Context, staffID int64) (*ports.DashboardSummary, error) {
	pending, err := s.tickets.CountByStatus(ctx, staffID, domain.StatusScheduled)
	if err != nil {
		return nil, err
	}
	inProgress, err := s.tickets.CountByStatus(ctx, staffID, domain.StatusInProgress)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	completedToday, err := s.tickets.CountCompletedBetween(ctx, staffID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	assigned, _, err := s.tickets.ListAssigned(ctx, ports.AssignedTicketsFilter{
		StaffID:  staffID,
		Statuses: []domain.TicketStatus{domain.StatusScheduled, domain.StatusInProgress},
		Limit:    overviewAssignedLimit,
	})
	if err != nil {
		return nil, err
	}

	completed, _, err := s.tickets.ListCompleted(ctx, staffID, overviewCompletedLimit, 0)
	if err != nil {
		return nil, err
	}

	techName := fmt.Sprintf("Technician %d", staffID)
	if staff, err := s.users.FindByID(ctx, staffID); err == nil {
		techName = staff.FullName
	}

	assignedSummaries, err := s.summarize(ctx, assigned)
	if err != nil {
		return nil, err
	}

	recent := make([]ports.CompletedTicketSummary, len(completed))
	customerIDs := make([]int64, len(completed))
	for i, t := range completed {
		customerIDs[i] = t.CustomerID
	}
	completedCustomers, err := s.customers.FindByIDs(ctx, customerIDs)
	if err != nil {
		return nil, err
	}
	for i, t := range completed {
		name := "Unknown Customer"
		if c := completedCustomers[t.CustomerID]; c != nil && c.ContactPerson != "" {
			name = c.ContactPerson
		}
		recent[i] = ports.CompletedTicketSummary{
			ID:               t.ID,
			TicketNumber:     t.TicketNumber,
			CustomerName:     name,
			IssueDescription: t.IssueDescription,
			CompletedAt:      t.UpdatedAt,
		}
	}

	return &ports.DashboardSummary{
		TechnicianName: techName,
		TechnicianID:   staffID,
		Stats: ports.DashboardStats{
			TotalAssigned:  pending + inProgress,
			PendingTickets: pending,
			InProgress:     inProgress,
			CompletedToday: completedToday,
		},
		AssignedTickets: assignedSummaries,
		RecentCompleted: recent,
	}, nil
}

func (s *DashboardService) summarize(ctx context.Context, tickets []*domain.Ticket) ([]ports.TicketSummary, error) {
	ids := make([]int64, len(tickets))
	for i, t := range tickets {
		ids[i] = t.CustomerID
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
