package ports

import (
	"context"
	"time"
)

// DashboardStats is the counters block of the overview.
type DashboardStats struct {
	TotalAssigned  int64
	PendingTickets int64
	InProgress     int64
	CompletedToday int64
}

// CompletedTicketSummary is the compact recent-completion list item.
type CompletedTicketSummary struct {
	ID               int64
	TicketNumber     string
	CustomerName     string
	IssueDescription string
	CompletedAt      time.Time
}

// DashboardSummary is the technician's landing view: derived counts plus the
// soonest open work and the latest completions.
type DashboardSummary struct {
	TechnicianName  string
	TechnicianID    int64
	Stats           DashboardStats
	AssignedTickets []TicketSummary          // up to 5, soonest scheduled first
	RecentCompleted []CompletedTicketSummary // up to 3, most recent first
}

// DashboardService is a pure read-side composition over the ticket
// repository; it owns no state.
type DashboardService interface {
	Overview(ctx context.Context, staffID int64) (*DashboardSummary, error)
}
