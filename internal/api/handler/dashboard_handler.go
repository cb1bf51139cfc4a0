package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ostrich-systems/field-service-api/internal/core/ports"
)

// DashboardHandler serves the technician landing view.
type DashboardHandler struct {
	service ports.DashboardService
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

type dashboardStatsResponse struct {
	TotalAssigned     int64 `json:"total_assigned"`
	PendingTickets    int64 `json:"pending_tickets"`
	InProgressTickets int64 `json:"in_progress_tickets"`
	CompletedToday    int64 `json:"completed_today"`
}

type completedTicketResponse struct {
	ID               int64     `json:"id"`
	TicketNumber     string    `json:"ticket_number"`
	CustomerName     string    `json:"customer_name"`
	IssueDescription string    `json:"issue_description"`
	CompletedAt      time.Time `json:"completed_at"`
}

type dashboardResponse struct {
	TechnicianName  string                    `json:"technician_name"`
	TechnicianID    int64                     `json:"technician_id"`
	Stats           dashboardStatsResponse    `json:"stats"`
	AssignedTickets []ticketSummaryResponse   `json:"assigned_tickets"`
	RecentCompleted []completedTicketResponse `json:"recent_completed"`
}

// Overview returns the caller's dashboard summary.
//
// @Summary      Dashboard overview
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dashboardResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/dashboard/overview [get]
func (h *DashboardHandler) Overview(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	summary, err := h.service.Overview(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}

	assigned := make([]ticketSummaryResponse, len(summary.AssignedTickets))
	for i, s := range summary.AssignedTickets {
		assigned[i] = toTicketSummary(s)
	}
	completed := make([]completedTicketResponse, len(summary.RecentCompleted))
	for i, s := range summary.RecentCompleted {
		completed[i] = completedTicketResponse{
			ID:               s.ID,
			TicketNumber:     s.TicketNumber,
			CustomerName:     s.CustomerName,
			IssueDescription: s.IssueDescription,
			CompletedAt:      s.CompletedAt,
		}
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		TechnicianName: summary.TechnicianName,
		TechnicianID:   summary.TechnicianID,
		Stats: dashboardStatsResponse{
			TotalAssigned:     summary.Stats.TotalAssigned,
			PendingTickets:    summary.Stats.PendingTickets,
			InProgressTickets: summary.Stats.InProgress,
			CompletedToday:    summary.Stats.CompletedToday,
		},
		AssignedTickets: assigned,
		RecentCompleted: completed,
	})
}
