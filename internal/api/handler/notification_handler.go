package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ostrich-systems/field-service-api/internal/core/domain"
	"github.com/ostrich-systems/field-service-api/internal/core/ports"
)

// NotificationHandler handles the technician notification feed.
type NotificationHandler struct {
	service ports.NotificationService
}

func NewNotificationHandler(service ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

type notificationResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	TicketID  *int64    `json:"ticket_id,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type notificationListResponse struct {
	Notifications []notificationResponse `json:"notifications"`
	UnreadCount   int64                  `json:"unread_count"`
}

type markAllReadResponse struct {
	MarkedRead int64 `json:"marked_read"`
}

type unreadCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}

func toNotifications(items []*domain.Notification) []notificationResponse {
	out := make([]notificationResponse, len(items))
	for i, n := range items {
		out[i] = notificationResponse{
			ID:        n.ID,
			Title:     n.Title,
			Message:   n.Message,
			Type:      string(n.Type),
			TicketID:  n.TicketID,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		}
	}
	return out
}

// List returns the caller's feed, newest first.
//
// @Summary      List notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        limit        query     int   false  "Page size (default 10, max 100)"
// @Param        unread_only  query     bool  false  "Only unread entries"
// @Success      200          {object}  notificationListResponse
// @Failure      401          {object}  map[string]string
// @Router       /api/v1/notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	unreadOnly, _ := strconv.ParseBool(c.QueryParam("unread_only"))

	items, unread, err := h.service.List(c.Request().Context(), ports.NotificationsFilter{
		UserID:     identity.UserID,
		Limit:      limit,
		UnreadOnly: unreadOnly,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notificationListResponse{
		Notifications: toNotifications(items),
		UnreadCount:   unread,
	})
}

// MarkRead flips one notification to read.
//
// @Summary      Mark a notification read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Notification id"
// @Success      204  "No Content"
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.MarkRead(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// MarkAllRead flips every unread notification for the caller.
//
// @Summary      Mark all notifications read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  markAllReadResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/notifications/mark-all-read [put]
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	count, err := h.service.MarkAllRead(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, markAllReadResponse{MarkedRead: count})
}

// UnreadCount returns the caller's unread badge count.
//
// @Summary      Unread notification count
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  unreadCountResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	count, err := h.service.UnreadCount(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, unreadCountResponse{UnreadCount: count})
}
