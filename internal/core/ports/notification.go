package ports

import (
	"context"

	"github.com/ostrich-systems/field-service-api/internal/core/domain"
)

// NotificationsFilter carries list parameters for a user's feed.
type NotificationsFilter struct {
	UserID     int64
	Limit      int // clamped by the service to [1,100]
	UnreadOnly bool
}

// NotificationRepository defines persistence for the notification feed.
type NotificationRepository interface {
	Insert(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	// List returns notifications ordered by created_at descending.
	List(ctx context.Context, f NotificationsFilter) ([]*domain.Notification, error)
	// MarkRead flips a single notification to read. Idempotent: marking an
	// already-read notification is a no-op. Unknown ids yield
	// domain.ErrNotificationNotFound.
	MarkRead(ctx context.Context, id int64) error
	// MarkAllRead flips every unread notification for the user and returns
	// how many were updated.
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
	UnreadCount(ctx context.Context, userID int64) (int64, error)
}

// NotificationService exposes the feed to the transport layer.
type NotificationService interface {
	List(ctx context.Context, f NotificationsFilter) ([]*domain.Notification, int64, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
	UnreadCount(ctx context.Context, userID int64) (int64, error)
}

// NotificationEvent is the DTO handed to the fan-out dispatcher when a ticket
// mutation should surface in the assignee's feed.
type NotificationEvent struct {
	UserID   int64
	Title    string
	Message  string
	Type     domain.NotificationType
	TicketID *int64
}

// NotificationPublisher enqueues feed entries for asynchronous delivery.
type NotificationPublisher interface {
	Publish(event NotificationEvent)
}
