package domain

import (
	"errors"
	"time"
)

// NotificationType classifies entries in a technician's feed.
type NotificationType string

const (
	NotificationTicketAssigned NotificationType = "ticket_assigned"
	NotificationTicketUpdated  NotificationType = "ticket_updated"
	NotificationSystemMessage  NotificationType = "system_message"
	NotificationReminder       NotificationType = "reminder"
)

var ErrNotificationNotFound = errors.New("notification not found")

// Notification is a single per-user feed entry. The only mutation after
// creation is the unread -> read transition.
type Notification struct {
	ID        int64            `json:"id" bson:"id"`
	UserID    int64            `json:"user_id" bson:"user_id"`
	Title     string           `json:"title" bson:"title"`
	Message   string           `json:"message" bson:"message"`
	Type      NotificationType `json:"type" bson:"type"`
	TicketID  *int64           `json:"ticket_id,omitempty" bson:"ticket_id,omitempty"`
	IsRead    bool             `json:"is_read" bson:"is_read"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
}
