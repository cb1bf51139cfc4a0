package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ostrich-systems/field-service-api/internal/core/domain"
	"github.com/ostrich-systems/field-service-api/internal/core/ports"
)

// NotificationService exposes the per-user feed.
type NotificationService struct {
	repo ports.NotificationRepository
	log  zerolog.Logger
}

func NewNotificationService(repo ports.NotificationRepository, log zerolog.Logger) *NotificationService {
	return &NotificationService{repo: repo, log: log}
}

// List returns the newest notifications plus the user's unread count.
func (s *NotificationService) List(ctx context.Context, f ports.NotificationsFilter) ([]*domain.Notification, int64, error) {
	f.Limit = clampLimit(f.Limit)
	items, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.repo.UnreadCount(ctx, f.UserID)
	if err != nil {
		return nil, 0, err
	}
	return items, unread, nil
}

// MarkRead flips one notification to read; marking twice is a no-op.
func (s *NotificationService) MarkRead(ctx context.Context, id int64) error {
	return s.repo.MarkRead(ctx, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	n, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.Debug().Int64("user_id", userID).Int64("count", n).Msg("notifications marked read")
	}
	return n, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	return s.repo.UnreadCount(ctx, userID)
}
