package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ostrich-systems/field-service-api/internal/core/domain"
	"github.com/ostrich-systems/field-service-api/internal/core/ports"
)

type recordingRepo struct {
	mu     sync.Mutex
	saved  []*domain.Notification
	nextID int64
}

func (r *recordingRepo) Insert(_ context.Context, n *domain.Notification) (*domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	clone := *n
	clone.ID = r.nextID
	r.saved = append(r.saved, &clone)
	return &clone, nil
}

func (r *recordingRepo) List(_ context.Context, _ ports.NotificationsFilter) ([]*domain.Notification, error) {
	return nil, nil
}

func (r *recordingRepo) MarkRead(_ context.Context, _ int64) error { return nil }

func (r *recordingRepo) MarkAllRead(_ context.Context, _ int64) (int64, error) { return 0, nil }

func (r *recordingRepo) UnreadCount(_ context.Context, _ int64) (int64, error) { return 0, nil }

func (r *recordingRepo) snapshot() []*domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Notification, len(r.saved))
	copy(out, r.saved)
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within deadline")
}

func TestDispatcher_DeliversEvents(t *testing.T) {
	repo := &recordingRepo{}
	d := NewDispatcher(4, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	ticketID := int64(9)
	for i := 0; i < 10; i++ {
		d.Publish(ports.NotificationEvent{
			UserID:   int64(i % 3),
			Title:    "Ticket Updated",
			Message:  "status changed",
			Type:     domain.NotificationTicketUpdated,
			TicketID: &ticketID,
		})
	}

	waitFor(t, func() bool { return len(repo.snapshot()) == 10 })

	for _, n := range repo.snapshot() {
		if n.Type != domain.NotificationTicketUpdated || n.TicketID == nil || *n.TicketID != 9 {
			t.Fatalf("unexpected notification: %+v", n)
		}
		if n.IsRead {
			t.Fatalf("notifications must start unread")
		}
		if n.CreatedAt.IsZero() {
			t.Fatalf("created_at must be stamped")
		}
	}
}

func TestDispatcher_PerUserOrdering(t *testing.T) {
	repo := &recordingRepo{}
	d := NewDispatcher(8, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	// All events for one user land on one worker, preserving order.
	for i := 0; i < 20; i++ {
		d.Publish(ports.NotificationEvent{
			UserID:  42,
			Title:   "Ticket Updated",
			Message: string(rune('a' + i)),
			Type:    domain.NotificationTicketUpdated,
		})
	}

	waitFor(t, func() bool { return len(repo.snapshot()) == 20 })

	saved := repo.snapshot()
	for i := 1; i < len(saved); i++ {
		if saved[i].Message < saved[i-1].Message {
			t.Fatalf("events delivered out of order: %q before %q", saved[i-1].Message, saved[i].Message)
		}
	}
}

func TestDispatcher_StopsOnCancel(t *testing.T) {
	repo := &recordingRepo{}
	d := NewDispatcher(2, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)
	cancel()

	// Give workers a moment to observe cancellation; events published after
	// shutdown may sit in the buffer but must not crash.
	time.Sleep(20 * time.Millisecond)
	d.Publish(ports.NotificationEvent{UserID: 1, Type: domain.NotificationSystemMessage})
}
