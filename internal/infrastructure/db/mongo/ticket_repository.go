package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ostrich-systems/field-service-api/internal/core/domain"
	"github.com/ostrich-systems/field-service-api/internal/core/ports"
)

const ticketsCollection = "service_tickets"

// TicketRepository is the MongoDB implementation of ports.TicketRepository.
type TicketRepository struct {
	collection *mongo.Collection
	timeout    time.Duration
}

func NewTicketRepository(db *mongo.Database) *TicketRepository {
	return &TicketRepository{
		collection: db.Collection(ticketsCollection),
		timeout:    defaultTimeout,
	}
}

// ListAssigned returns a page of the staff member's tickets matching the
// filter, ordered by scheduled_date ascending, plus the total match count.
func (r *TicketRepository) ListAssigned(ctx context.Context, f ports.AssignedTicketsFilter) ([]*domain.Ticket, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	filter := bson.M{
		"assigned_staff_id": f.StaffID,
		"status":            bson.M{"$in": f.Statuses},
	}
	if f.Priority != "" {
		filter["priority"] = f.Priority
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count assigned tickets: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "scheduled_date", Value: 1}}).
		SetSkip(int64(f.Offset)).
		SetLimit(int64(f.Limit))

	tickets, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}

// ListCompleted returns the staff member's COMPLETED tickets, most recently
// updated first, plus the total count before pagination.
func (r *TicketRepository) ListCompleted(ctx context.Context, staffID int64, limit, offset int) ([]*domain.Ticket, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	filter := bson.M{
		"assigned_staff_id": staffID,
		"status":            domain.StatusCompleted,
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count completed tickets: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	tickets, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}

// ListScheduledBetween returns the staff member's tickets with scheduled_date
// in [from, to), soonest first.
func (r *TicketRepository) ListScheduledBetween(ctx context.Context, staffID int64, from, to time.Time) ([]*domain.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	filter := bson.M{
		"assigned_staff_id": staffID,
		"scheduled_date":    bson.M{"$gte": from, "$lt": to},
	}
	opts := options.Find().SetSort(bson.D{{Key: "scheduled_date", Value: 1}})

	return r.find(ctx, filter, opts)
}

func (r *TicketRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.Ticket, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find tickets: %w", err)
	}
	defer cursor.Close(ctx)

	tickets := make([]*domain.Ticket, 0)
	for cursor.Next(ctx) {
		var t domain.Ticket
		if err := cursor.Decode(&t); err != nil {
			return nil, fmt.Errorf("decode ticket: %w", err)
		}
		tickets = append(tickets, &t)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate tickets: %w", err)
	}
	return tickets, nil
}

func (r *TicketRepository) FindByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var ticket domain.Ticket
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&ticket)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, fmt.Errorf("find ticket: %w", err)
	}
	return &ticket, nil
}

// ApplyStatusUpdate writes the status mutation in a single update. Parts-used
// entries are appended with $push so the ledger accumulates across calls.
func (r *TicketRepository) ApplyStatusUpdate(ctx context.Context, id int64, upd ports.StatusUpdate) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	set := bson.M{
		"status":     upd.Status,
		"updated_at": upd.UpdatedAt,
	}
	if upd.ServiceNotes != "" {
		set["service_notes"] = upd.ServiceNotes
	}
	if upd.WorkPerformed != "" {
		set["work_performed"] = upd.WorkPerformed
	}
	if upd.CompletedDate != nil {
		set["completed_date"] = upd.CompletedDate
	}

	update := bson.M{"$set": set}
	if len(upd.PartsUsed) > 0 {
		update["$push"] = bson.M{"parts_used": bson.M{"$each": upd.PartsUsed}}
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("update ticket status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTicketNotFound
	}
	return nil
}

func (r *TicketRepository) SetLocation(ctx context.Context, id int64, loc domain.GeoPoint, at time.Time) error {
	return r.setFields(ctx, id, bson.M{
		"location":             loc,
		"location_captured_at": at,
		"updated_at":           at,
	})
}

func (r *TicketRepository) SetPhotoRefs(ctx context.Context, id int64, refs []string, at time.Time) error {
	return r.setFields(ctx, id, bson.M{
		"photo_refs": refs,
		"updated_at": at,
	})
}

func (r *TicketRepository) SetSignature(ctx context.Context, id int64, sig domain.Signature) error {
	return r.setFields(ctx, id, bson.M{
		"signature":  sig,
		"updated_at": sig.CapturedAt,
	})
}

func (r *TicketRepository) setFields(ctx context.Context, id int64, fields bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.collection.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("update ticket fields: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTicketNotFound
	}
	return nil
}

func (r *TicketRepository) CountByStatus(ctx context.Context, staffID int64, status domain.TicketStatus) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{
		"assigned_staff_id": staffID,
		"status":            status,
	})
	if err != nil {
		return 0, fmt.Errorf("count tickets by status: %w", err)
	}
	return count, nil
}

// CountCompletedBetween counts COMPLETED tickets last touched in [from, to).
func (r *TicketRepository) CountCompletedBetween(ctx context.Context, staffID int64, from, to time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{
		"assigned_staff_id": staffID,
		"status":            domain.StatusCompleted,
		"updated_at":        bson.M{"$gte": from, "$lt": to},
	})
	if err != nil {
		return 0, fmt.Errorf("count completed tickets: %w", err)
	}
	return count, nil
}

// EnsureIndexes creates the indexes backing the list and count queries.
func (r *TicketRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "ticket_number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{
			{Key: "assigned_staff_id", Value: 1},
			{Key: "status", Value: 1},
			{Key: "scheduled_date", Value: 1},
		}},
		{Keys: bson.D{
			{Key: "assigned_staff_id", Value: 1},
			{Key: "status", Value: 1},
			{Key: "updated_at", Value: -1},
		}},
	})
	if err != nil {
		return fmt.Errorf("create ticket indexes: %w", err)
	}
	return nil
}
