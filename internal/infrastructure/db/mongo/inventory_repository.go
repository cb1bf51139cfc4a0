package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ostrich-systems/field-service-api/internal/core/domain"
)

const (
	inventoryCollection     = "inventory_items"
	partsRequestsCollection = "parts_requests"
	partsRequestSequence    = "parts_request_id"
)

// InventoryRepository is the MongoDB implementation of
// ports.InventoryRepository.
type InventoryRepository struct {
	db       *mongo.Database
	items    *mongo.Collection
	requests *mongo.Collection
	timeout  time.Duration
}

func NewInventoryRepository(db *mongo.Database) *InventoryRepository {
	return &InventoryRepository{
		db:       db,
		items:    db.Collection(inventoryCollection),
		requests: db.Collection(partsRequestsCollection),
		timeout:  defaultTimeout,
	}
}

func (r *InventoryRepository) ListItems(ctx context.Context) ([]*domain.InventoryItem, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "part_number", Value: 1}})
	cursor, err := r.items.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find inventory items: %w", err)
	}
	defer cursor.Close(ctx)

	items := make([]*domain.InventoryItem, 0)
	for cursor.Next(ctx) {
		var item domain.InventoryItem
		if err := cursor.Decode(&item); err != nil {
			return nil, fmt.Errorf("decode inventory item: %w", err)
		}
		items = append(items, &item)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate inventory items: %w", err)
	}
	return items, nil
}

// InsertRequest persists a parts request, allocating its id and REQ number
// from the shared sequence.
func (r *InventoryRepository) InsertRequest(ctx context.Context, req *domain.PartsRequest) (*domain.PartsRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	seq, err := nextSequence(ctx, r.db, partsRequestSequence)
	if err != nil {
		return nil, err
	}

	saved := *req
	saved.ID = seq
	saved.RequestNumber = domain.RequestNumberFormat(seq)
	if _, err := r.requests.InsertOne(ctx, &saved); err != nil {
		return nil, fmt.Errorf("insert parts request: %w", err)
	}
	return &saved, nil
}
