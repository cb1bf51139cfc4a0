package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ostrich-systems/field-service-api/internal/core/domain"
)

const customersCollection = "customers"

// CustomerRepository is the MongoDB implementation of
// ports.CustomerRepository. Customer records are owned by the back office;
// this service only reads them.
type CustomerRepository struct {
	collection *mongo.Collection
	timeout    time.Duration
}

func NewCustomerRepository(db *mongo.Database) *CustomerRepository {
	return &CustomerRepository{
		collection: db.Collection(customersCollection),
		timeout:    defaultTimeout,
	}
}

func (r *CustomerRepository) FindByID(ctx context.Context, id int64) (*domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var customer domain.Customer
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&customer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find customer: %w", err)
	}
	return &customer, nil
}

// FindByIDs fetches customers in one round trip, keyed by id. Missing ids are
// absent from the map.
func (r *CustomerRepository) FindByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Customer, error) {
	result := make(map[int64]*domain.Customer, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find customers: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var customer domain.Customer
		if err := cursor.Decode(&customer); err != nil {
			return nil, fmt.Errorf("decode customer: %w", err)
		}
		result[customer.ID] = &customer
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}
	return result, nil
}
