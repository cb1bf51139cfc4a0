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
)

const (
	otpCollection  = "otp_records"
	otpSequence    = "otp_record_id"
	otpDocumentTTL = 24 * time.Hour
)

// OTPRepository is the MongoDB implementation of ports.OTPRepository.
type OTPRepository struct {
	db         *mongo.Database
	collection *mongo.Collection
	timeout    time.Duration
}

func NewOTPRepository(db *mongo.Database) *OTPRepository {
	return &OTPRepository{
		db:         db,
		collection: db.Collection(otpCollection),
		timeout:    defaultTimeout,
	}
}

func (r *OTPRepository) Insert(ctx context.Context, rec *domain.OTPRecord) (*domain.OTPRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	id, err := nextSequence(ctx, r.db, otpSequence)
	if err != nil {
		return nil, err
	}

	saved := *rec
	saved.ID = id
	if _, err := r.collection.InsertOne(ctx, &saved); err != nil {
		return nil, fmt.Errorf("insert otp record: %w", err)
	}
	return &saved, nil
}

// FindLatestSent returns the newest "sent" record matching the contact and
// code. Expiry is left to the caller.
func (r *OTPRepository) FindLatestSent(ctx context.Context, phone, code string) (*domain.OTPRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	filter := bson.M{
		"phone_number": phone,
		"otp_code":     code,
		"status":       domain.OTPStatusSent,
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var rec domain.OTPRecord
	err := r.collection.FindOne(ctx, filter, opts).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvalidOTP
		}
		return nil, fmt.Errorf("find otp record: %w", err)
	}
	return &rec, nil
}

// MarkVerified transitions the record sent -> verified. The status guard in
// the filter makes the transition single-shot under concurrent verifies.
func (r *OTPRepository) MarkVerified(ctx context.Context, id int64, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.collection.UpdateOne(
		ctx,
		bson.M{"id": id, "status": domain.OTPStatusSent},
		bson.M{"$set": bson.M{
			"status":      domain.OTPStatusVerified,
			"verified_at": at,
		}},
	)
	if err != nil {
		return fmt.Errorf("mark otp verified: %w", err)
	}
	if res.ModifiedCount == 0 {
		return domain.ErrInvalidOTP
	}
	return nil
}

// EnsureIndexes creates the lookup index and a TTL index that reaps stale
// records a day after creation.
func (r *OTPRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{
			{Key: "phone_number", Value: 1},
			{Key: "otp_code", Value: 1},
			{Key: "created_at", Value: -1},
		}},
		{
			Keys:    bson.D{{Key: "created_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(otpDocumentTTL.Seconds())),
		},
	})
	if err != nil {
		return fmt.Errorf("create otp indexes: %w", err)
	}
	return nil
}
