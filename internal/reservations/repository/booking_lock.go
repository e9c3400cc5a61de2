package repository

import (
	"context"
	"fmt"
	"time"

	reserrors "innkeep/internal/reservations/errors"
	"innkeep/pkg/config"
	"innkeep/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const BookingLocksCollection = "Booking_locks"

// BookingLockRepository hands out per-room advisory locks. Acquire relies
// on the unique _id constraint: the second insert for the same room fails
// with a duplicate key, which surfaces as ErrLockHeld.
type BookingLockRepository interface {
	Acquire(ctx context.Context, roomID string, ttl time.Duration) (string, error)
	Release(ctx context.Context, lockID string) error
}

type mongoBookingLockRepository struct {
	collection *mongo.Collection
}

func NewBookingLockRepository(cfg *config.Config) BookingLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingLockRepository{
		collection: db.Collection(BookingLocksCollection),
	}
}

func (r *mongoBookingLockRepository) Acquire(ctx context.Context, roomID string, ttl time.Duration) (string, error) {
	lockID := fmt.Sprintf("room_lock_%s", roomID)
	now := time.Now().UTC()

	lock := &model.BookingLock{
		ID:        lockID,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}

	_, err := r.collection.InsertOne(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", reserrors.ErrLockHeld
		}
		return "", fmt.Errorf("failed to acquire booking lock: %w", err)
	}
	return lockID, nil
}

func (r *mongoBookingLockRepository) Release(ctx context.Context, lockID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": lockID})
	return err
}
