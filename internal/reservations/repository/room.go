package repository

import (
	"context"
	"errors"
	"fmt"

	reserrors "innkeep/internal/reservations/errors"
	"innkeep/pkg/config"
	"innkeep/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const RoomsCollection = "Rooms"

// RoomCatalog is the engine's read-only view of the room inventory, which
// is owned by the catalog service. Soft-deleted rooms are invisible.
type RoomCatalog interface {
	FindByID(ctx context.Context, roomID string) (*model.Room, error)
}

type mongoRoomCatalog struct {
	collection *mongo.Collection
}

func NewMongoRoomCatalog(cfg *config.Config) RoomCatalog {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoRoomCatalog{
		collection: db.Collection(RoomsCollection),
	}
}

func (r *mongoRoomCatalog) FindByID(ctx context.Context, roomID string) (*model.Room, error) {
	objectID, err := primitive.ObjectIDFromHex(roomID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", reserrors.ErrRoomNotFound, roomID)
	}

	var room model.Room
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID, "is_deleted": false}).Decode(&room)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, reserrors.ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to find room: %w", err)
	}
	return &room, nil
}
