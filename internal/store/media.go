package store

import (
	"context"
	"time"

	"clippie/media-api/db"
	"clippie/media-api/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Media struct {
	db *db.Manager
}

func NewMedia(m *db.Manager) *Media {
	return &Media{db: m}
}

func (s *Media) col(ctx context.Context) (*mongo.Collection, error) {
	d, err := s.db.Ensure(ctx)
	if err != nil {
		return nil, err
	}

	return d.Collection("media"), nil
}

// EnsureIndexes creates the owner/created_at index backing ListByOwner
func (s *Media) EnsureIndexes(ctx context.Context, d *mongo.Database) error {
	_, err := d.Collection("media").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "created_at", Value: -1},
		},
	})
	return err
}

func (s *Media) Insert(ctx context.Context, m *model.MediaRecord) error {
	col, err := s.col(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now

	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}

	_, err = col.InsertOne(ctx, m)
	return err
}

// ListByOwner returns all records owned by the given user, newest
// first. No matches yields an empty slice, not an error
func (s *Media) ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]model.MediaRecord, error) {
	col, err := s.col(ctx)
	if err != nil {
		return nil, err
	}

	cur, err := col.Find(ctx, bson.M{"user_id": owner},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []model.MediaRecord{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// Delete removes a record by id regardless of who owns it
func (s *Media) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	col, err := s.col(ctx)
	if err != nil {
		return 0, err
	}

	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}

	return res.DeletedCount, nil
}

// DeleteOwned removes a record only when it belongs to owner
func (s *Media) DeleteOwned(ctx context.Context, id, owner primitive.ObjectID) (int64, error) {
	col, err := s.col(ctx)
	if err != nil {
		return 0, err
	}

	res, err := col.DeleteOne(ctx, bson.M{"_id": id, "user_id": owner})
	if err != nil {
		return 0, err
	}

	return res.DeletedCount, nil
}
