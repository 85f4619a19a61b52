// Package store contains the MongoDB-backed persistence layer
package store

import (
	"context"
	"errors"
	"time"

	"clippie/media-api/db"
	"clippie/media-api/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicate is returned when an insert violates a unique index
var ErrDuplicate = errors.New("duplicate key")

type Users struct {
	db *db.Manager
}

func NewUsers(m *db.Manager) *Users {
	return &Users{db: m}
}

func (s *Users) col(ctx context.Context) (*mongo.Collection, error) {
	d, err := s.db.Ensure(ctx)
	if err != nil {
		return nil, err
	}

	return d.Collection("users"), nil
}

// EnsureIndexes creates the unique indexes on email and username.
// Registered as a connection hook so they exist before the first write
func (s *Users) EnsureIndexes(ctx context.Context, d *mongo.Database) error {
	_, err := d.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}

// FindByEmail returns the user with the given (already normalized)
// email, or nil when no such user exists
func (s *Users) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	col, err := s.col(ctx)
	if err != nil {
		return nil, err
	}

	var u model.User
	err = col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}

		return nil, err
	}

	return &u, nil
}

func (s *Users) FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	col, err := s.col(ctx)
	if err != nil {
		return nil, err
	}

	var u model.User
	err = col.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}

		return nil, err
	}

	return &u, nil
}

// Insert persists a new user. The caller provides the password hash,
// hashing never happens here
func (s *Users) Insert(ctx context.Context, u *model.User) error {
	col, err := s.col(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now

	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}

	_, err = col.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}

		return err
	}

	return nil
}
