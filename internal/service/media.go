package service

import (
	"context"
	"fmt"

	"clippie/media-api/internal/model"
	"clippie/media-api/validators"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MediaStore is what the CRUD service needs from the record store
type MediaStore interface {
	Insert(ctx context.Context, m *model.MediaRecord) error
	ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]model.MediaRecord, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	DeleteOwned(ctx context.Context, id, owner primitive.ObjectID) (int64, error)
}

// MediaDraft is the client payload for a new record. Controls and
// Resolution are optional and defaulted at creation
type MediaDraft struct {
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	FileType     string            `json:"fileType"`
	FileURL      string            `json:"fileUrl"`
	ThumbnailURL string            `json:"thumbnailUrl"`
	Controls     *bool             `json:"controls,omitempty"`
	Resolution   *model.Resolution `json:"resolution,omitempty"`
}

// Media implements the session-scoped list/create/delete operations.
// Every operation rejects callers without a resolved identity before
// touching storage
type Media struct {
	Users   UserStore
	Records MediaStore

	// OwnerDelete gates the ownership check on delete. Off reproduces
	// the historical delete-any-record-by-id behavior
	OwnerDelete bool
}

func NewMedia(users UserStore, records MediaStore, ownerDelete bool) *Media {
	return &Media{Users: users, Records: records, OwnerDelete: ownerDelete}
}

// ListMine returns the caller's records, newest first. A caller whose
// session no longer maps to a live user is treated as unauthorized
func (m *Media) ListMine(ctx context.Context, ident *model.Identity) ([]model.MediaRecord, error) {
	user, err := m.resolve(ctx, ident)
	if err != nil {
		return nil, err
	}

	return m.Records.ListByOwner(ctx, user.ID)
}

// Create validates the draft, stamps the caller as owner and persists
// the record with its defaults applied
func (m *Media) Create(ctx context.Context, ident *model.Identity, draft MediaDraft) (*model.MediaRecord, error) {
	user, err := m.resolve(ctx, ident)
	if err != nil {
		return nil, err
	}

	if draft.Title == "" || draft.Description == "" || draft.ThumbnailURL == "" || draft.FileURL == "" {
		return nil, fmt.Errorf("%w: missing required fields", ErrValidation)
	}

	if err := validators.TitleValidator(draft.Title); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	if err := validators.DescriptionValidator(draft.Description); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	if err := validators.FileTypeValidator(draft.FileType); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	record := &model.MediaRecord{
		UserID:       user.ID,
		Title:        draft.Title,
		Description:  draft.Description,
		FileType:     draft.FileType,
		FileURL:      draft.FileURL,
		ThumbnailURL: draft.ThumbnailURL,
		Controls:     true,
		Resolution:   model.DefaultResolution,
	}

	if draft.Controls != nil {
		record.Controls = *draft.Controls
	}

	if draft.Resolution != nil {
		record.Resolution = *draft.Resolution
	}

	if err := m.Records.Insert(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

// Delete removes a record by id. With OwnerDelete set only records the
// caller owns can go, otherwise any id deletes whatever it names
func (m *Media) Delete(ctx context.Context, ident *model.Identity, id string) error {
	user, err := m.resolve(ctx, ident)
	if err != nil {
		return err
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: invalid media id", ErrValidation)
	}

	if m.OwnerDelete {
		deleted, err := m.Records.DeleteOwned(ctx, oid, user.ID)
		if err != nil {
			return err
		}

		if deleted == 0 {
			return ErrNotFound
		}

		return nil
	}

	_, err = m.Records.Delete(ctx, oid)
	return err
}

// resolve turns the session identity back into a live user row
func (m *Media) resolve(ctx context.Context, ident *model.Identity) (*model.User, error) {
	if ident == nil {
		return nil, ErrUnauthorized
	}

	user, err := m.Users.FindByEmail(ctx, NormalizeEmail(ident.Email))
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, ErrUnauthorized
	}

	return user, nil
}
