package service

import (
	"context"
	"strings"
	"testing"

	"clippie/media-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seedUser(t *testing.T, users *fakeUsers, username, email string) *model.User {
	t.Helper()

	u := &model.User{
		Email:    email,
		Username: username,
		Role:     model.RoleUser,
	}
	require.NoError(t, users.Insert(context.Background(), u))
	return u
}

func identityOf(u *model.User) *model.Identity {
	return &model.Identity{ID: u.ID.Hex(), Username: u.Username, Email: u.Email}
}

func validDraft() MediaDraft {
	return MediaDraft{
		Title:        "My clip",
		Description:  "A short description",
		FileType:     "video",
		FileURL:      "/v/1",
		ThumbnailURL: "/t/1",
	}
}

func TestMediaRejectsAnonymousCaller(t *testing.T) {
	users := &fakeUsers{}
	records := &fakeMedia{}
	m := NewMedia(users, records, true)
	ctx := context.Background()

	_, err := m.ListMine(ctx, nil)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = m.Create(ctx, nil, validDraft())
	assert.ErrorIs(t, err, ErrUnauthorized)

	err = m.Delete(ctx, nil, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrUnauthorized)

	assert.Zero(t, records.count(), "no persistence side effect allowed")
}

func TestMediaRejectsStaleIdentity(t *testing.T) {
	users := &fakeUsers{}
	records := &fakeMedia{}
	m := NewMedia(users, records, true)

	// Token is fine but the account behind it is gone
	ghost := &model.Identity{
		ID:    primitive.NewObjectID().Hex(),
		Email: "gone@example.com",
	}

	_, err := m.ListMine(context.Background(), ghost)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCreateMissingFields(t *testing.T) {
	breakField := map[string]func(*MediaDraft){
		"title":        func(d *MediaDraft) { d.Title = "" },
		"description":  func(d *MediaDraft) { d.Description = "" },
		"thumbnailUrl": func(d *MediaDraft) { d.ThumbnailURL = "" },
		"fileUrl":      func(d *MediaDraft) { d.FileURL = "" },
	}

	for name, mutate := range breakField {
		t.Run(name, func(t *testing.T) {
			users := &fakeUsers{}
			records := &fakeMedia{}
			m := NewMedia(users, records, true)

			u := seedUser(t, users, "jane", "jane@example.com")

			draft := validDraft()
			mutate(&draft)

			_, err := m.Create(context.Background(), identityOf(u), draft)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Zero(t, records.count(), "nothing may be persisted")
		})
	}
}

func TestCreateFieldBounds(t *testing.T) {
	users := &fakeUsers{}
	records := &fakeMedia{}
	m := NewMedia(users, records, true)

	u := seedUser(t, users, "jane", "jane@example.com")
	ctx := context.Background()

	short := validDraft()
	short.Title = "ab"
	_, err := m.Create(ctx, identityOf(u), short)
	assert.ErrorIs(t, err, ErrValidation)

	long := validDraft()
	long.Description = strings.Repeat("x", 201)
	_, err = m.Create(ctx, identityOf(u), long)
	assert.ErrorIs(t, err, ErrValidation)

	badType := validDraft()
	badType.FileType = "gif"
	_, err = m.Create(ctx, identityOf(u), badType)
	assert.ErrorIs(t, err, ErrValidation)

	assert.Zero(t, records.count())
}

func TestCreateAppliesDefaults(t *testing.T) {
	users := &fakeUsers{}
	records := &fakeMedia{}
	m := NewMedia(users, records, true)

	u := seedUser(t, users, "jane", "jane@example.com")

	record, err := m.Create(context.Background(), identityOf(u), validDraft())
	require.NoError(t, err)

	assert.Equal(t, u.ID, record.UserID)
	assert.True(t, record.Controls)
	assert.Equal(t, model.Resolution{Width: 1080, Height: 1920}, record.Resolution)
	assert.False(t, record.ID.IsZero())
	assert.False(t, record.CreatedAt.IsZero())
}

func TestCreateHonorsOverrides(t *testing.T) {
	users := &fakeUsers{}
	records := &fakeMedia{}
	m := NewMedia(users, records, true)

	u := seedUser(t, users, "jane", "jane@example.com")

	off := false
	draft := validDraft()
	draft.Controls = &off
	draft.Resolution = &model.Resolution{Width: 640, Height: 360}

	record, err := m.Create(context.Background(), identityOf(u), draft)
	require.NoError(t, err)

	assert.False(t, record.Controls)
	assert.Equal(t, model.Resolution{Width: 640, Height: 360}, record.Resolution)
}

func TestCreateThenListRoundTrip(t *testing.T) {
	users := &fakeUsers{}
	records := &fakeMedia{}
	m := NewMedia(users, records, true)

	u := seedUser(t, users, "jane", "jane@example.com")
	ctx := context.Background()

	draft := MediaDraft{
		Title:        "T.T",
		Description:  "D.D",
		FileType:     "video",
		FileURL:      "/v/1",
		ThumbnailURL: "/t/1",
	}

	created, err := m.Create(ctx, identityOf(u), draft)
	require.NoError(t, err)

	listed, err := m.ListMine(ctx, identityOf(u))
	require.NoError(t, err)

	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
	assert.Equal(t, u.ID, listed[0].UserID)
	assert.True(t, listed[0].Controls)
	assert.Equal(t, model.DefaultResolution, listed[0].Resolution)
}

func TestListMineOrdering(t *testing.T) {
	users := &fakeUsers{}
	records := &fakeMedia{}
	m := NewMedia(users, records, true)

	u := seedUser(t, users, "jane", "jane@example.com")
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		draft := validDraft()
		draft.Title = title
		_, err := m.Create(ctx, identityOf(u), draft)
		require.NoError(t, err)
	}

	listed, err := m.ListMine(ctx, identityOf(u))
	require.NoError(t, err)

	require.Len(t, listed, 3)
	assert.Equal(t, "third", listed[0].Title)
	assert.Equal(t, "second", listed[1].Title)
	assert.Equal(t, "first", listed[2].Title)
}

func TestListMineEmpty(t *testing.T) {
	users := &fakeUsers{}
	records := &fakeMedia{}
	m := NewMedia(users, records, true)

	u := seedUser(t, users, "jane", "jane@example.com")

	listed, err := m.ListMine(context.Background(), identityOf(u))
	require.NoError(t, err)
	assert.NotNil(t, listed)
	assert.Empty(t, listed)
}

func TestListMineScopedToOwner(t *testing.T) {
	users := &fakeUsers{}
	records := &fakeMedia{}
	m := NewMedia(users, records, true)
	ctx := context.Background()

	alice := seedUser(t, users, "alice", "alice@example.com")
	bob := seedUser(t, users, "bobby", "bob@example.com")

	_, err := m.Create(ctx, identityOf(alice), validDraft())
	require.NoError(t, err)

	listed, err := m.ListMine(ctx, identityOf(bob))
	require.NoError(t, err)
	assert.Empty(t, listed, "bob must not see alice's records")
}

func TestDeleteOwnRecord(t *testing.T) {
	users := &fakeUsers{}
	records := &fakeMedia{}
	m := NewMedia(users, records, true)

	u := seedUser(t, users, "jane", "jane@example.com")
	ctx := context.Background()

	created, err := m.Create(ctx, identityOf(u), validDraft())
	require.NoError(t, err)

	require.NoError(t, m.Delete(ctx, identityOf(u), created.ID.Hex()))
	assert.Zero(t, records.count())
}

// With ownership enforcement on, someone else's id is indistinguishable
// from a missing record
func TestDeleteForeignRecordGuarded(t *testing.T) {
	users := &fakeUsers{}
	records := &fakeMedia{}
	m := NewMedia(users, records, true)
	ctx := context.Background()

	alice := seedUser(t, users, "alice", "alice@example.com")
	bob := seedUser(t, users, "bobby", "bob@example.com")

	created, err := m.Create(ctx, identityOf(alice), validDraft())
	require.NoError(t, err)

	err = m.Delete(ctx, identityOf(bob), created.ID.Hex())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, records.count(), "alice's record must survive")
}

// With enforcement off the historical behavior applies: any
// authenticated user can delete any record by id
func TestDeleteForeignRecordUnguarded(t *testing.T) {
	users := &fakeUsers{}
	records := &fakeMedia{}
	m := NewMedia(users, records, false)
	ctx := context.Background()

	alice := seedUser(t, users, "alice", "alice@example.com")
	bob := seedUser(t, users, "bobby", "bob@example.com")

	created, err := m.Create(ctx, identityOf(alice), validDraft())
	require.NoError(t, err)

	require.NoError(t, m.Delete(ctx, identityOf(bob), created.ID.Hex()))
	assert.Zero(t, records.count(), "record is gone, ownership was never checked")
}

func TestDeleteInvalidID(t *testing.T) {
	users := &fakeUsers{}
	records := &fakeMedia{}
	m := NewMedia(users, records, true)

	u := seedUser(t, users, "jane", "jane@example.com")

	err := m.Delete(context.Background(), identityOf(u), "not-an-object-id")
	assert.ErrorIs(t, err, ErrValidation)
}
