package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"clippie/media-api/internal/model"
	"clippie/media-api/internal/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeUsers is an in-memory UserStore enforcing the same email and
// username uniqueness the real unique indexes do
type fakeUsers struct {
	mu      sync.Mutex
	users   []*model.User
	inserts int
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}

	return nil, nil
}

func (f *fakeUsers) FindByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}

	return nil, nil
}

func (f *fakeUsers) Insert(_ context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.users {
		if existing.Email == u.Email || existing.Username == u.Username {
			return store.ErrDuplicate
		}
	}

	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	u.CreatedAt = time.Now().UTC()

	cp := *u
	f.users = append(f.users, &cp)
	f.inserts++
	return nil
}

// fakeMedia is an in-memory MediaStore. Creation times advance by one
// second per insert so ordering is deterministic
type fakeMedia struct {
	mu      sync.Mutex
	records []model.MediaRecord
	inserts int
}

var fakeEpoch = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func (f *fakeMedia) Insert(_ context.Context, m *model.MediaRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	m.CreatedAt = fakeEpoch.Add(time.Duration(f.inserts) * time.Second)
	m.UpdatedAt = m.CreatedAt

	f.records = append(f.records, *m)
	f.inserts++
	return nil
}

func (f *fakeMedia) ListByOwner(_ context.Context, owner primitive.ObjectID) ([]model.MediaRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []model.MediaRecord{}
	for _, r := range f.records {
		if r.UserID == owner {
			out = append(out, r)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

func (f *fakeMedia) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, r := range f.records {
		if r.ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return 1, nil
		}
	}

	return 0, nil
}

func (f *fakeMedia) DeleteOwned(_ context.Context, id, owner primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, r := range f.records {
		if r.ID == id && r.UserID == owner {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return 1, nil
		}
	}

	return 0, nil
}

func (f *fakeMedia) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}
