// Package db owns the process-wide MongoDB handle
package db

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var ErrNoURI = errors.New("database uri is not configured")

// DialFunc establishes a client against the given endpoint. Swappable
// in tests
type DialFunc func(ctx context.Context, uri string) (*mongo.Client, error)

func defaultDial(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetMaxPoolSize(10))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return client, nil
}

// Manager lazily establishes a single MongoDB connection and hands the
// cached database out to every caller. Concurrent callers during
// establishment all wait for the same attempt. A failed attempt is
// reported to every waiter and the next call starts over.
type Manager struct {
	uri         string
	name        string
	dial        DialFunc
	dialTimeout time.Duration

	// Run after a successful dial, before the handle is published.
	// Used to create indexes
	onConnect []func(ctx context.Context, db *mongo.Database) error

	group  singleflight.Group
	mu     sync.RWMutex
	client *mongo.Client
	db     *mongo.Database
}

func NewManager(uri, name string) *Manager {
	return &Manager{
		uri:         uri,
		name:        name,
		dial:        defaultDial,
		dialTimeout: 10 * time.Second,
	}
}

// SetDial replaces the dial function. Only meant for tests
func (m *Manager) SetDial(d DialFunc) { m.dial = d }

// OnConnect registers a hook that runs once per successful
// establishment. Must be called before the first Ensure
func (m *Manager) OnConnect(f func(ctx context.Context, db *mongo.Database) error) {
	m.onConnect = append(m.onConnect, f)
}

// Ensure returns the live database handle, dialing it on first use
func (m *Manager) Ensure(ctx context.Context) (*mongo.Database, error) {
	m.mu.RLock()
	if m.db != nil {
		defer m.mu.RUnlock()
		return m.db, nil
	}
	m.mu.RUnlock()

	if m.uri == "" {
		return nil, ErrNoURI
	}

	v, err, _ := m.group.Do("connect", func() (any, error) {
		// A caller that raced past the fast path after someone else
		// finished connecting must not dial again
		m.mu.RLock()
		db := m.db
		m.mu.RUnlock()
		if db != nil {
			return db, nil
		}

		dctx, cancel := context.WithTimeout(context.Background(), m.dialTimeout)
		defer cancel()

		client, err := m.dial(dctx, m.uri)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MongoDB, %w", err)
		}

		db = client.Database(m.name)

		for _, f := range m.onConnect {
			if err := f(dctx, db); err != nil {
				_ = client.Disconnect(dctx)
				return nil, fmt.Errorf("post-connect hook failed, %w", err)
			}
		}

		m.mu.Lock()
		m.client = client
		m.db = db
		m.mu.Unlock()

		zap.L().Info("Connected to MongoDB", zap.String("database", m.name))
		return db, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*mongo.Database), nil
}

// Close disconnects the cached client if one was ever established
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client == nil {
		return nil
	}

	err := m.client.Disconnect(ctx)
	m.client = nil
	m.db = nil
	return err
}
