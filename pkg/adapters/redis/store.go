// Package redis implements ports.FavoriteStore on a Redis list, so favorites
// survive across runs and across hosts.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/smartchef/skillet/pkg/ports"
)

const defaultPrefix = "skillet:"

// Store appends favorites to a Redis list as JSON documents. Insertion order
// is the list order.
type Store struct {
	client  *backend.Client
	ownsCli bool
	prefix  string
	ttl     time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix overrides the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithTTL expires the favorites book after the given duration of inactivity.
// Zero means no expiry.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// New connects to Redis and returns a Store that owns the connection.
func New(addr, password string, db int, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	s := NewFromClient(client, opts...)
	s.ownsCli = true
	return s
}

// NewFromClient wraps an existing Redis client. The caller keeps ownership
// of the connection.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	s := &Store{
		client: client,
		prefix: defaultPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.FavoriteStore = (*Store)(nil)

func (s *Store) key() string {
	return s.prefix + "favorites"
}

// Add appends a favorite to the Redis list.
func (s *Store) Add(ctx context.Context, fav ports.Favorite) error {
	doc, err := json.Marshal(fav)
	if err != nil {
		return fmt.Errorf("marshaling favorite: %w", err)
	}
	if err := s.client.RPush(ctx, s.key(), doc).Err(); err != nil {
		return fmt.Errorf("redis error saving favorite: %w", err)
	}
	if s.ttl > 0 {
		if err := s.client.Expire(ctx, s.key(), s.ttl).Err(); err != nil {
			return fmt.Errorf("redis error refreshing TTL: %w", err)
		}
	}
	return nil
}

// List returns all favorites in insertion order.
func (s *Store) List(ctx context.Context) ([]ports.Favorite, error) {
	docs, err := s.client.LRange(ctx, s.key(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis error listing favorites: %w", err)
	}
	favs := make([]ports.Favorite, 0, len(docs))
	for _, doc := range docs {
		var fav ports.Favorite
		if err := json.Unmarshal([]byte(doc), &fav); err != nil {
			return nil, fmt.Errorf("unmarshaling favorite: %w", err)
		}
		favs = append(favs, fav)
	}
	return favs, nil
}

// Ping verifies connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the connection when the Store owns it.
func (s *Store) Close() error {
	if !s.ownsCli {
		return nil
	}
	return s.client.Close()
}
