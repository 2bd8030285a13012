// Package cache memoizes computed metrics bundles in a shared store.
package cache

import (
	"errors"
	"time"

	"github.com/gofiber/storage/redis/v3"
)

var ErrMiss = errors.New("cache miss")

// MetricsKey is the key the latest metrics bundle is stored under.
const MetricsKey = "jobmetrics:metrics:v1"

// Store is the subset of fiber.Storage used for snapshots.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, val []byte, exp time.Duration) error
	Delete(key string) error
}

// NewRedis connects to Redis at url (redis://[:password@]host:port/db).
// It panics if Redis is unreachable.
func NewRedis(url string) *redis.Storage {
	return redis.New(redis.Config{
		URL: url,
	})
}

// Snapshots reads and writes the encoded metrics bundle. A nil store disables
// caching: every Load misses and Save is a no-op.
type Snapshots struct {
	store Store
	ttl   time.Duration
}

// NewSnapshots creates a snapshot cache that keeps entries for ttl.
func NewSnapshots(store Store, ttl time.Duration) *Snapshots {
	return &Snapshots{store: store, ttl: ttl}
}

// Enabled reports whether a store is configured.
func (s *Snapshots) Enabled() bool {
	return s != nil && s.store != nil && s.ttl > 0
}

// Load returns the stored bundle or ErrMiss.
func (s *Snapshots) Load() ([]byte, error) {
	if !s.Enabled() {
		return nil, ErrMiss
	}
	body, err := s.store.Get(MetricsKey)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, ErrMiss
	}
	return body, nil
}

// Save stores an encoded bundle.
func (s *Snapshots) Save(body []byte) error {
	if !s.Enabled() {
		return nil
	}
	return s.store.Set(MetricsKey, body, s.ttl)
}

// Invalidate removes the stored bundle.
func (s *Snapshots) Invalidate() error {
	if !s.Enabled() {
		return nil
	}
	return s.store.Delete(MetricsKey)
}
