package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store persists carts by owner. Load returns an empty cart when none is saved.
type Store interface {
	Load(ctx context.Context, owner string) (*Cart, error)
	Save(ctx context.Context, c *Cart) error
	Delete(ctx context.Context, owner string) error
}

// MemoryStore keeps carts in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string][]byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string][]byte)}
}

func (s *MemoryStore) Load(_ context.Context, owner string) (*Cart, error) {
	s.mu.RLock()
	raw, ok := s.carts[owner]
	s.mu.RUnlock()
	if !ok {
		return New(owner), nil
	}
	return decode(owner, raw)
}

func (s *MemoryStore) Save(_ context.Context, c *Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	s.mu.Lock()
	s.carts[c.Owner] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, owner string) error {
	s.mu.Lock()
	delete(s.carts, owner)
	s.mu.Unlock()
	return nil
}

// RedisStore keeps carts as JSON strings under prefix:owner with a sliding TTL.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore returns a Redis-backed store. A zero ttl keeps carts for a week.
func NewRedisStore(rdb *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = "cart"
	}
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &RedisStore{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(owner string) string { return s.prefix + ":" + owner }

func (s *RedisStore) Load(ctx context.Context, owner string) (*Cart, error) {
	raw, err := s.rdb.Get(ctx, s.key(owner)).Bytes()
	if errors.Is(err, redis.Nil) {
		return New(owner), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return decode(owner, raw)
}

func (s *RedisStore) Save(ctx context.Context, c *Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := s.rdb.Set(ctx, s.key(c.Owner), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, owner string) error {
	if err := s.rdb.Del(ctx, s.key(owner)).Err(); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}

func decode(owner string, raw []byte) (*Cart, error) {
	c := New(owner)
	if err := json.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}
	c.Owner = owner
	if c.Items == nil {
		c.Clear()
	}
	return c, nil
}
