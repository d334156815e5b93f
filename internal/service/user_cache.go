package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/pathfinderhq/pathfinder/internal/models"
)

const (
	userCacheTTL       = 1 * time.Minute
	negativeUserTTL    = 15 * time.Second
	maxUserCacheSize   = 10000
	userCacheEvictTick = 60 * time.Second
)

type cachedUser struct {
	user      *models.User // nil for a cached miss
	fetchedAt time.Time
}

func (c cachedUser) ttl() time.Duration {
	if c.user == nil {
		return negativeUserTTL
	}
	return userCacheTTL
}

// CachedUserStore wraps a UserStore with a bounded in-memory cache of
// username lookups. Every authenticated request resolves its token subject,
// so this keeps the hot path off the database.
type CachedUserStore struct {
	inner UserStore
	mu    sync.RWMutex
	cache map[string]cachedUser
}

// NewCachedUserStore creates a caching wrapper. ctx bounds the eviction goroutine.
func NewCachedUserStore(ctx context.Context, inner UserStore) *CachedUserStore {
	c := &CachedUserStore{
		inner: inner,
		cache: make(map[string]cachedUser),
	}
	go c.evictLoop(ctx)
	return c
}

func (c *CachedUserStore) evictLoop(ctx context.Context) {
	ticker := time.NewTicker(userCacheEvictTick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.mu.Lock()
			c.evictExpired(time.Now())
			c.mu.Unlock()
		}
	}
}

// evictExpired removes stale entries. Caller must hold c.mu.
func (c *CachedUserStore) evictExpired(now time.Time) {
	for k, v := range c.cache {
		if now.Sub(v.fetchedAt) >= v.ttl() {
			delete(c.cache, k)
		}
	}
}

// CreateUser delegates and drops any cached miss for the username.
func (c *CachedUserStore) CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error) {
	u, err := c.inner.CreateUser(ctx, username, passwordHash)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	delete(c.cache, username)
	c.mu.Unlock()

	return u, nil
}

// GetUserByUsername returns a cached user or delegates to the inner store.
// Misses are cached briefly so bogus tokens cannot hammer the database.
func (c *CachedUserStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	c.mu.RLock()
	entry, ok := c.cache[username]
	c.mu.RUnlock()

	if ok && time.Since(entry.fetchedAt) < entry.ttl() {
		if entry.user == nil {
			return nil, models.ErrUserNotFound
		}
		return entry.user, nil
	}

	u, err := c.inner.GetUserByUsername(ctx, username)
	if err != nil && !errors.Is(err, models.ErrUserNotFound) {
		return nil, err
	}

	c.mu.Lock()
	if len(c.cache) >= maxUserCacheSize {
		c.evictExpired(time.Now())
		for k := range c.cache {
			if len(c.cache) < maxUserCacheSize {
				break
			}
			delete(c.cache, k)
		}
	}
	c.cache[username] = cachedUser{user: u, fetchedAt: time.Now()}
	c.mu.Unlock()

	if err != nil {
		return nil, err
	}

	return u, nil
}
