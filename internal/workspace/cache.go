package workspace

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/dawnfield/StudyQuest_Go/internal/domain"
)

// Cache is an in-memory LRU for workspace reads with time-based expiration.
// XP-mutating flows invalidate entries on commit, so readers see at worst a
// TTL-stale level/XP pair on the dashboard, never a stale write.
type Cache struct {
	lru *expirable.LRU[string, *domain.Workspace]
}

// NewCache creates a workspace cache holding up to size entries for ttl.
func NewCache(size int, ttl time.Duration) *Cache {
	return &Cache{
		lru: expirable.NewLRU[string, *domain.Workspace](size, nil, ttl),
	}
}

// Get retrieves a workspace from the cache.
func (c *Cache) Get(workspaceID string) (*domain.Workspace, bool) {
	return c.lru.Get(workspaceID)
}

// Set stores a workspace in the cache.
func (c *Cache) Set(ws *domain.Workspace) {
	c.lru.Add(ws.ID, ws)
}

// Invalidate removes a workspace from the cache. Satisfies xp.Invalidator.
func (c *Cache) Invalidate(workspaceID string) {
	c.lru.Remove(workspaceID)
}
