package folio

import (
	"context"
	"sync"
	"time"

	"github.com/eringen/folio/blog"
)

// PostCache is an in-memory TTL cache in front of a PostStore. It is itself
// a PostStore: Load serves the cached list, Save writes through and
// invalidates.
type PostCache struct {
	mu      sync.RWMutex
	posts   []blog.Post
	fetched time.Time
	ttl     time.Duration
	store   PostStore
}

// NewPostCache creates a PostCache backed by the given store.
func NewPostCache(s PostStore, ttl time.Duration) *PostCache {
	return &PostCache{store: s, ttl: ttl}
}

func (c *PostCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.mu.Unlock()
}

// Load returns a copy of the cached posts, loading them when stale.
// Failed loads are not cached.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *PostCache) Load(ctx context.Context) ([]blog.Post, error) {
	c.mu.RLock()
	if c.valid() {
		posts := append([]blog.Post{}, c.posts...)
		c.mu.RUnlock()
		return posts, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.valid() {
		posts, err := c.store.Load(ctx)
		if err != nil {
			return nil, err
		}
		if posts == nil {
			posts = []blog.Post{}
		}
		c.posts = posts
		c.fetched = time.Now()
	}
	return append([]blog.Post{}, c.posts...), nil
}

// Save writes posts to the underlying store and invalidates the cache.
func (c *PostCache) Save(ctx context.Context, posts []blog.Post) error {
	defer c.Invalidate()
	return c.store.Save(ctx, posts)
}

// Prepend records a post created on a page whose list is now page. A
// store that edits in place gets only the new post; any other store is
// handed the whole page list.
func (c *PostCache) Prepend(ctx context.Context, p blog.Post, page []blog.Post) error {
	ed, ok := c.store.(blog.PostEditor)
	if !ok {
		return c.Save(ctx, page)
	}
	defer c.Invalidate()
	return ed.Prepend(ctx, p)
}

// Remove records a post deleted on a page whose list is now page. See
// Prepend.
func (c *PostCache) Remove(ctx context.Context, id int64, page []blog.Post) error {
	ed, ok := c.store.(blog.PostEditor)
	if !ok {
		return c.Save(ctx, page)
	}
	defer c.Invalidate()
	return ed.Remove(ctx, id)
}
