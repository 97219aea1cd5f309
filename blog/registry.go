package blog

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry keeps the post list of every open page, keyed by page token.
// Pages idle for longer than the TTL are dropped, and once more than max
// pages are open the least recently used one is evicted.
type Registry struct {
	mu    sync.Mutex
	pages map[string]*page
	ttl   time.Duration
	max   int
	now   func() time.Time
}

type page struct {
	list    *List
	touched time.Time
}

// NewRegistry creates a Registry with the given idle TTL and page cap.
func NewRegistry(ttl time.Duration, max int) *Registry {
	return &Registry{
		pages: make(map[string]*page),
		ttl:   ttl,
		max:   max,
		now:   time.Now,
	}
}

// Open registers a new page seeded with posts and returns its token.
func (r *Registry) Open(posts []Post) (string, *List) {
	token := uuid.NewString()
	list := NewList(posts)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.max > 0 && len(r.pages) >= r.max {
		r.evictOldest()
	}
	r.pages[token] = &page{list: list, touched: r.now()}
	return token, list
}

// Get returns the list of a live page and marks it as used.
func (r *Registry) Get(token string) (*List, bool) {
	if token == "" {
		return nil, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pages[token]
	if !ok {
		return nil, false
	}
	now := r.now()
	if r.expired(p, now) {
		delete(r.pages, token)
		return nil, false
	}
	p.touched = now
	return p.list, true
}

// Close drops a page.
func (r *Registry) Close(token string) {
	r.mu.Lock()
	delete(r.pages, token)
	r.mu.Unlock()
}

// Len returns the number of pages currently held.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pages)
}

// Sweep drops every expired page and returns how many were removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	n := 0
	for token, p := range r.pages {
		if r.expired(p, now) {
			delete(r.pages, token)
			n++
		}
	}
	return n
}

// StartSweeper runs Sweep every interval until the returned stop func is called.
func (r *Registry) StartSweeper(interval time.Duration) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				r.Sweep()
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()
	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}

func (r *Registry) expired(p *page, now time.Time) bool {
	return r.ttl > 0 && now.Sub(p.touched) > r.ttl
}

func (r *Registry) evictOldest() {
	var oldest string
	var oldestAt time.Time
	for token, p := range r.pages {
		if oldest == "" || p.touched.Before(oldestAt) {
			oldest, oldestAt = token, p.touched
		}
	}
	if oldest != "" {
		delete(r.pages, oldest)
	}
}
