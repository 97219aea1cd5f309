package folio

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eringen/folio/blog"
)

type countingStore struct {
	loads int
	saved []blog.Post
	err   error
	posts []blog.Post
}

func (s *countingStore) Load(context.Context) ([]blog.Post, error) {
	s.loads++
	if s.err != nil {
		return nil, s.err
	}
	return s.posts, nil
}

func (s *countingStore) Save(_ context.Context, posts []blog.Post) error {
	s.saved = posts
	return nil
}

func TestPostCacheServesWithinTTL(t *testing.T) {
	store := &countingStore{posts: testPosts()}
	cache := NewPostCache(store, time.Minute)
	ctx := context.Background()

	first, err := cache.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	first[0].Title = "mutated"

	second, _ := cache.Load(ctx)
	if store.loads != 1 {
		t.Errorf("loads = %d, want 1", store.loads)
	}
	if second[0].Title != "Go Tips" {
		t.Error("caller mutation leaked into the cache")
	}
}

func TestPostCacheSaveInvalidates(t *testing.T) {
	store := &countingStore{posts: testPosts()}
	cache := NewPostCache(store, time.Minute)
	ctx := context.Background()

	cache.Load(ctx)
	if err := cache.Save(ctx, testPosts()[:1]); err != nil {
		t.Fatal(err)
	}
	if len(store.saved) != 1 {
		t.Errorf("save not written through")
	}
	cache.Load(ctx)
	if store.loads != 2 {
		t.Errorf("loads = %d, want 2", store.loads)
	}
}

func TestPostCacheDoesNotCacheFailures(t *testing.T) {
	store := &countingStore{err: errors.New("boom")}
	cache := NewPostCache(store, time.Minute)
	ctx := context.Background()

	if _, err := cache.Load(ctx); err == nil {
		t.Fatal("expected error")
	}
	store.err = nil
	store.posts = testPosts()
	posts, err := cache.Load(ctx)
	if err != nil || len(posts) != 2 {
		t.Fatalf("posts = %d, err = %v", len(posts), err)
	}
}

func TestPostCacheExpires(t *testing.T) {
	store := &countingStore{posts: testPosts()}
	cache := NewPostCache(store, 10*time.Millisecond)
	ctx := context.Background()

	cache.Load(ctx)
	time.Sleep(20 * time.Millisecond)
	cache.Load(ctx)
	if store.loads != 2 {
		t.Errorf("loads = %d, want 2", store.loads)
	}
}

type editingStore struct {
	countingStore
	prepended []int64
	removed   []int64
}

func (s *editingStore) Prepend(_ context.Context, p blog.Post) error {
	s.prepended = append(s.prepended, p.ID)
	return nil
}

func (s *editingStore) Remove(_ context.Context, id int64) error {
	s.removed = append(s.removed, id)
	return nil
}

func TestPostCacheEditsInPlaceWhenSupported(t *testing.T) {
	store := &editingStore{countingStore: countingStore{posts: testPosts()}}
	cache := NewPostCache(store, time.Minute)
	ctx := context.Background()
	cache.Load(ctx)

	page := testPosts()
	if err := cache.Prepend(ctx, blog.Post{ID: 9}, page); err != nil {
		t.Fatal(err)
	}
	if err := cache.Remove(ctx, 1, page); err != nil {
		t.Fatal(err)
	}
	if store.saved != nil {
		t.Errorf("whole list saved: %v", store.saved)
	}
	if len(store.prepended) != 1 || store.prepended[0] != 9 || len(store.removed) != 1 || store.removed[0] != 1 {
		t.Errorf("prepended = %v, removed = %v", store.prepended, store.removed)
	}
	cache.Load(ctx)
	if store.loads != 2 {
		t.Errorf("loads = %d, want 2 (edit should invalidate)", store.loads)
	}
}

func TestPostCacheFallsBackToSave(t *testing.T) {
	store := &countingStore{posts: testPosts()}
	cache := NewPostCache(store, time.Minute)

	page := testPosts()[1:]
	if err := cache.Remove(context.Background(), 1, page); err != nil {
		t.Fatal(err)
	}
	if len(store.saved) != 1 || store.saved[0].ID != 2 {
		t.Errorf("saved = %+v, want the page list", store.saved)
	}
}
