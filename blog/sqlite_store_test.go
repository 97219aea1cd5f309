package blog

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
)

func setupSQLiteStore(t *testing.T) (*SQLiteStore, func()) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "posts.db")
	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return s, func() { s.Close() }
}

func TestSQLiteStoreEmpty(t *testing.T) {
	s, cleanup := setupSQLiteStore(t)
	defer cleanup()

	posts, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if posts == nil || len(posts) != 0 {
		t.Errorf("empty store Load = %v, want empty list", posts)
	}
}

func TestSQLiteStoreSaveAndLoad(t *testing.T) {
	s, cleanup := setupSQLiteStore(t)
	defer cleanup()
	ctx := context.Background()

	posts := []Post{
		{ID: 3, Title: "Newest", Excerpt: "e3", Content: "<p>c3</p>", Category: "ai", Date: "2024-03-01", Image: "https://example.com/3.png"},
		{ID: 1, Title: "Oldest", Excerpt: "e1", Content: "c1", Category: "case-study", Date: "2024-01-01", ExternalLink: "https://example.com/1"},
	}
	if err := s.Save(ctx, posts); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(got, posts) {
		t.Errorf("Load = %+v, want %+v", got, posts)
	}
}

func TestSQLiteStoreSaveReplaces(t *testing.T) {
	s, cleanup := setupSQLiteStore(t)
	defer cleanup()
	ctx := context.Background()

	if err := s.Save(ctx, samplePosts()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	l := NewList(samplePosts())
	l.Remove(2)
	l.Prepend(Post{ID: 10, Title: "Ten", Category: "ai", Date: "2024-05-05"})
	if err := s.Save(ctx, l.Posts()); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(ids(got), []int64{10, 1, 3, 4}) {
		t.Errorf("ids after replace = %v, want [10 1 3 4]", ids(got))
	}
}

func TestSQLiteStorePrependAndRemove(t *testing.T) {
	s, cleanup := setupSQLiteStore(t)
	defer cleanup()
	ctx := context.Background()

	if err := s.Prepend(ctx, Post{ID: 9, Title: "First", Category: "ai", Date: "2024-06-01"}); err != nil {
		t.Fatalf("Prepend into empty store failed: %v", err)
	}
	if err := s.Save(ctx, samplePosts()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.Prepend(ctx, Post{ID: 10, Title: "Ten", Category: "ai", Date: "2024-06-02"}); err != nil {
		t.Fatalf("Prepend failed: %v", err)
	}
	if err := s.Remove(ctx, 3); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if err := s.Remove(ctx, 99); err != nil {
		t.Fatalf("Remove of unknown id failed: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(ids(got), []int64{10, 1, 2, 4}) {
		t.Errorf("ids = %v, want [10 1 2 4]", ids(got))
	}
	if got[0].Title != "Ten" || got[0].Date != "2024-06-02" {
		t.Errorf("prepended post = %+v", got[0])
	}
}

func TestSQLiteStoreInterleavedEdits(t *testing.T) {
	s, cleanup := setupSQLiteStore(t)
	defer cleanup()
	ctx := context.Background()
	if err := s.Save(ctx, samplePosts()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Two pages loaded the same list. Each edits its own copy.
	a, b := NewList(samplePosts()), NewList(samplePosts())
	a.Remove(1)
	if err := s.Remove(ctx, 1); err != nil {
		t.Fatal(err)
	}
	p := Post{ID: 20, Title: "From B", Category: "ai", Date: "2024-06-03"}
	b.Prepend(p)
	if err := s.Prepend(ctx, p); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(ids(got), []int64{20, 2, 3, 4}) {
		t.Errorf("ids = %v, want [20 2 3 4]", ids(got))
	}
}
