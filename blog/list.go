package blog

import (
	"strings"
	"sync"
	"time"
)

// DefaultPlaceholderBase serves placeholder images from the app itself.
const DefaultPlaceholderBase = "/placeholder/800x400/0a192f/00ff88"

// PlaceholderURL returns a placeholder image URL with text embedded.
func PlaceholderURL(base, text string) string {
	if base == "" {
		base = DefaultPlaceholderBase
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + "text=" + EncodeURIComponent(text)
}

// NewPost holds the fields submitted through the new post form.
type NewPost struct {
	Title        string
	Category     string
	Excerpt      string
	Content      string
	Image        string
	ExternalLink string
}

// Build turns the form fields into a Post stamped with now. The id is the
// Unix time in milliseconds and is not checked for uniqueness. The date is
// taken in UTC.
func (n NewPost) Build(now time.Time, placeholderBase string) Post {
	title := strings.TrimSpace(n.Title)
	image := strings.TrimSpace(n.Image)
	if image == "" {
		image = PlaceholderURL(placeholderBase, title)
	}
	return Post{
		ID:           now.UnixMilli(),
		Title:        title,
		Category:     strings.TrimSpace(n.Category),
		Excerpt:      n.Excerpt,
		Content:      n.Content,
		Image:        image,
		ExternalLink: strings.TrimSpace(n.ExternalLink),
		Date:         now.UTC().Format("2006-01-02"),
	}
}

// List is the post list owned by one page load. It is safe for concurrent use.
type List struct {
	mu    sync.RWMutex
	posts []Post
}

// NewList returns a List holding a copy of posts.
func NewList(posts []Post) *List {
	return &List{posts: append([]Post(nil), posts...)}
}

// Posts returns a snapshot of the list in insertion order.
func (l *List) Posts() []Post {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]Post(nil), l.posts...)
}

// Len returns the number of posts in the list.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.posts)
}

// Find returns the first post with id.
func (l *List) Find(id int64) (Post, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, p := range l.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return Post{}, ErrPostNotFound
}

// Prepend inserts p at the head of the list.
func (l *List) Prepend(p Post) {
	l.mu.Lock()
	l.posts = append([]Post{p}, l.posts...)
	l.mu.Unlock()
}

// Remove drops every post with id and reports whether any was removed.
func (l *List) Remove(id int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := make([]Post, 0, len(l.posts))
	for _, p := range l.posts {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	removed := len(kept) != len(l.posts)
	if removed {
		l.posts = kept
	}
	return removed
}
