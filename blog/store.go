package blog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/labstack/gommon/log"
)

// PostStore loads and saves the source post list.
type PostStore interface {
	Load(ctx context.Context) ([]Post, error)
	Save(ctx context.Context, posts []Post) error
}

// PostEditor is implemented by stores that can apply a single edit in
// place. Pages with their own list snapshot use it instead of Save so one
// page's edit does not overwrite another's.
type PostEditor interface {
	Prepend(ctx context.Context, p Post) error
	Remove(ctx context.Context, id int64) error
}

// Logger is the subset of the Echo logger the blog components use.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

var defaultLogger Logger = log.New("blog")

// JSONFileStore reads posts from a static JSON document on disk.
// Save never writes back to the document.
type JSONFileStore struct {
	Path   string
	Logger Logger
}

// Load reads and decodes the JSON array at s.Path.
func (s *JSONFileStore) Load(ctx context.Context) ([]Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open posts: %w", err)
	}
	defer f.Close()
	return decodePosts(f)
}

// Save is a no-op: the JSON document is managed by hand.
func (s *JSONFileStore) Save(ctx context.Context, posts []Post) error {
	logger(s.Logger).Infof("posts are managed in %s; %d in-memory posts not written", s.Path, len(posts))
	return nil
}

// HTTPStore fetches posts from a URL with an unauthenticated GET.
// Save never writes back to the URL.
type HTTPStore struct {
	URL    string
	Client *http.Client
	Logger Logger
}

// Load fetches and decodes the JSON array at s.URL.
func (s *HTTPStore) Load(ctx context.Context) ([]Post, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build posts request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch posts: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch posts: unexpected status %s", resp.Status)
	}
	return decodePosts(resp.Body)
}

// Save is a no-op: the remote document is read-only.
func (s *HTTPStore) Save(ctx context.Context, posts []Post) error {
	logger(s.Logger).Infof("posts are managed at %s; %d in-memory posts not written", s.URL, len(posts))
	return nil
}

func decodePosts(r io.Reader) ([]Post, error) {
	var posts []Post
	if err := json.NewDecoder(r).Decode(&posts); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	return posts, nil
}

// Load reads the source list once. Any failure is logged and yields an
// empty list so the page can still render.
func Load(ctx context.Context, store PostStore, l Logger) []Post {
	posts, err := store.Load(ctx)
	if err != nil {
		logger(l).Errorf("failed to load blog posts: %v", err)
		return []Post{}
	}
	if posts == nil {
		posts = []Post{}
	}
	return posts
}

func logger(l Logger) Logger {
	if l == nil {
		return defaultLogger
	}
	return l
}
