package folio

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// SiteConfig holds all configuration for a folio site.
type SiteConfig struct {
	Name        string    `koanf:"name"`        // Owner name (default "Portfolio")
	Role        string    `koanf:"role"`        // Headline under the name
	Tagline     string    `koanf:"tagline"`     // Hero paragraph
	About       string    `koanf:"about"`       // About section text
	Email       string    `koanf:"email"`       // Shown in the contact section
	URL         string    `koanf:"url"`         // Canonical URL (default "http://localhost:3000")
	Description string    `koanf:"description"` // Meta and RSS description
	Skills      []string  `koanf:"skills"`
	Projects    []Project `koanf:"projects"`
	Socials     []Social  `koanf:"socials"`

	Addr string `koanf:"addr"` // Listen address (default ":3000")

	PostStore    string        `koanf:"post_store"`    // "json" (default) or "sqlite"
	PostsPath    string        `koanf:"posts_path"`    // JSON document (default "public/blog-posts.json")
	PostsURL     string        `koanf:"posts_url"`     // Fetch the JSON document over HTTP instead
	DatabasePath string        `koanf:"database_path"` // SQLite path (default "data/posts.db")
	PostCacheTTL time.Duration `koanf:"post_cache_ttl"`

	PageTTL  time.Duration `koanf:"page_ttl"`  // Idle lifetime of a blog page's post list (default 30m)
	MaxPages int           `koanf:"max_pages"` // Open pages kept in memory (default 1000)

	PlaceholderBase string `koanf:"placeholder_base"` // Placeholder image URL prefix

	ContactEndpoint  string        `koanf:"contact_endpoint"`   // Form relay (default web3forms)
	ContactAccessKey string        `koanf:"contact_access_key"` // Relay access key
	ContactTimeout   time.Duration `koanf:"contact_timeout"`

	SessionSecret string `koanf:"session_secret"` // Required: preference cookie secret
	CookieSecure  bool   `koanf:"cookie_secure"`  // Set true for HTTPS
}

// Project is one entry in the portfolio's projects section.
type Project struct {
	Title       string   `koanf:"title"`
	Description string   `koanf:"description"`
	Tech        []string `koanf:"tech"`
	Link        string   `koanf:"link"`
	Repo        string   `koanf:"repo"`
}

// Social is a profile link shown in the hero and footer.
type Social struct {
	Name string `koanf:"name"`
	Icon string `koanf:"icon"` // Font Awesome class, e.g. "fab fa-github"
	URL  string `koanf:"url"`
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Portfolio"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.PostStore == "" {
		c.PostStore = "json"
	}
	if c.PostsPath == "" {
		c.PostsPath = "public/blog-posts.json"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/posts.db"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = time.Minute
	}
	if c.PageTTL == 0 {
		c.PageTTL = 30 * time.Minute
	}
	if c.MaxPages == 0 {
		c.MaxPages = 1000
	}
	if c.ContactTimeout == 0 {
		c.ContactTimeout = 15 * time.Second
	}
}

// Validate reports configuration that would stop the server from starting.
func (c *SiteConfig) Validate() error {
	if c.SessionSecret == "" {
		return fmt.Errorf("folio: session_secret is required")
	}
	switch c.PostStore {
	case "json", "sqlite":
	default:
		return fmt.Errorf("folio: invalid post_store %q: must be json or sqlite", c.PostStore)
	}
	return nil
}

// LoadConfig reads the YAML file at path when it exists, then overlays
// FOLIO_* environment variables (FOLIO_SESSION_SECRET -> session_secret).
// Defaults are applied last.
func LoadConfig(path string) (SiteConfig, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return SiteConfig{}, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return SiteConfig{}, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("FOLIO_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "FOLIO_"))
	}), nil); err != nil {
		return SiteConfig{}, fmt.Errorf("loading env overrides: %w", err)
	}

	var cfg SiteConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithPostStore replaces the store selected by SiteConfig.PostStore.
func WithPostStore(s PostStore) Option {
	return func(a *App) {
		a.source = s
	}
}

// WithRelay replaces the contact relay built from the contact_* settings.
func WithRelay(r Relay) Option {
	return func(a *App) {
		a.Relay = r
	}
}

// WithClock overrides the time source used to stamp new posts.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}
