// Package folio serves a personal portfolio page and a blog built with Go,
// Echo, and templ.
//
// The blog listing is loaded from a static JSON document (or any PostStore)
// once per page load. Posts created or deleted from the page live only in
// that page's in-memory list and never reach the source document.
//
// Users provide their own templ components via the ViewFuncs struct; the
// views package ships a default set.
package folio

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/eringen/folio/blog"
	"github.com/eringen/folio/contact"
)

// ViewFuncs holds the templ components the framework calls when rendering
// pages. This is the inversion-of-control mechanism that lets users own and
// customize all templates.
type ViewFuncs struct {
	Home        func(d HomeData) templ.Component
	Blog        func(d BlogData) templ.Component
	BlogGrid    func(d BlogData) templ.Component
	PostModal   func(d BlogData) templ.Component
	NotFound    func(d PageData) templ.Component
	ServerError func(d PageData) templ.Component
}

// App is the central folio application. It wires together the post store,
// cache, page registry, contact relay, handlers, middleware, and templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Cache  *PostCache
	Pages  *blog.Registry
	Relay  Relay
	Views  ViewFuncs

	source         PostStore
	contactLimiter *SubmitLimiter
	customRoutes   []func(*App)
	staticDir      string
	now            func() time.Time
	closers        []func() error
	ready          bool
}

// New creates a new folio App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
		now:       time.Now,
	}
	a.Echo.HideBanner = true
	a.Echo.Logger.SetLevel(log.INFO)

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Setup builds the post store, cache, page registry, contact relay,
// middleware, and routes. Start calls it; tests call it directly and drive
// a.Echo through ServeHTTP.
func (a *App) Setup() error {
	if a.ready {
		return nil
	}
	if err := a.Config.Validate(); err != nil {
		return err
	}

	if a.source == nil {
		store, err := a.openPostStore()
		if err != nil {
			return fmt.Errorf("folio: init post store: %w", err)
		}
		a.source = store
	}
	a.Cache = NewPostCache(a.source, a.Config.PostCacheTTL)

	a.Pages = blog.NewRegistry(a.Config.PageTTL, a.Config.MaxPages)
	stopSweeper := a.Pages.StartSweeper(time.Minute)
	a.closers = append(a.closers, func() error { stopSweeper(); return nil })

	if a.Relay == nil {
		if a.Config.ContactAccessKey == "" {
			a.Echo.Logger.Warn("folio: contact_access_key is not set; contact submissions will fail")
		}
		a.Relay = contact.New(a.Config.ContactEndpoint, a.Config.ContactAccessKey, a.Config.ContactTimeout)
	}

	a.contactLimiter = NewSubmitLimiter(5, 10*time.Minute)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.ready = true
	return nil
}

func (a *App) openPostStore() (PostStore, error) {
	switch {
	case a.Config.PostStore == "sqlite":
		s, err := blog.NewSQLiteStore(a.Config.DatabasePath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, s.Close)
		return s, nil
	case a.Config.PostsURL != "":
		return &blog.HTTPStore{URL: a.Config.PostsURL, Client: &http.Client{}, Logger: a.Echo.Logger}, nil
	default:
		return &blog.JSONFileStore{Path: a.Config.PostsPath, Logger: a.Echo.Logger}, nil
	}
}

// Start sets the App up and runs the server until it is shut down.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server and releases resources.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.Echo.Shutdown(ctx)
	if cerr := a.Close(); err == nil {
		err = cerr
	}
	return err
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Framework assets (site.js, site.css) are served under /public/ and
	// fall through to the user's static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/site.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.GET("/public/site.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	// User's static assets, including the posts JSON document
	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/placeholder/:size", a.handlePlaceholder)
	e.GET("/placeholder/:size/:bg/:fg", a.handlePlaceholder)

	// Pages
	e.GET("/", a.handleHome)
	e.GET("/blog", handleBlogRedirect)
	e.GET("/blog/", a.handleBlog)
	e.GET("/blog/posts/:id/", a.handlePostDetail)
	e.POST("/blog/posts/", a.handleCreatePost)
	e.POST("/blog/posts/:id/delete/", a.handleDeletePost)

	// Forms
	e.POST("/contact/", a.handleContact)
	e.POST("/theme/", a.handleTheme)

	// Feeds
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
}

// Close releases the post store and background workers.
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	if a.contactLimiter != nil {
		a.contactLimiter.Stop()
	}
	return first
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
