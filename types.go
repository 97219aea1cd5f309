package folio

import (
	"context"
	"net/url"

	"github.com/eringen/folio/blog"
)

// PostStore loads and saves the source post list. See blog.PostStore.
type PostStore = blog.PostStore

// Relay forwards contact form fields to a form relay service.
type Relay interface {
	Submit(ctx context.Context, fields url.Values) error
}

// PageData is shared by every full-page render.
type PageData struct {
	Site      SiteConfig
	Theme     Theme
	Flashes   []string
	CSRFToken string
	Path      string
}

// HomeData is passed to the portfolio page.
type HomeData struct {
	PageData
}

// BlogData is passed to the blog page and its partials.
type BlogData struct {
	PageData

	PageToken  string      // identifies this page load's post list
	PageURL    string      // canonical blog URL used for share links
	Filter     string      // active category, blog.FilterAll for none
	Categories []string    // filter buttons, first-seen order
	Posts      []blog.Post // posts after filtering, in list order

	Reading *blog.Post       // post shown in the detail modal
	Shares  []blog.ShareLink // share targets for Reading

	ShowNewPost  bool         // new post modal open
	NewPostError string       // validation message for the new post form
	Draft        blog.NewPost // fields to refill after a validation error

	Confirm *blog.Post // post awaiting delete confirmation

	PlaceholderBase string
}

// CardImage returns the image shown for p, falling back to a placeholder.
func (d BlogData) CardImage(p blog.Post) string {
	if p.Image != "" {
		return p.Image
	}
	return blog.PlaceholderURL(d.PlaceholderBase, "Blog Post")
}

// FilterURL returns the blog URL selecting category within this page.
func (d BlogData) FilterURL(category string) string {
	q := url.Values{}
	q.Set("page", d.PageToken)
	if category != "" && category != blog.FilterAll {
		q.Set("filter", category)
	}
	return "/blog/?" + q.Encode()
}

// PageURLWith returns the blog URL for this page with extra query values,
// keeping the active filter.
func (d BlogData) PageURLWith(key, value string) string {
	q := url.Values{}
	q.Set("page", d.PageToken)
	if d.Filter != "" && d.Filter != blog.FilterAll {
		q.Set("filter", d.Filter)
	}
	if key != "" {
		q.Set(key, value)
	}
	return "/blog/?" + q.Encode()
}
