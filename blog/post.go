// Package blog holds the post model, the per-page post lists and the
// formatting helpers used to render the blog listing.
package blog

import "errors"

// FilterAll is the category filter value that bypasses filtering.
const FilterAll = "all"

// ErrPostNotFound is returned when a post id is not in a list.
var ErrPostNotFound = errors.New("blog: post not found")

// Post is one blog entry as stored in the posts JSON document.
type Post struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Excerpt      string `json:"excerpt"`
	Content      string `json:"content"`
	Category     string `json:"category"`
	Date         string `json:"date"`
	Image        string `json:"image,omitempty"`
	ExternalLink string `json:"externalLink,omitempty"`
}

// Filter returns the posts whose category equals filter, keeping list order.
// FilterAll returns posts unchanged.
func Filter(posts []Post, filter string) []Post {
	if filter == FilterAll {
		return posts
	}
	var out []Post
	for _, p := range posts {
		if p.Category == filter {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the distinct categories of posts in first-seen order.
func Categories(posts []Post) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range posts {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
