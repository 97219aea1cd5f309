package folio

import (
	"encoding/json"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/blog"
)

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// PostURL is the canonical address of a post: its external link when it
// has one, otherwise the blog page with the post open.
func PostURL(cfg SiteConfig, p blog.Post) string {
	if p.ExternalLink != "" {
		return p.ExternalLink
	}
	return BuildURL(cfg.URL, "blog") + "?read=" + strconv.FormatInt(p.ID, 10)
}

func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return id, err == nil
}

// safeReferer returns the request's same-site Referer path, or fallback.
func safeReferer(c echo.Context, fallback string) string {
	ref, err := url.Parse(c.Request().Referer())
	if err != nil || ref.Path == "" || !strings.HasPrefix(ref.Path, "/") {
		return fallback
	}
	if ref.Host != "" && ref.Host != c.Request().Host {
		return fallback
	}
	ref.Scheme, ref.Host, ref.User = "", "", nil
	return ref.String()
}

// PersonJsonLD returns a JSON-LD string for a Person schema using SiteConfig.
func PersonJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "Person",
		"name":     cfg.Name,
		"url":      BuildURL(cfg.URL),
	}
	if cfg.Role != "" {
		data["jobTitle"] = cfg.Role
	}
	if cfg.Description != "" {
		data["description"] = cfg.Description
	}
	var sameAs []string
	for _, s := range cfg.Socials {
		if strings.HasPrefix(s.URL, "http") {
			sameAs = append(sameAs, s.URL)
		}
	}
	if len(sameAs) > 0 {
		data["sameAs"] = sameAs
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// BlogJsonLD returns a JSON-LD string for a Blog schema listing posts.
func BlogJsonLD(cfg SiteConfig, posts []blog.Post) string {
	entries := make([]map[string]interface{}, 0, len(posts))
	for _, p := range posts {
		entry := map[string]interface{}{
			"@type":         "BlogPosting",
			"headline":      p.Title,
			"description":   p.Excerpt,
			"datePublished": p.Date,
			"url":           PostURL(cfg, p),
		}
		if p.Category != "" {
			entry["keywords"] = blog.FormatCategory(p.Category)
		}
		entries = append(entries, entry)
	}
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "Blog",
		"name":     cfg.Name + " Blog",
		"url":      BuildURL(cfg.URL, "blog"),
		"blogPost": entries,
	}
	if cfg.Name != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Name,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
