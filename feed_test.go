package folio

import (
	"net/http"
	"strings"
	"testing"

	"github.com/mmcdole/gofeed"
)

func TestFeed(t *testing.T) {
	a, _, _ := newTestApp(t, writePosts(t, testPosts()))
	rec := newClient(t, a).get("/feed.xml")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /feed.xml = %d", rec.Code)
	}
	if got := rec.Header().Get("Cache-Control"); got != "public, max-age=3600" {
		t.Errorf("cache-control = %q", got)
	}

	feed, err := gofeed.NewParser().ParseString(rec.Body.String())
	if err != nil {
		t.Fatalf("parse feed: %v", err)
	}
	if feed.Title != "Jane" || feed.Link != "https://example.com/blog/" {
		t.Errorf("channel = %q %q", feed.Title, feed.Link)
	}
	if len(feed.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(feed.Items))
	}
	first, second := feed.Items[0], feed.Items[1]
	if first.Link != "https://example.com/blog/?read=1" {
		t.Errorf("internal post link = %q", first.Link)
	}
	if second.Link != "https://example.org/shipping" {
		t.Errorf("external post link = %q", second.Link)
	}
	if len(second.Categories) != 1 || second.Categories[0] != "Case Study" {
		t.Errorf("categories = %v", second.Categories)
	}
	if first.PublishedParsed == nil || first.PublishedParsed.Format("2006-01-02") != "2024-01-15" {
		t.Errorf("published = %v", first.PublishedParsed)
	}
}

func TestSitemap(t *testing.T) {
	a, _, _ := newTestApp(t, writePosts(t, testPosts()))
	rec := newClient(t, a).get("/sitemap.xml")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /sitemap.xml = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"<loc>https://example.com/</loc>",
		"<loc>https://example.com/blog/</loc>",
		"<lastmod>2024-02-01</lastmod>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("sitemap missing %q", want)
		}
	}
}
