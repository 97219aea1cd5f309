package views

import (
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/eringen/folio"
	"github.com/eringen/folio/blog"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var sb strings.Builder
	if err := c.Render(context.Background(), &sb); err != nil {
		t.Fatalf("render: %v", err)
	}
	return sb.String()
}

func samplePosts() []blog.Post {
	return []blog.Post{
		{ID: 1, Title: "Go Tips", Category: "tutorial", Date: "2024-01-15", Excerpt: "e1", Content: "<p>one two</p>"},
		{ID: 2, Title: "Case <Study>", Category: "case-study", Date: "2024-02-01", ExternalLink: "https://example.com/walk"},
	}
}

func blogData(posts []blog.Post) folio.BlogData {
	return folio.BlogData{
		PageData:        folio.PageData{Site: folio.SiteConfig{Name: "Jane"}, CSRFToken: "tok", Path: "/blog/"},
		PageToken:       "page-1",
		PageURL:         "https://example.com/blog/",
		Filter:          blog.FilterAll,
		Categories:      blog.Categories(posts),
		Posts:           posts,
		PlaceholderBase: blog.DefaultPlaceholderBase,
	}
}

func TestBlogGridCards(t *testing.T) {
	html := render(t, BlogGrid(blogData(samplePosts())))

	if n := strings.Count(html, `class="blog-card"`); n != 2 {
		t.Errorf("cards = %d, want 2", n)
	}
	if strings.Contains(html, EmptyMessage) {
		t.Error("empty message rendered alongside cards")
	}
	if !strings.Contains(html, "Read Full Walkthrough") {
		t.Error("external post should link to its walkthrough")
	}
	if n := strings.Count(html, "Read More"); n != 1 {
		t.Errorf("Read More links = %d, want 1", n)
	}
	if !strings.Contains(html, "Case &lt;Study&gt;") {
		t.Error("title not escaped")
	}
	if !strings.Contains(html, `data-action="/blog/posts/1/delete/"`) {
		t.Error("delete form missing action")
	}
	if !strings.Contains(html, "1 min read") {
		t.Error("reading time missing")
	}
	if !strings.Contains(html, "January 15, 2024") {
		t.Error("formatted date missing")
	}
}

func TestBlogGridEmpty(t *testing.T) {
	html := render(t, BlogGrid(blogData(nil)))

	if n := strings.Count(html, EmptyMessage); n != 1 {
		t.Errorf("empty message count = %d, want 1", n)
	}
	if strings.Contains(html, "blog-card") {
		t.Error("unexpected card in empty grid")
	}
}

func TestBlogGridPlaceholderImage(t *testing.T) {
	html := render(t, BlogGrid(blogData(samplePosts()[:1])))
	if !strings.Contains(html, "/placeholder/800x400/0a192f/00ff88?text=Blog") {
		t.Errorf("missing placeholder image in %s", html)
	}
}

func TestPostModal(t *testing.T) {
	posts := samplePosts()
	d := blogData(posts)
	d.Reading = &posts[0]
	d.Shares = blog.ShareLinks(d.PageURL, posts[0].Title)

	html := render(t, PostModal(d))
	if !strings.Contains(html, "<p>one two</p>") {
		t.Error("post content should render as HTML")
	}
	if n := strings.Count(html, `class="share-btn"`); n != 4 {
		t.Errorf("share links = %d, want 4", n)
	}
	if !strings.Contains(html, "mailto:") {
		t.Error("email share link missing")
	}
}

func TestPostModalNothingOpen(t *testing.T) {
	if html := render(t, PostModal(blogData(samplePosts()))); html != "" {
		t.Errorf("expected no output, got %q", html)
	}
}

func TestBlogPageFilters(t *testing.T) {
	d := blogData(samplePosts())
	d.Filter = "case-study"
	d.Posts = blog.Filter(d.Posts, d.Filter)

	html := render(t, Blog(DefaultScroll)(d))
	if n := strings.Count(html, `class="filter-btn`); n != 3 {
		t.Errorf("filter buttons = %d, want 3", n)
	}
	if !strings.Contains(html, `class="filter-btn active" data-filter="case-study"`) {
		t.Error("active filter not marked")
	}
	if !strings.Contains(html, ">Case Study<") {
		t.Error("category label not formatted")
	}
	if n := strings.Count(html, `class="blog-card"`); n != 1 {
		t.Errorf("cards = %d, want 1", n)
	}
	if !strings.Contains(html, `name="filter" value="case-study"`) {
		t.Error("delete form should keep the active filter")
	}
}

func TestBlogPageNewPostModal(t *testing.T) {
	d := blogData(samplePosts())
	d.ShowNewPost = true
	d.NewPostError = "Please enter a title."
	d.Draft = blog.NewPost{Category: "tutorial", Excerpt: "kept"}

	html := render(t, Blog(DefaultScroll)(d))
	for _, want := range []string{
		`id="newPostModal"`,
		"Please enter a title.",
		`action="/blog/posts/"`,
		`name="page" value="page-1"`,
		`name="_csrf" value="tok"`,
		">kept</textarea>",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestBlogPageConfirmModal(t *testing.T) {
	posts := samplePosts()
	d := blogData(posts)
	d.Confirm = &posts[0]

	html := render(t, Blog(DefaultScroll)(d))
	if !strings.Contains(html, "Are you sure you want to delete this post?") {
		t.Error("confirmation prompt missing")
	}
	if !strings.Contains(html, `name="confirm" value="yes"`) {
		t.Error("confirm button missing")
	}
}

func TestBlogGridSanitizesExternalLink(t *testing.T) {
	posts := []blog.Post{{ID: 3, Title: "Bad", Category: "tutorial", Date: "2024-01-15", ExternalLink: "javascript:alert(1)"}}
	html := render(t, BlogGrid(blogData(posts)))
	if strings.Contains(html, "javascript:") {
		t.Error("unsafe link scheme was rendered")
	}
	if !strings.Contains(html, string(templ.FailedSanitizationURL)) {
		t.Error("expected the sanitised placeholder URL")
	}
}

func TestBlogGridStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var sb strings.Builder
	if err := BlogGrid(blogData(samplePosts())).Render(ctx, &sb); err == nil {
		t.Fatal("expected an error for a cancelled context")
	}
	if sb.Len() != 0 {
		t.Errorf("wrote %d bytes after cancellation", sb.Len())
	}
}
