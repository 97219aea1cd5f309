package folio

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/blog"
)

const testCSRF = "test-csrf-token"

var testNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

// captured records the data handed to the stub views.
type captured struct {
	mu   sync.Mutex
	home HomeData
	blog BlogData
	page PageData
}

func (c *captured) Blog() BlogData {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.blog
}

func (c *captured) Home() HomeData {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.home
}

func text(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

func stubViews(seen *captured) ViewFuncs {
	blogView := func(name string) func(d BlogData) templ.Component {
		return func(d BlogData) templ.Component {
			seen.mu.Lock()
			seen.blog = d
			seen.mu.Unlock()
			return text(name)
		}
	}
	pageView := func(name string) func(d PageData) templ.Component {
		return func(d PageData) templ.Component {
			seen.mu.Lock()
			seen.page = d
			seen.mu.Unlock()
			return text(name)
		}
	}
	return ViewFuncs{
		Home: func(d HomeData) templ.Component {
			seen.mu.Lock()
			seen.home = d
			seen.mu.Unlock()
			return text("home")
		},
		Blog:        blogView("blog"),
		BlogGrid:    blogView("grid"),
		PostModal:   blogView("post"),
		NotFound:    pageView("not found"),
		ServerError: pageView("server error"),
	}
}

type stubRelay struct {
	mu     sync.Mutex
	err    error
	fields []url.Values
}

func (r *stubRelay) Submit(_ context.Context, fields url.Values) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fields = append(r.fields, fields)
	return r.err
}

func testPosts() []blog.Post {
	return []blog.Post{
		{ID: 1, Title: "Go Tips", Category: "tutorial", Date: "2024-01-15", Excerpt: "Tips", Content: "<p>Some tips</p>"},
		{ID: 2, Title: "Shipping", Category: "case-study", Date: "2024-02-01", ExternalLink: "https://example.org/shipping"},
	}
}

func writePosts(t *testing.T, posts []blog.Post) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blog-posts.json")
	b, err := json.Marshal(posts)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestApp(t *testing.T, postsPath string, opts ...Option) (*App, *captured, *stubRelay) {
	t.Helper()
	seen := &captured{}
	relay := &stubRelay{}
	cfg := SiteConfig{
		Name:          "Jane",
		URL:           "https://example.com",
		PostsPath:     postsPath,
		SessionSecret: "test-secret",
	}
	opts = append([]Option{
		WithRelay(relay),
		WithClock(func() time.Time { return testNow }),
		WithStaticDir(t.TempDir()),
	}, opts...)
	a := New(cfg, stubViews(seen), opts...)
	if err := a.Setup(); err != nil {
		t.Fatalf("setup: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a, seen, relay
}

// client carries cookies between requests like a browser.
type client struct {
	t       *testing.T
	app     *App
	cookies map[string]*http.Cookie
}

func newClient(t *testing.T, a *App) *client {
	return &client{t: t, app: a, cookies: map[string]*http.Cookie{
		"_csrf": {Name: "_csrf", Value: testCSRF},
	}}
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	c.t.Helper()
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c.app.Echo.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = &http.Cookie{Name: ck.Name, Value: ck.Value}
	}
	return rec
}

func (c *client) get(target string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	return c.do(req)
}

func (c *client) post(target string, form url.Values, header ...string) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	form.Set("_csrf", testCSRF)
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, "application/x-www-form-urlencoded")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	return c.do(req)
}

// openBlog performs a page load and returns the page token.
func openBlog(t *testing.T, c *client, seen *captured) string {
	t.Helper()
	rec := c.get("/blog/")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /blog/ = %d", rec.Code)
	}
	token := seen.Blog().PageToken
	if token == "" {
		t.Fatal("page token not set")
	}
	return token
}

func TestBlogPageLoad(t *testing.T) {
	a, seen, _ := newTestApp(t, writePosts(t, testPosts()))
	c := newClient(t, a)

	openBlog(t, c, seen)
	d := seen.Blog()
	if len(d.Posts) != 2 {
		t.Fatalf("posts = %d, want 2", len(d.Posts))
	}
	if got := strings.Join(d.Categories, ","); got != "tutorial,case-study" {
		t.Errorf("categories = %q", got)
	}
	if d.Filter != blog.FilterAll {
		t.Errorf("filter = %q, want all", d.Filter)
	}
	if d.CSRFToken != testCSRF {
		t.Errorf("csrf = %q", d.CSRFToken)
	}
}

func TestBlogRedirectAddsSlash(t *testing.T) {
	a, _, _ := newTestApp(t, writePosts(t, testPosts()))
	rec := newClient(t, a).get("/blog")
	if rec.Code != http.StatusMovedPermanently || rec.Header().Get("Location") != "/blog/" {
		t.Fatalf("got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestBlogFetchFailureRendersEmpty(t *testing.T) {
	a, seen, _ := newTestApp(t, filepath.Join(t.TempDir(), "missing.json"))
	c := newClient(t, a)

	openBlog(t, c, seen)
	if n := len(seen.Blog().Posts); n != 0 {
		t.Fatalf("posts = %d, want 0", n)
	}
}

func TestBlogFilterPartial(t *testing.T) {
	a, seen, _ := newTestApp(t, writePosts(t, testPosts()))
	c := newClient(t, a)
	token := openBlog(t, c, seen)

	rec := c.get("/blog/?page="+token+"&filter=case-study&partial=grid", "HX-Request", "true")
	if rec.Code != http.StatusOK || rec.Body.String() != "grid" {
		t.Fatalf("got %d %q", rec.Code, rec.Body.String())
	}
	d := seen.Blog()
	if len(d.Posts) != 1 || d.Posts[0].ID != 2 {
		t.Fatalf("filtered posts = %+v", d.Posts)
	}
	if d.PageToken != token {
		t.Errorf("partial changed page token")
	}

	c.get("/blog/?page="+token+"&filter=nope&partial=grid", "HX-Request", "true")
	if n := len(seen.Blog().Posts); n != 0 {
		t.Errorf("unknown category matched %d posts", n)
	}
}

func TestCreatePost(t *testing.T) {
	a, seen, _ := newTestApp(t, writePosts(t, testPosts()))
	c := newClient(t, a)
	token := openBlog(t, c, seen)

	rec := c.post("/blog/posts/", url.Values{
		"page":     {token},
		"title":    {"  New Post  "},
		"category": {"tutorial"},
		"content":  {"<p>Hello</p>"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("create = %d: %s", rec.Code, rec.Body.String())
	}
	loc := rec.Header().Get("Location")
	if !strings.Contains(loc, "page="+token) {
		t.Errorf("location = %q", loc)
	}

	list, ok := a.Pages.Get(token)
	if !ok {
		t.Fatal("page vanished")
	}
	posts := list.Posts()
	if len(posts) != 3 {
		t.Fatalf("posts = %d, want 3", len(posts))
	}
	p := posts[0]
	if p.Title != "New Post" || p.ID != testNow.UnixMilli() || p.Date != "2024-03-10" {
		t.Errorf("new post = %+v", p)
	}
	if p.Image != blog.DefaultPlaceholderBase+"?text=New%20Post" {
		t.Errorf("image = %q", p.Image)
	}

	c.get(loc)
	d := seen.Blog()
	if len(d.Flashes) != 1 || d.Flashes[0] != msgPostPublished {
		t.Errorf("flashes = %v", d.Flashes)
	}
	if d.Posts[0].Title != "New Post" {
		t.Errorf("first card = %q", d.Posts[0].Title)
	}
}

func TestCreatePostValidation(t *testing.T) {
	a, seen, _ := newTestApp(t, writePosts(t, testPosts()))
	c := newClient(t, a)
	token := openBlog(t, c, seen)

	rec := c.post("/blog/posts/", url.Values{
		"page":     {token},
		"category": {"tutorial"},
		"excerpt":  {"kept"},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("create = %d", rec.Code)
	}
	d := seen.Blog()
	if !d.ShowNewPost || d.NewPostError == "" || d.Draft.Excerpt != "kept" {
		t.Errorf("form state = %+v", d)
	}
	list, _ := a.Pages.Get(token)
	if list.Len() != 2 {
		t.Errorf("invalid post was added")
	}
}

func TestCreatePostExpiredPage(t *testing.T) {
	a, seen, _ := newTestApp(t, writePosts(t, testPosts()))
	c := newClient(t, a)

	rec := c.post("/blog/posts/", url.Values{"page": {"gone"}, "title": {"x"}, "category": {"y"}})
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/blog/" {
		t.Fatalf("got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	c.get("/blog/")
	if d := seen.Blog(); len(d.Flashes) != 1 || d.Flashes[0] != msgPageExpired {
		t.Errorf("flashes = %v", d.Flashes)
	}
}

func TestPartialForExpiredPageRedirects(t *testing.T) {
	a, seen, _ := newTestApp(t, writePosts(t, testPosts()))
	c := newClient(t, a)
	openBlog(t, c, seen)
	before := a.Pages.Len()

	for _, target := range []string{
		"/blog/?page=gone&filter=tutorial&partial=grid",
		"/blog/posts/1/?page=gone&partial=post",
	} {
		rec := c.get(target, "HX-Request", "true")
		if rec.Code != http.StatusNoContent || rec.Header().Get("HX-Redirect") != "/blog/" {
			t.Errorf("%s = %d, HX-Redirect %q", target, rec.Code, rec.Header().Get("HX-Redirect"))
		}
		if rec.Body.Len() != 0 {
			t.Errorf("%s rendered %q", target, rec.Body.String())
		}
	}
	if n := a.Pages.Len(); n != before {
		t.Errorf("pages = %d, want %d (no page should be opened)", n, before)
	}

	c.get("/blog/")
	if d := seen.Blog(); len(d.Flashes) == 0 || d.Flashes[0] != msgPageExpired {
		t.Errorf("flashes = %v", d.Flashes)
	}
}

func TestReloadDiscardsEdits(t *testing.T) {
	a, seen, _ := newTestApp(t, writePosts(t, testPosts()))
	c := newClient(t, a)
	token := openBlog(t, c, seen)

	c.post("/blog/posts/", url.Values{"page": {token}, "title": {"Temp"}, "category": {"misc"}})

	fresh := openBlog(t, c, seen)
	if fresh == token {
		t.Fatal("page load reused the old token")
	}
	if n := len(seen.Blog().Posts); n != 2 {
		t.Errorf("reloaded posts = %d, want 2", n)
	}
}

func TestDeletePost(t *testing.T) {
	a, seen, _ := newTestApp(t, writePosts(t, testPosts()))
	c := newClient(t, a)
	token := openBlog(t, c, seen)
	list, _ := a.Pages.Get(token)

	rec := c.post("/blog/posts/1/delete/", url.Values{"page": {token}, "confirm": {"no"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("decline = %d", rec.Code)
	}
	if list.Len() != 2 {
		t.Fatalf("declined delete removed a post")
	}

	c.post("/blog/posts/99/delete/", url.Values{"page": {token}, "confirm": {"yes"}})
	if list.Len() != 2 {
		t.Fatalf("absent id removed a post")
	}

	rec = c.post("/blog/posts/1/delete/", url.Values{"page": {token}, "confirm": {"yes"}, "filter": {"tutorial"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("delete = %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("Location"), "filter=tutorial") {
		t.Errorf("location dropped filter: %q", rec.Header().Get("Location"))
	}
	if _, err := list.Find(1); !errors.Is(err, blog.ErrPostNotFound) {
		t.Errorf("post 1 still present")
	}
	if list.Len() != 1 {
		t.Errorf("posts = %d, want 1", list.Len())
	}
}

func TestDeleteConfirmDialog(t *testing.T) {
	a, seen, _ := newTestApp(t, writePosts(t, testPosts()))
	c := newClient(t, a)
	token := openBlog(t, c, seen)

	c.get("/blog/?page=" + token + "&confirm=2")
	d := seen.Blog()
	if d.Confirm == nil || d.Confirm.ID != 2 {
		t.Fatalf("confirm = %+v", d.Confirm)
	}

	c.get("/blog/?page=" + token + "&confirm=42")
	if seen.Blog().Confirm != nil {
		t.Error("absent id opened a confirmation")
	}
}

func TestCSRFRequired(t *testing.T) {
	a, seen, _ := newTestApp(t, writePosts(t, testPosts()))
	c := newClient(t, a)
	token := openBlog(t, c, seen)

	form := url.Values{"page": {token}, "confirm": {"yes"}, "_csrf": {"wrong"}}
	req := httptest.NewRequest(http.MethodPost, "/blog/posts/1/delete/", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, "application/x-www-form-urlencoded")
	rec := c.do(req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("got %d, want 403", rec.Code)
	}
	list, _ := a.Pages.Get(token)
	if list.Len() != 2 {
		t.Error("forged request removed a post")
	}
}

func TestPostDetail(t *testing.T) {
	a, seen, _ := newTestApp(t, writePosts(t, testPosts()))
	c := newClient(t, a)
	token := openBlog(t, c, seen)

	rec := c.get("/blog/posts/1/?page="+token+"&partial=post", "HX-Request", "true")
	if rec.Code != http.StatusOK || rec.Body.String() != "post" {
		t.Fatalf("got %d %q", rec.Code, rec.Body.String())
	}
	d := seen.Blog()
	if d.Reading == nil || d.Reading.ID != 1 {
		t.Fatalf("reading = %+v", d.Reading)
	}
	if len(d.Shares) != 4 {
		t.Errorf("shares = %d, want 4", len(d.Shares))
	}

	rec = c.get("/blog/posts/42/?page="+token+"&partial=post", "HX-Request", "true")
	if rec.Code != http.StatusNoContent {
		t.Errorf("absent id = %d, want 204", rec.Code)
	}

	rec = c.get("/blog/posts/1/?page=" + token)
	if rec.Code != http.StatusSeeOther || !strings.Contains(rec.Header().Get("Location"), "read=1") {
		t.Errorf("got %d %q", rec.Code, rec.Header().Get("Location"))
	}

	c.get("/blog/?page=" + token + "&read=1")
	if r := seen.Blog().Reading; r == nil || r.Title != "Go Tips" {
		t.Errorf("read query did not open the post")
	}
}

func TestSQLiteStorePersistsEdits(t *testing.T) {
	db, err := blog.NewSQLiteStore(filepath.Join(t.TempDir(), "posts.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if err := db.Save(context.Background(), testPosts()); err != nil {
		t.Fatal(err)
	}

	a, seen, _ := newTestApp(t, "", WithPostStore(db))
	c := newClient(t, a)
	token := openBlog(t, c, seen)

	c.post("/blog/posts/", url.Values{"page": {token}, "title": {"Kept"}, "category": {"misc"}})

	openBlog(t, c, seen)
	posts := seen.Blog().Posts
	if len(posts) != 3 || posts[0].Title != "Kept" {
		t.Fatalf("reloaded posts = %+v", posts)
	}
}

func TestSQLiteStoreKeepsEditsFromOtherPages(t *testing.T) {
	db, err := blog.NewSQLiteStore(filepath.Join(t.TempDir(), "posts.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if err := db.Save(context.Background(), testPosts()); err != nil {
		t.Fatal(err)
	}

	a, seen, _ := newTestApp(t, "", WithPostStore(db))
	c := newClient(t, a)
	pageA := openBlog(t, c, seen)
	pageB := openBlog(t, c, seen)

	c.post("/blog/posts/1/delete/", url.Values{"page": {pageA}, "confirm": {"yes"}})
	c.post("/blog/posts/", url.Values{"page": {pageB}, "title": {"B"}, "category": {"misc"}})

	stored, err := db.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	var titles []string
	for _, p := range stored {
		titles = append(titles, p.Title)
	}
	if want := []string{"B", "Shipping"}; !reflect.DeepEqual(titles, want) {
		t.Errorf("stored titles = %v, want %v", titles, want)
	}
}

func TestThemeToggle(t *testing.T) {
	a, seen, _ := newTestApp(t, writePosts(t, testPosts()))
	c := newClient(t, a)

	c.get("/")
	if th := seen.Home().Theme; th != ThemeDark {
		t.Fatalf("default theme = %q", th)
	}

	rec := c.post("/theme/", nil, "Accept", "application/json")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"theme":"light"`) {
		t.Fatalf("toggle = %d %s", rec.Code, rec.Body.String())
	}
	c.get("/")
	if th := seen.Home().Theme; th != ThemeLight {
		t.Fatalf("theme after toggle = %q", th)
	}

	rec = c.post("/theme/", url.Values{"theme": {"dark"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("form toggle = %d", rec.Code)
	}
	c.get("/")
	if th := seen.Home().Theme; th != ThemeDark {
		t.Errorf("theme = %q, want dark", th)
	}
}

func TestContact(t *testing.T) {
	a, seen, relay := newTestApp(t, writePosts(t, testPosts()))
	c := newClient(t, a)

	rec := c.post("/contact/", url.Values{"name": {"Ann"}, "message": {"Hi"}}, "Accept", "application/json")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"success":true`) {
		t.Fatalf("contact = %d %s", rec.Code, rec.Body.String())
	}
	if len(relay.fields) != 1 || relay.fields[0].Get("name") != "Ann" || relay.fields[0].Has("_csrf") {
		t.Errorf("relayed fields = %v", relay.fields)
	}

	relay.err = errors.New("relay down")
	rec = c.post("/contact/", url.Values{"name": {"Ann"}}, "Accept", "application/json")
	if rec.Code != http.StatusBadGateway || !strings.Contains(rec.Body.String(), `"success":false`) {
		t.Fatalf("failed contact = %d %s", rec.Code, rec.Body.String())
	}

	rec = c.post("/contact/", url.Values{"name": {"Ann"}})
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/#contact" {
		t.Fatalf("form contact = %d %q", rec.Code, rec.Header().Get("Location"))
	}
	c.get("/")
	if f := seen.Home().Flashes; len(f) != 1 || !strings.HasPrefix(f[0], "Oops!") {
		t.Errorf("flashes = %v", f)
	}
}

func TestContactRateLimited(t *testing.T) {
	a, _, _ := newTestApp(t, writePosts(t, testPosts()))
	c := newClient(t, a)

	for i := 0; i < 5; i++ {
		if rec := c.post("/contact/", url.Values{"name": {"Ann"}}, "Accept", "application/json"); rec.Code != http.StatusOK {
			t.Fatalf("submission %d = %d", i+1, rec.Code)
		}
	}
	if rec := c.post("/contact/", url.Values{"name": {"Ann"}}, "Accept", "application/json"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("sixth submission = %d, want 429", rec.Code)
	}
}

func TestNotFound(t *testing.T) {
	a, _, _ := newTestApp(t, writePosts(t, testPosts()))
	rec := newClient(t, a).get("/nope/")
	if rec.Code != http.StatusNotFound || rec.Body.String() != "not found" {
		t.Fatalf("got %d %q", rec.Code, rec.Body.String())
	}
}
