package folio

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/blog"
)

// Flash messages shown after blog actions.
const (
	msgPostPublished = "Blog post published successfully!"
	msgPageExpired   = "This page expired, so the blog was reloaded. Please try again."
)

// openPage returns the post list of the page named by token, or loads the
// source list once and opens a new page when token is unknown or expired.
// The returned token is the one the rendered page must carry.
func (a *App) openPage(c echo.Context, token string) (string, *blog.List) {
	if list, ok := a.Pages.Get(token); ok {
		return token, list
	}
	posts := blog.Load(c.Request().Context(), a.Cache, c.Logger())
	return a.Pages.Open(posts)
}

func (a *App) blogData(c echo.Context, token string, list *blog.List, filter string) BlogData {
	if filter == "" {
		filter = blog.FilterAll
	}
	all := list.Posts()
	return BlogData{
		PageData:        a.pageData(c),
		PageToken:       token,
		PageURL:         BuildURL(a.Config.URL, "blog"),
		Filter:          filter,
		Categories:      blog.Categories(all),
		Posts:           blog.Filter(all, filter),
		PlaceholderBase: a.Config.PlaceholderBase,
	}
}

func (d *BlogData) openReading(list *blog.List, id int64) {
	p, err := list.Find(id)
	if err != nil {
		return
	}
	d.Reading = &p
	d.Shares = blog.ShareLinks(d.PageURL, p.Title)
}

// handleBlog renders the blog page. Without a live page token it is a page
// load: the source list is read once and a new page is opened. Query
// values open the detail modal (read), the new post modal (modal=new) or
// the delete confirmation (confirm). Grid fragments are only served for
// live pages.
func (a *App) handleBlog(c echo.Context) error {
	if isPartial(c, "grid") {
		token := c.QueryParam("page")
		list, ok := a.Pages.Get(token)
		if !ok {
			return a.expiredPartial(c)
		}
		return Render(c, a.Views.BlogGrid(a.blogData(c, token, list, c.QueryParam("filter"))))
	}

	token, list := a.openPage(c, c.QueryParam("page"))
	data := a.blogData(c, token, list, c.QueryParam("filter"))

	if id, ok := parseID(c.QueryParam("read")); ok {
		data.openReading(list, id)
	}
	if c.QueryParam("modal") == "new" {
		data.ShowNewPost = true
	}
	if id, ok := parseID(c.QueryParam("confirm")); ok {
		if p, err := list.Find(id); err == nil {
			data.Confirm = &p
		}
	}
	return Render(c, a.Views.Blog(data))
}

// handlePostDetail renders one post in the detail modal. A missing id is a
// no-op: partial requests get 204, page requests the plain page.
func (a *App) handlePostDetail(c echo.Context) error {
	id, ok := parseID(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	if isPartial(c, "post") {
		token := c.QueryParam("page")
		list, ok := a.Pages.Get(token)
		if !ok {
			return a.expiredPartial(c)
		}
		data := a.blogData(c, token, list, c.QueryParam("filter"))
		data.openReading(list, id)
		if data.Reading == nil {
			return c.NoContent(http.StatusNoContent)
		}
		return Render(c, a.Views.PostModal(data))
	}
	token, _ := a.openPage(c, c.QueryParam("page"))
	return c.Redirect(http.StatusSeeOther, pageLocation(token, url.Values{"read": {strconv.FormatInt(id, 10)}}))
}

// handleCreatePost prepends a post built from the form to the page's list
// and then records it in the store. The JSON stores write nothing.
func (a *App) handleCreatePost(c echo.Context) error {
	list, ok := a.Pages.Get(c.FormValue("page"))
	if !ok {
		return a.expiredPage(c)
	}
	token := c.FormValue("page")

	draft := blog.NewPost{
		Title:        c.FormValue("title"),
		Category:     c.FormValue("category"),
		Excerpt:      c.FormValue("excerpt"),
		Content:      c.FormValue("content"),
		Image:        c.FormValue("image"),
		ExternalLink: c.FormValue("externalLink"),
	}
	if msg := validateDraft(draft); msg != "" {
		data := a.blogData(c, token, list, "")
		data.ShowNewPost = true
		data.NewPostError = msg
		data.Draft = draft
		return RenderStatus(c, http.StatusUnprocessableEntity, a.Views.Blog(data))
	}

	post := draft.Build(a.now(), a.Config.PlaceholderBase)
	list.Prepend(post)
	if err := a.Cache.Prepend(c.Request().Context(), post, list.Posts()); err != nil {
		c.Logger().Errorf("save new post: %v", err)
	}

	if err := addFlash(c, msgPostPublished); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, pageLocation(token, nil))
}

// handleDeletePost removes the post only when the form carries confirm=yes.
// Any other answer is a declined confirmation and leaves the list alone.
func (a *App) handleDeletePost(c echo.Context) error {
	list, ok := a.Pages.Get(c.FormValue("page"))
	if !ok {
		return a.expiredPage(c)
	}
	token := c.FormValue("page")

	if c.FormValue("confirm") == "yes" {
		if id, ok := parseID(c.Param("id")); ok && list.Remove(id) {
			if err := a.Cache.Remove(c.Request().Context(), id, list.Posts()); err != nil {
				c.Logger().Errorf("save post removal: %v", err)
			}
		}
	}
	var extra url.Values
	if f := c.FormValue("filter"); f != "" {
		extra = url.Values{"filter": {f}}
	}
	return c.Redirect(http.StatusSeeOther, pageLocation(token, extra))
}

func (a *App) expiredPage(c echo.Context) error {
	if err := addFlash(c, msgPageExpired); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/blog/")
}

// expiredPartial answers a fragment request whose page is gone. No page is
// opened; the HX-Redirect header sends the browser to a fresh page load.
func (a *App) expiredPartial(c echo.Context) error {
	if err := addFlash(c, msgPageExpired); err != nil {
		return err
	}
	c.Response().Header().Set("HX-Redirect", "/blog/")
	return c.NoContent(http.StatusNoContent)
}

func validateDraft(d blog.NewPost) string {
	switch {
	case strings.TrimSpace(d.Title) == "":
		return "Please enter a title."
	case strings.TrimSpace(d.Category) == "":
		return "Please choose a category."
	}
	return ""
}

func pageLocation(token string, extra url.Values) string {
	q := url.Values{}
	for k, v := range extra {
		q[k] = v
	}
	q.Set("page", token)
	return "/blog/?" + q.Encode()
}
