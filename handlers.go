package folio

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (a *App) handleHome(c echo.Context) error {
	return Render(c, a.Views.Home(HomeData{PageData: a.pageData(c)}))
}

func handleBlogRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/blog/")
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.Load(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("sitemap: load posts: %v", err)
		posts = nil
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.Load(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("feed: load posts: %v", err)
		posts = nil
	}
	return a.renderRSS(c, posts)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	return c.File(a.staticDir + "/robots.txt")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.pageData(c)))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError(a.pageData(c)))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
