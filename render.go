package folio

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// isPartial reports whether the request asks for the fragment named part,
// as site.js does with HX-Request and ?partial=.
func isPartial(c echo.Context, part string) bool {
	return c.Request().Header.Get("HX-Request") == "true" && c.QueryParam("partial") == part
}

func wantsJSON(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}

// pageData collects what every page needs. Full page renders pop pending
// flashes, so call it before the response body is written.
func (a *App) pageData(c echo.Context) PageData {
	d := PageData{
		Site:      a.Config,
		Theme:     CurrentTheme(c),
		CSRFToken: CsrfToken(c),
		Path:      c.Request().URL.Path,
	}
	if c.Request().Header.Get("HX-Request") != "true" {
		d.Flashes = popFlashes(c)
	}
	return d
}
