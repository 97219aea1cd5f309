package folio

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/blog"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// renderSitemap lists the portfolio and blog pages. The blog's lastmod is
// the newest post date; posts have no pages of their own.
func (a *App) renderSitemap(c echo.Context, posts []blog.Post) error {
	base := a.Config.URL
	latest := ""
	for _, p := range posts {
		if p.Date > latest {
			latest = p.Date
		}
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []sitemapURL{
			{Loc: BuildURL(base)},
			{Loc: BuildURL(base, "blog"), LastMod: latest},
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
