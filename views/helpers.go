package views

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/eringen/folio"
	"github.com/eringen/folio/blog"
)

// Scroll holds the thresholds site.js reads from the body's data attributes.
type Scroll struct {
	SectionOffset   int     // px above a section at which its nav link activates
	NavbarOffset    int     // px scrolled before the navbar turns opaque
	BackToTopOffset int     // px scrolled before the back-to-top button shows
	RevealThreshold float64 // visible fraction that triggers a reveal
	RevealMargin    string  // IntersectionObserver rootMargin
}

// DefaultScroll is what site.js falls back to when an attribute is missing.
var DefaultScroll = Scroll{
	SectionOffset:   200,
	NavbarOffset:    100,
	BackToTopOffset: 300,
	RevealThreshold: 0.1,
	RevealMargin:    "0px 0px -50px 0px",
}

type page struct {
	Title       string
	Description string
	JsonLD      string
}

type navLink struct {
	ID    string
	Label string
	Href  string
}

// navLinks points at the home sections; off the home page they link back to it.
func navLinks(path string) []navLink {
	prefix := ""
	if path != "/" {
		prefix = "/"
	}
	return []navLink{
		{"home", "Home", prefix + "#home"},
		{"about", "About", prefix + "#about"},
		{"projects", "Projects", prefix + "#projects"},
		{"blog", "Blog", "/blog/"},
		{"contact", "Contact", prefix + "#contact"},
	}
}

// FilterClass returns the CSS classes for a filter button.
func FilterClass(active bool) string {
	if active {
		return "filter-btn active"
	}
	return "filter-btn"
}

func postID(p blog.Post) string {
	return strconv.FormatInt(p.ID, 10)
}

func themeIcon(t folio.Theme) string {
	if t == folio.ThemeLight {
		return "fas fa-sun"
	}
	return "fas fa-moon"
}

// jsonLD writes the structured data block. The payload comes from
// json.Marshal, which escapes '<' so it cannot close the script early.
func jsonLD(payload string) templ.Component {
	return templ.Raw(`<script type="application/ld+json">` + payload + `</script>`)
}
