// Package views is the default set of page components for a folio site.
package views

//go:generate templ generate

import "github.com/eringen/folio"

// Default returns the stock components with the default scroll thresholds.
func Default() folio.ViewFuncs {
	return New(DefaultScroll)
}

// New returns the stock components using s for the page's scroll behaviour.
func New(s Scroll) folio.ViewFuncs {
	return folio.ViewFuncs{
		Home:        Home(s),
		Blog:        Blog(s),
		BlogGrid:    BlogGrid,
		PostModal:   PostModal,
		NotFound:    NotFound(s),
		ServerError: ServerError(s),
	}
}
