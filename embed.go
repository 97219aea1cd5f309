package folio

import "embed"

// EmbeddedAssets contains static assets shipped with the framework:
// site.js (navigation, scroll, theme, filters, contact form) and site.css.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
