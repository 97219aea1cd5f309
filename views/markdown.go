package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Owner-authored prose from the config (about text, project descriptions).
// Raw HTML in the source is dropped by goldmark's default renderer.
var md = goldmark.New(
	goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
)

func markdown(src string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if src == "" {
			return nil
		}
		return md.Convert([]byte(src), w)
	})
}
