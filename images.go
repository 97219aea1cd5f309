package folio

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/placeholder"
)

const (
	defaultPlaceholderBG = "0a192f"
	defaultPlaceholderFG = "00ff88"
)

// handlePlaceholder renders /placeholder/:size[/:bg/:fg]?text= as a JPEG.
func (a *App) handlePlaceholder(c echo.Context) error {
	bg, fg := c.Param("bg"), c.Param("fg")
	if bg == "" {
		bg = defaultPlaceholderBG
	}
	if fg == "" {
		fg = defaultPlaceholderFG
	}
	spec, err := placeholder.Parse(c.Param("size"), bg, fg, c.QueryParam("text"))
	if err != nil {
		if errors.Is(err, placeholder.ErrInvalidSpec) {
			return c.String(http.StatusBadRequest, err.Error())
		}
		return err
	}
	var buf bytes.Buffer
	if err := placeholder.Encode(&buf, spec); err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/jpeg", buf.Bytes())
}
