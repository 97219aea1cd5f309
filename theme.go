package folio

import (
	"net/http"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

// Theme is the visitor's colour scheme preference.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ParseTheme maps a stored value to a Theme. Anything but "light" is dark.
func ParseTheme(s string) Theme {
	if s == string(ThemeLight) {
		return ThemeLight
	}
	return ThemeDark
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// BodyClass is the class the page body carries for t.
func (t Theme) BodyClass() string {
	if t == ThemeLight {
		return "light-mode"
	}
	return ""
}

const themeKey = "theme"

// CurrentTheme reads the theme preference from the preference session.
func CurrentTheme(c echo.Context) Theme {
	sess, err := session.Get(prefsSession, c)
	if err != nil {
		return ThemeDark
	}
	v, _ := sess.Values[themeKey].(string)
	return ParseTheme(v)
}

func setTheme(c echo.Context, t Theme) error {
	sess, err := session.Get(prefsSession, c)
	if err != nil {
		return err
	}
	sess.Values[themeKey] = string(t)
	return sess.Save(c.Request(), c.Response())
}

type themeResponse struct {
	Theme Theme `json:"theme"`
}

// handleTheme stores theme=light|dark, or toggles the current preference
// when no value is given.
func (a *App) handleTheme(c echo.Context) error {
	var next Theme
	switch v := c.FormValue("theme"); v {
	case string(ThemeLight), string(ThemeDark):
		next = Theme(v)
	default:
		next = CurrentTheme(c).Toggle()
	}
	if err := setTheme(c, next); err != nil {
		return err
	}
	if wantsJSON(c) {
		return c.JSON(http.StatusOK, themeResponse{Theme: next})
	}
	return c.Redirect(http.StatusSeeOther, safeReferer(c, "/"))
}
