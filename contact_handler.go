package folio

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/contact"
)

const msgTooManySubmissions = "You have sent several messages already. Please try again later."

type contactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// handleContact relays the contact form. Every relay failure produces the
// same generic message; nothing is retried.
func (a *App) handleContact(c echo.Context) error {
	if !a.contactLimiter.Allow(c.RealIP()) {
		return a.contactResult(c, http.StatusTooManyRequests, false, msgTooManySubmissions)
	}
	form, err := c.FormParams()
	if err != nil {
		return a.contactResult(c, http.StatusBadRequest, false, contact.FailureMessage)
	}
	if err := a.Relay.Submit(c.Request().Context(), contact.Fields(form)); err != nil {
		c.Logger().Errorf("contact relay: %v", err)
		return a.contactResult(c, http.StatusBadGateway, false, contact.FailureMessage)
	}
	return a.contactResult(c, http.StatusOK, true, contact.SuccessMessage)
}

// contactResult answers JSON callers (site.js) directly and sends form
// callers back to the contact section with a flash.
func (a *App) contactResult(c echo.Context, status int, ok bool, msg string) error {
	if wantsJSON(c) {
		return c.JSON(status, contactResponse{Success: ok, Message: msg})
	}
	if err := addFlash(c, msg); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/#contact")
}
