package templates

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"github.com/techhubafrica/meetup-feedback/internal/services/web/routepath"
)

const (
	errorPageTitleNotFoundKey  = "web.error.page_title_not_found"
	errorPageTitleServerErrKey = "web.error.page_title_server_error"
	errorHeadingNotFoundKey    = "web.error.title_not_found"
	errorHeadingServerErrKey   = "web.error.title_server_error"
	errorMessageNotFoundKey    = "web.error.message_not_found"
	errorMessageServerErrKey   = "web.error.message_server_error"
	errorBackHomeKey           = "web.error.action_back_home"
)

// ErrorPageTitle returns the browser page title for error pages.
func ErrorPageTitle(statusCode int, loc Localizer) string {
	if normalizeErrorStatus(statusCode) == http.StatusNotFound {
		return T(loc, errorPageTitleNotFoundKey)
	}
	return T(loc, errorPageTitleServerErrKey)
}

// ErrorState renders the error card for not-found and server failures.
func ErrorState(statusCode int, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		m := newMarkup(w)
		heading, message := errorHeadingServerErrKey, errorMessageServerErrKey
		if normalizeErrorStatus(statusCode) == http.StatusNotFound {
			heading, message = errorHeadingNotFoundKey, errorMessageNotFoundKey
		}
		m.open("section", "id", "error-state", "class", "card error-state", "data-status", itoa(normalizeErrorStatus(statusCode)))
		m.element("h1", T(loc, heading))
		m.element("p", T(loc, message))
		m.element("a", T(loc, errorBackHomeKey), "href", routepath.Root, "class", "button")
		m.close("section")
		return m.err
	})
}

func normalizeErrorStatus(statusCode int) int {
	if statusCode == http.StatusNotFound {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
