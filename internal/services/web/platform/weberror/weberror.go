// Package weberror renders shared error responses for web modules.
package weberror

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/rs/zerolog"

	webi18n "github.com/techhubafrica/meetup-feedback/internal/services/web/i18n"
	module "github.com/techhubafrica/meetup-feedback/internal/services/web/module"
	apperrors "github.com/techhubafrica/meetup-feedback/internal/services/web/platform/errors"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/platform/httpx"
	webtemplates "github.com/techhubafrica/meetup-feedback/internal/services/web/templates"
)

// ShouldRenderAppError reports whether status should use the error page.
func ShouldRenderAppError(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// PublicMessage resolves a user-safe localized error message.
func PublicMessage(loc webtemplates.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if loc != nil {
		if key := apperrors.LocalizationKey(err); key != "" {
			if localized := strings.TrimSpace(loc.Sprintf(key)); localized != "" {
				return localized
			}
		}
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	if text := strings.TrimSpace(http.StatusText(statusCode)); text != "" {
		return text
	}
	return http.StatusText(http.StatusInternalServerError)
}

// WriteAppError writes the localized error page for full-page and HTMX
// requests. HTMX responses retarget the main content area.
func WriteAppError(w http.ResponseWriter, r *http.Request, statusCode int, _ module.Dependencies) {
	if w == nil {
		return
	}
	if !ShouldRenderAppError(statusCode) {
		statusCode = http.StatusInternalServerError
	}

	loc, lang := webi18n.ResolveLocalizer(r)
	fragment := webtemplates.ErrorState(statusCode, loc)
	ctx := httpx.RequestContext(r)

	var buf bytes.Buffer
	if httpx.IsHTMXRequest(r) {
		if err := fragment.Render(ctx, &buf); err != nil {
			http.Error(w, PublicMessage(loc, err), statusCode)
			return
		}
		w.Header().Set("HX-Retarget", "#main")
		w.Header().Set("HX-Reswap", "innerHTML")
		_ = httpx.WriteHTML(w, statusCode, buf.String())
		return
	}

	path := ""
	if r != nil && r.URL != nil {
		path = r.URL.Path
	}
	layout := webtemplates.Layout(webtemplates.PageContext{
		Title:       webtemplates.ErrorPageTitle(statusCode, loc),
		Lang:        lang,
		Loc:         loc,
		CurrentPath: path,
	})
	if err := layout.Render(templ.WithChildren(ctx, fragment), &buf); err != nil {
		http.Error(w, PublicMessage(loc, err), statusCode)
		return
	}
	_ = httpx.WriteHTML(w, statusCode, buf.String())
}

// WriteModuleError writes a module-safe localized error response. Server
// side failures are logged with their cause; the response never carries it.
func WriteModuleError(w http.ResponseWriter, r *http.Request, err error, deps module.Dependencies) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if r != nil && statusCode >= http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().Err(err).Int("status", statusCode).Msg("web request failed")
	}
	if ShouldRenderAppError(statusCode) {
		WriteAppError(w, r, statusCode, deps)
		return
	}
	loc, _ := webi18n.ResolveLocalizer(r)
	http.Error(w, PublicMessage(loc, err), statusCode)
}
