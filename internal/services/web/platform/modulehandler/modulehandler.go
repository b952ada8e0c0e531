// Package modulehandler provides a composable base for web module handlers.
//
// Feature modules share localization, page rendering and error handling.
// This package extracts that scaffold so modules embed it rather than
// duplicating it.
package modulehandler

import (
	"net/http"

	webi18n "github.com/techhubafrica/meetup-feedback/internal/services/web/i18n"
	module "github.com/techhubafrica/meetup-feedback/internal/services/web/module"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/platform/pagerender"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/platform/weberror"
	webtemplates "github.com/techhubafrica/meetup-feedback/internal/services/web/templates"
)

// Base carries the shared dependencies used by module handlers. Embed this
// in module handler structs.
type Base struct {
	deps module.Dependencies
}

// NewBase builds a handler base from module dependencies.
func NewBase(deps module.Dependencies) Base {
	return Base{deps: deps}
}

// Dependencies returns the module dependencies the base was built with.
func (b Base) Dependencies() module.Dependencies {
	return b.deps
}

// Localizer resolves the request localizer.
func (b Base) Localizer(r *http.Request) webtemplates.Localizer {
	loc, _ := webi18n.ResolveLocalizer(r)
	return loc
}

// CSRFToken returns the token to embed in forms rendered for r.
func (b Base) CSRFToken(r *http.Request) string {
	return b.deps.CSRFToken(r)
}

// WritePage renders a page (HTMX-aware) and falls back to the error page
// when rendering fails.
func (b Base) WritePage(w http.ResponseWriter, r *http.Request, page pagerender.Page) {
	if err := pagerender.WritePage(w, r, b.deps, page); err != nil {
		b.WriteError(w, r, err)
	}
}

// WriteError renders a localized module error response.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	weberror.WriteModuleError(w, r, err, b.deps)
}

// WriteNotFound renders a 404 error page within the app shell.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound, b.deps)
}
