// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	webi18n "github.com/techhubafrica/meetup-feedback/internal/services/web/i18n"
	module "github.com/techhubafrica/meetup-feedback/internal/services/web/module"
	flashnotice "github.com/techhubafrica/meetup-feedback/internal/services/web/platform/flash"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/platform/httpx"
	webtemplates "github.com/techhubafrica/meetup-feedback/internal/services/web/templates"
)

// Page describes a module page response for both full-page and HTMX flows.
// Fragment is the page body for full loads and the whole response for HTMX
// requests. Toast, when set, wins over a pending flash notice.
type Page struct {
	Title      string
	StatusCode int
	Fragment   templ.Component
	Toast      *webtemplates.Toast
}

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

// WritePage writes a module page. HTMX requests receive the fragment plus an
// out-of-band toast; full loads receive the layout with any flash notice.
func WritePage(w http.ResponseWriter, r *http.Request, deps module.Dependencies, page Page) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	fragment := page.Fragment
	if fragment == nil {
		fragment = emptyComponent{}
	}

	loc, lang := webi18n.ResolveLocalizer(r)
	ctx := httpx.RequestContext(r)
	var buf bytes.Buffer
	if httpx.IsHTMXRequest(r) {
		if err := fragment.Render(ctx, &buf); err != nil {
			return err
		}
		if page.Toast != nil {
			if err := webtemplates.ToastRegion(page.Toast, true).Render(ctx, &buf); err != nil {
				return err
			}
		}
		return httpx.WriteHTML(w, statusCode, buf.String())
	}

	flashToast := resolveFlashToast(w, r, deps, loc)
	toast := page.Toast
	if toast == nil {
		toast = flashToast
	}
	path := ""
	if r != nil && r.URL != nil {
		path = r.URL.Path
	}
	layout := webtemplates.Layout(webtemplates.PageContext{
		Title:       page.Title,
		Lang:        lang,
		Loc:         loc,
		CurrentPath: path,
		Toast:       toast,
	})
	if err := layout.Render(templ.WithChildren(ctx, fragment), &buf); err != nil {
		return err
	}
	return httpx.WriteHTML(w, statusCode, buf.String())
}

// ToastFromNotice localizes a flash notice into a toast.
func ToastFromNotice(loc webtemplates.Localizer, notice flashnotice.Notice) *webtemplates.Toast {
	args := make([]any, 0, len(notice.Args))
	for _, arg := range notice.Args {
		args = append(args, arg)
	}
	message := strings.TrimSpace(webtemplates.T(loc, notice.Key, args...))
	if message == "" {
		message = strings.TrimSpace(notice.Key)
	}
	if message == "" {
		return nil
	}
	return &webtemplates.Toast{
		Kind:    string(notice.Kind),
		Message: message,
	}
}

// resolveFlashToast always consumes the flash cookie so a notice shows at
// most once.
func resolveFlashToast(w http.ResponseWriter, r *http.Request, deps module.Dependencies, loc webtemplates.Localizer) *webtemplates.Toast {
	notice, ok := flashnotice.ReadAndClear(w, r, deps.SchemePolicy)
	if !ok {
		return nil
	}
	return ToastFromNotice(loc, notice)
}
