package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/techhubafrica/meetup-feedback/internal/services/web/routepath"
)

// htmxScriptURL pins the HTMX build loaded by every page.
const htmxScriptURL = "https://unpkg.com/htmx.org@2.0.4"

// htmxConfig makes HTMX swap validation (422), conflict (409) and error
// responses instead of dropping them.
const htmxConfig = `{"responseHandling":[{"code":"204","swap":false},{"code":"[23]..","swap":true},{"code":"[45]..","swap":true,"error":true}]}`

// PageContext provides shared layout context for pages.
type PageContext struct {
	Title       string
	Lang        string
	Loc         Localizer
	CurrentPath string
	Toast       *Toast
}

// Toast is a one-shot notice shown above the page content.
type Toast struct {
	Kind    string
	Message string
}

// ComposePageTitle appends the event name unless title already is it.
func ComposePageTitle(title string, loc Localizer) string {
	appName := T(loc, "web.app.name")
	title = strings.TrimSpace(title)
	if title == "" || title == appName {
		return appName
	}
	return title + " | " + appName
}

// Layout renders the full document around the children in ctx.
func Layout(page PageContext) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := newMarkup(w)
		lang := strings.TrimSpace(page.Lang)
		if lang == "" {
			lang = "en"
		}
		m.raw("<!DOCTYPE html>")
		m.open("html", "lang", lang)
		m.raw("<head>")
		m.raw(`<meta charset="utf-8">`)
		m.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		m.element("title", ComposePageTitle(page.Title, page.Loc))
		m.raw(`<meta name="description"`)
		m.attr("content", T(page.Loc, "web.app.meta_description"))
		m.raw(">")
		m.raw(`<meta name="htmx-config"`)
		m.attr("content", htmxConfig)
		m.raw(">")
		m.raw(`<link rel="stylesheet" href="` + routepath.Static + `app.css">`)
		m.raw(`<script defer src="` + htmxScriptURL + `"></script>`)
		m.raw(`<script defer src="` + routepath.Static + `app.js"></script>`)
		m.raw("</head>")
		m.raw(`<body class="page">`)
		writeNav(m, page)
		m.component(ctx, ToastRegion(page.Toast, false))
		m.raw(`<main id="main" class="container">`)
		m.component(ctx, templ.GetChildren(ctx))
		m.raw("</main>")
		m.raw("</body></html>")
		return m.err
	})
}

func writeNav(m *markup, page PageContext) {
	links := []struct {
		href string
		key  string
	}{
		{routepath.Root, "web.nav.home"},
		{routepath.Feedback, "web.nav.feedback"},
		{routepath.FeedbackList, "web.nav.insights"},
	}
	m.raw(`<header class="site-header"><nav class="site-nav">`)
	for _, link := range links {
		m.start("a", "href", link.href)
		if page.CurrentPath == link.href {
			m.attr("aria-current", "page")
		}
		m.end()
		m.text(T(page.Loc, link.key))
		m.close("a")
	}
	m.raw("</nav></header>")
}

// ToastRegion renders the notice container. With oob set it is emitted as
// an HTMX out-of-band swap so fragment responses can update it.
func ToastRegion(toast *Toast, oob bool) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		m := newMarkup(w)
		m.raw(`<div id="toast-region" class="toast-region" aria-live="polite"`)
		if oob {
			m.attr("hx-swap-oob", "true")
		}
		m.raw(">")
		if toast != nil && strings.TrimSpace(toast.Message) != "" {
			kind := strings.TrimSpace(toast.Kind)
			if kind == "" {
				kind = "info"
			}
			role := "status"
			if kind == "error" {
				role = "alert"
			}
			m.element("div", toast.Message, "class", "toast toast-"+kind, "role", role, "data-toast-kind", kind)
		}
		m.raw("</div>")
		return m.err
	})
}
