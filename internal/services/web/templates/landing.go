package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// LandingView is the event landing page model.
type LandingView struct {
	QRImageURL  string
	ScanURL     string
	FeedbackURL string
}

var landingDetails = []struct {
	icon  string
	label string
	value string
}{
	{"calendar", "web.landing.detail.date_label", "web.landing.detail.date_value"},
	{"map-pin", "web.landing.detail.location_label", "web.landing.detail.location_value"},
	{"users", "web.landing.detail.attendees_label", "web.landing.detail.attendees_value"},
	{"message-square", "web.landing.detail.sessions_label", "web.landing.detail.sessions_value"},
}

// LandingPage renders the event header, detail cards and QR card.
func LandingPage(view LandingView, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		m := newMarkup(w)
		m.raw(`<section id="landing" class="landing">`)
		writeEventHeader(m, loc)
		m.raw(`<div class="detail-grid">`)
		for _, detail := range landingDetails {
			m.open("div", "class", "card detail-card", "data-detail", detail.icon)
			m.element("h3", T(loc, detail.label))
			m.element("p", T(loc, detail.value))
			m.close("div")
		}
		m.raw(`</div>`)

		m.raw(`<div id="qr-card" class="card qr-card">`)
		m.element("h2", T(loc, "web.landing.qr.title"))
		m.open("a", "href", view.ScanURL, "class", "qr-link", "aria-label", T(loc, "web.landing.qr.scan_action"))
		m.raw("<img")
		m.attr("src", view.QRImageURL)
		m.attr("alt", T(loc, "web.landing.qr.alt"))
		m.raw(` width="256" height="256">`)
		m.close("a")
		m.element("p", T(loc, "web.landing.qr.instructions"), "class", "muted")
		m.element("p", T(loc, "web.landing.qr.motto"), "class", "motto")
		if view.FeedbackURL != "" {
			m.element("a", T(loc, "web.landing.qr.scan_action"), "href", view.FeedbackURL, "class", "button")
		}
		m.raw(`</div>`)
		m.raw(`</section>`)
		return m.err
	})
}

// ScanView is the simulated QR scan page model.
type ScanView struct {
	TargetURL    string
	DelaySeconds int
}

// ScanPage renders the processing card shown before the redirect to the
// feedback form.
func ScanPage(view ScanView, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		m := newMarkup(w)
		m.raw(`<section id="scan" class="landing">`)
		writeEventHeader(m, loc)
		m.open("div", "id", "scan-card", "class", "card qr-card scanning", "data-redirect-url", view.TargetURL, "data-redirect-seconds", itoa(view.DelaySeconds))
		m.element("h2", T(loc, "web.scan.title"))
		m.raw(`<div class="spinner" aria-hidden="true"></div>`)
		m.element("p", T(loc, "web.scan.processing"), "class", "processing")
		m.element("p", T(loc, "web.scan.wait"), "class", "muted")
		m.element("a", T(loc, "web.scan.continue"), "href", view.TargetURL, "class", "button")
		m.raw(`</div>`)
		m.raw(`</section>`)
		return m.err
	})
}

func writeEventHeader(m *markup, loc Localizer) {
	m.raw(`<header class="event-header">`)
	m.element("h1", T(loc, "web.landing.title"), "class", "event-title")
	m.element("p", T(loc, "web.app.tagline"), "class", "event-tagline")
	m.raw(`</header>`)
}
