package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// FeedbackCardView is one rendered feedback record.
type FeedbackCardView struct {
	ID           string
	Name         string
	Experience   string
	CreatedLabel string
	CreatedISO   string
	Expectations string
	KeyTakeaways string
	Improvements string
}

// ExperienceBadge is one filter badge.
type ExperienceBadge struct {
	Value  string
	URL    string
	Active bool
}

// FeedbackListView is the list page model.
type FeedbackListView struct {
	Total      int
	Term       string
	Experience string
	ViewID     string
	ListURL    string
	Badges     []ExperienceBadge
	Cards      []FeedbackCardView
	Failed     bool
}

const searchFormID = "feedback-search"

// FeedbackListPage renders the insights header, search form and results.
func FeedbackListPage(view FeedbackListView, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := newMarkup(w)
		m.raw(`<section id="feedback-list" class="feedback-list">`)
		if view.Failed {
			m.raw(`<div id="feedback-error" class="card error-state" role="alert">`)
			m.element("p", T(loc, "web.list.error"), "class", "error-text")
			m.raw(`</div>`)
			m.raw(`</section>`)
			return m.err
		}
		m.raw(`<div class="card list-header">`)
		m.element("h1", T(loc, "web.list.title"), "class", "card-title")
		m.element("p", T(loc, "web.list.count", view.Total), "id", "feedback-count", "class", "muted")
		m.open("form", "id", searchFormID, "method", "get", "action", view.ListURL, "role", "search", "class", "search-form",
			"hx-get", view.ListURL, "hx-target", "#feedback-results", "hx-swap", "outerHTML",
			"hx-trigger", "input changed delay:300ms from:find input[type=search], submit",
			"hx-push-url", "true", "hx-indicator", "#feedback-loading")
		m.raw(`<input type="search" name="q"`)
		m.attr("value", view.Term)
		m.attr("placeholder", T(loc, "web.list.search_placeholder"))
		m.attr("aria-label", T(loc, "web.list.search_placeholder"))
		m.raw(">")
		m.element("button", T(loc, "web.list.search_action"), "type", "submit", "class", "button secondary")
		m.raw(`</form>`)
		m.element("p", T(loc, "web.list.loading"), "id", "feedback-loading", "class", "htmx-indicator muted")
		m.raw(`</div>`)
		m.component(ctx, FeedbackResults(view, loc))
		m.raw(`</section>`)
		return m.err
	})
}

// FeedbackResults renders the filter badges and matching cards. HTMX filter
// requests swap this fragment only.
func FeedbackResults(view FeedbackListView, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		m := newMarkup(w)
		m.raw(`<div id="feedback-results">`)
		// The search form owns these through the form attribute, so a swap
		// of this fragment refreshes the view id and filter it submits.
		for _, hidden := range [][2]string{{"view", view.ViewID}, {"experience", view.Experience}} {
			m.raw(`<input type="hidden"`)
			m.attr("name", hidden[0])
			m.attr("value", hidden[1])
			m.attr("form", searchFormID)
			m.raw(">")
		}
		m.raw(`<nav class="badges" aria-label="experience">`)
		for _, badge := range view.Badges {
			class := "badge"
			if badge.Active {
				class += " active"
			}
			m.start("a", "href", badge.URL, "class", class, "data-experience", badge.Value,
				"hx-get", badge.URL, "hx-target", "#feedback-results", "hx-swap", "outerHTML", "hx-push-url", "true")
			if badge.Active {
				m.attr("aria-current", "true")
			}
			m.end()
			m.text(experienceLabel(loc, badge.Value))
			m.close("a")
		}
		m.raw(`</nav>`)
		m.element("p", T(loc, "web.list.showing", len(view.Cards), view.Total), "id", "feedback-showing", "class", "muted")
		if len(view.Cards) == 0 {
			m.element("p", T(loc, "web.list.empty"), "class", "empty-state")
		}
		m.raw(`<div class="card-grid">`)
		for _, card := range view.Cards {
			writeFeedbackCard(m, card, loc)
		}
		m.raw(`</div>`)
		m.raw(`</div>`)
		return m.err
	})
}

func writeFeedbackCard(m *markup, card FeedbackCardView, loc Localizer) {
	m.open("article", "class", "card feedback-card", "data-feedback-id", card.ID)
	m.raw(`<header class="feedback-card-header"><div>`)
	m.element("h3", card.Name)
	m.element("span", experienceLabel(loc, card.Experience), "class", "experience experience-"+card.Experience, "data-experience", card.Experience)
	m.raw(`</div>`)
	if card.CreatedLabel != "" {
		m.element("time", card.CreatedLabel, "datetime", card.CreatedISO)
	}
	m.raw(`</header>`)
	sections := []struct {
		key  string
		body string
	}{
		{"web.list.section.expectations", card.Expectations},
		{"web.list.section.key_takeaways", card.KeyTakeaways},
		{"web.list.section.improvements", card.Improvements},
	}
	for _, section := range sections {
		m.raw(`<div class="feedback-section">`)
		m.element("h4", T(loc, section.key))
		m.element("p", section.body, "class", "muted")
		m.raw(`</div>`)
	}
	m.close("article")
}

var experienceLabels = map[string]string{
	"All":       "web.list.experience.All",
	"Excellent": "web.list.experience.Excellent",
	"Good":      "web.list.experience.Good",
	"Fair":      "web.list.experience.Fair",
	"Poor":      "web.list.experience.Poor",
}

// experienceLabel localizes known ratings and shows anything else verbatim.
func experienceLabel(loc Localizer, value string) string {
	if key, ok := experienceLabels[value]; ok {
		return T(loc, key)
	}
	return value
}
