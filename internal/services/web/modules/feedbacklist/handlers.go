package feedbacklist

import (
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/hlog"

	"github.com/techhubafrica/meetup-feedback/internal/feedback"
	module "github.com/techhubafrica/meetup-feedback/internal/services/web/module"
	apperrors "github.com/techhubafrica/meetup-feedback/internal/services/web/platform/errors"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/platform/httpx"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/platform/modulehandler"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/platform/pagerender"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/routepath"
	webtemplates "github.com/techhubafrica/meetup-feedback/internal/services/web/templates"
)

// resultsTarget is the element id filter requests swap.
const resultsTarget = "feedback-results"

// createdLayout formats card dates like "Mar 15".
const createdLayout = "Jan 2"

type handlers struct {
	modulehandler.Base
	service service
}

func newHandlers(s service, deps module.Dependencies) handlers {
	return handlers{Base: modulehandler.NewBase(deps), service: s}
}

func (h handlers) handleList(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(r)
	values := r.URL.Query()
	q := normalizeQuery(
		values.Get(routepath.ListSearchParam),
		values.Get(routepath.ListExperienceParam),
		values.Get(routepath.ListViewParam),
	)

	res, err := h.service.list(r.Context(), q)
	if err != nil {
		status := apperrors.HTTPStatus(err)
		if status < http.StatusInternalServerError {
			status = http.StatusBadGateway
		}
		hlog.FromRequest(r).Error().Err(err).Int("status", status).Msg("feedback list fetch failed")
		h.writePage(w, r, loc, status, webtemplates.FeedbackListPage(webtemplates.FeedbackListView{Failed: true}, loc))
		return
	}
	if res.Mounted {
		hlog.FromRequest(r).Debug().Str("view", res.ViewID).Int("records", res.Total).Msg("feedback list mounted")
	}

	view := buildListView(q, res)
	fragment := webtemplates.FeedbackListPage(view, loc)
	if httpx.IsHTMXRequest(r) && r.Header.Get("HX-Target") == resultsTarget {
		fragment = webtemplates.FeedbackResults(view, loc)
	}
	h.writePage(w, r, loc, http.StatusOK, fragment)
}

func (h handlers) writePage(w http.ResponseWriter, r *http.Request, loc webtemplates.Localizer, status int, fragment templ.Component) {
	h.WritePage(w, r, pagerender.Page{
		Title:      webtemplates.T(loc, "web.list.title"),
		StatusCode: status,
		Fragment:   fragment,
	})
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r)
}

func (h handlers) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	httpx.MethodNotAllowed(http.MethodGet)(w, r)
}

func buildListView(q query, res result) webtemplates.FeedbackListView {
	badges := make([]webtemplates.ExperienceBadge, 0, len(feedback.ExperienceFilters()))
	for _, exp := range feedback.ExperienceFilters() {
		badges = append(badges, webtemplates.ExperienceBadge{
			Value:  exp,
			URL:    routepath.FeedbackListWith(q.Term, badgeParam(exp), res.ViewID),
			Active: exp == q.Experience,
		})
	}
	cards := make([]webtemplates.FeedbackCardView, 0, len(res.Records))
	for _, record := range res.Records {
		cards = append(cards, cardView(record))
	}
	return webtemplates.FeedbackListView{
		Total:      res.Total,
		Term:       q.Term,
		Experience: q.Experience,
		ViewID:     res.ViewID,
		ListURL:    routepath.FeedbackList,
		Badges:     badges,
		Cards:      cards,
	}
}

// badgeParam leaves the default filter out of badge URLs.
func badgeParam(experience string) string {
	if experience == feedback.ExperienceAll {
		return ""
	}
	return experience
}

func cardView(record feedback.Record) webtemplates.FeedbackCardView {
	card := webtemplates.FeedbackCardView{
		ID:           record.ID,
		Name:         record.Attendee.Name,
		Experience:   string(record.Experience),
		Expectations: record.Expectations,
		KeyTakeaways: record.KeyTakeaways,
		Improvements: record.Improvements,
	}
	if !record.CreatedAt.IsZero() {
		card.CreatedLabel = record.CreatedAt.Format(createdLayout)
		card.CreatedISO = record.CreatedAt.Format(time.RFC3339)
	}
	return card
}
