package feedbacklist

import (
	"context"
	"fmt"
	"strings"

	"github.com/techhubafrica/meetup-feedback/internal/feedback"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/storage"
)

// Gateway lists every feedback record.
type Gateway interface {
	ListFeedback(context.Context) ([]feedback.Record, error)
}

// query is one list request after normalization.
type query struct {
	Term       string
	Experience string
	ViewID     string
}

// result is the filtered list for one request. Mounted reports that the
// record set was fetched for this request rather than read from a view.
type result struct {
	ViewID  string
	Total   int
	Records []feedback.Record
	Mounted bool
}

type service struct {
	gateway Gateway
	views   storage.ListViewStore
}

func newService(gateway Gateway, views storage.ListViewStore) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	return service{gateway: gateway, views: views}
}

func normalizeQuery(term, experience, viewID string) query {
	return query{
		Term:       strings.TrimSpace(term),
		Experience: feedback.NormalizeExperienceFilter(experience),
		ViewID:     strings.TrimSpace(viewID),
	}
}

// list narrows a live view when q names one, and otherwise fetches the full
// set once and stores it as a new view.
func (s service) list(ctx context.Context, q query) (result, error) {
	all, ok := s.lookup(q.ViewID)
	viewID := q.ViewID
	mounted := false
	if !ok {
		records, err := s.gateway.ListFeedback(ctx)
		if err != nil {
			return result{}, fmt.Errorf("list feedback: %w", err)
		}
		all = records
		viewID = s.views.Put(records)
		mounted = true
	}
	return result{
		ViewID:  viewID,
		Total:   len(all),
		Records: feedback.Filter(all, q.Term, q.Experience),
		Mounted: mounted,
	}, nil
}

func (s service) lookup(viewID string) ([]feedback.Record, bool) {
	if viewID == "" {
		return nil, false
	}
	return s.views.Get(viewID)
}
