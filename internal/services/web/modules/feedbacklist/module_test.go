package feedbacklist

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"

	"github.com/techhubafrica/meetup-feedback/internal/feedback"
	module "github.com/techhubafrica/meetup-feedback/internal/services/web/module"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/routepath"
)

func mountList(t *testing.T, gateway Gateway) http.Handler {
	t.Helper()
	mount, err := NewWithGateway(gateway, nil).Mount(module.Dependencies{})
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if mount.Prefix != routepath.FeedbackList {
		t.Fatalf("Prefix = %q, want %q", mount.Prefix, routepath.FeedbackList)
	}
	return mount.Handler
}

func get(t *testing.T, h http.Handler, target string, htmxTarget string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if htmxTarget != "" {
		req.Header.Set("HX-Request", "true")
		req.Header.Set("HX-Target", htmxTarget)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func parse(t *testing.T, body string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func walk(n *html.Node, match func(*html.Node) bool, out *[]*html.Node) {
	if n.Type == html.ElementNode && match(n) {
		*out = append(*out, n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, match, out)
	}
}

func attrOf(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func cardIDs(t *testing.T, body string) []string {
	t.Helper()
	var cards []*html.Node
	walk(parse(t, body), func(n *html.Node) bool { return attrOf(n, "data-feedback-id") != "" }, &cards)
	ids := make([]string, 0, len(cards))
	for _, card := range cards {
		ids = append(ids, attrOf(card, "data-feedback-id"))
	}
	return ids
}

func viewID(t *testing.T, body string) string {
	t.Helper()
	var inputs []*html.Node
	walk(parse(t, body), func(n *html.Node) bool { return n.Data == "input" && attrOf(n, "name") == "view" }, &inputs)
	if len(inputs) != 1 {
		t.Fatalf("view inputs = %d, want 1", len(inputs))
	}
	return attrOf(inputs[0], "value")
}

func TestModuleIDAndHealth(t *testing.T) {
	t.Parallel()

	if got := New().ID(); got != "feedbacklist" {
		t.Fatalf("ID() = %q, want %q", got, "feedbacklist")
	}
	if New().Healthy() {
		t.Fatalf("Healthy() = true without gateway")
	}
	if !NewWithGateway(&fakeGateway{}, nil).Healthy() {
		t.Fatalf("Healthy() = false with gateway")
	}
}

func TestMountRendersAllRecordsInFetchOrder(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{records: sampleRecords()}
	rr := get(t, mountList(t, gateway), routepath.FeedbackList, "")

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	if diff := cmp.Diff([]string{"r1", "r2", "r3"}, cardIDs(t, body)); diff != "" {
		t.Fatalf("cards mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(body, "Discover feedback from 3 tech enthusiasts") {
		t.Fatalf("body missing total count")
	}
	if !strings.Contains(body, ">Mar 15<") {
		t.Fatalf("body missing formatted created date")
	}
	if gateway.callCount() != 1 {
		t.Fatalf("ListFeedback calls = %d, want 1", gateway.callCount())
	}
}

func TestFilterWithLiveViewDoesNotRefetch(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{records: sampleRecords()}
	h := mountList(t, gateway)
	id := viewID(t, get(t, h, routepath.FeedbackList, "").Body.String())
	if id == "" {
		t.Fatalf("mount did not issue a view id")
	}

	rr := get(t, h, routepath.FeedbackListWith("SCALING", "Good", id), "feedback-results")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	if diff := cmp.Diff([]string{"r1", "r3"}, cardIDs(t, body)); diff != "" {
		t.Fatalf("filtered cards mismatch (-want +got):\n%s", diff)
	}
	if strings.Contains(body, `id="feedback-count"`) {
		t.Fatalf("results request rendered the page header")
	}
	if got := viewID(t, body); got != id {
		t.Fatalf("view id = %q, want %q", got, id)
	}
	if gateway.callCount() != 1 {
		t.Fatalf("ListFeedback calls = %d, want 1", gateway.callCount())
	}
}

func TestFilterWithUnknownViewRemounts(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{records: sampleRecords()}
	h := mountList(t, gateway)
	rr := get(t, h, routepath.FeedbackListWith("", "Excellent", "expired"), "feedback-results")

	if diff := cmp.Diff([]string{"r2"}, cardIDs(t, rr.Body.String())); diff != "" {
		t.Fatalf("cards mismatch (-want +got):\n%s", diff)
	}
	if got := viewID(t, rr.Body.String()); got == "expired" || got == "" {
		t.Fatalf("view id = %q, want a fresh id", got)
	}
	if gateway.callCount() != 1 {
		t.Fatalf("ListFeedback calls = %d, want 1", gateway.callCount())
	}
}

func TestBadgeURLsCarryTermAndView(t *testing.T) {
	t.Parallel()

	h := mountList(t, &fakeGateway{records: sampleRecords()})
	body := get(t, h, routepath.FeedbackListWith("talks", "", ""), "").Body.String()
	id := viewID(t, body)

	var badges []*html.Node
	walk(parse(t, body), func(n *html.Node) bool { return n.Data == "a" && attrOf(n, "data-experience") != "" }, &badges)
	if len(badges) != 5 {
		t.Fatalf("badges = %d, want 5", len(badges))
	}
	for _, badge := range badges {
		u, err := url.Parse(attrOf(badge, "href"))
		if err != nil {
			t.Fatalf("badge href: %v", err)
		}
		q := u.Query()
		if q.Get(routepath.ListSearchParam) != "talks" || q.Get(routepath.ListViewParam) != id {
			t.Fatalf("badge %q query = %v", attrOf(badge, "data-experience"), q)
		}
		if exp := attrOf(badge, "data-experience"); exp == feedback.ExperienceAll && q.Has(routepath.ListExperienceParam) {
			t.Fatalf("All badge carries experience param: %v", q)
		}
	}
	if active := attrOf(badges[0], "aria-current"); active != "true" {
		t.Fatalf("All badge not active by default")
	}
}

func TestUnknownExperienceFallsBackToAll(t *testing.T) {
	t.Parallel()

	h := mountList(t, &fakeGateway{records: sampleRecords()})
	rr := get(t, h, routepath.FeedbackListWith("", "Meh", ""), "")
	if got := len(cardIDs(t, rr.Body.String())); got != 3 {
		t.Fatalf("cards = %d, want 3", got)
	}
}

func TestFetchFailureRendersErrorState(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{err: feedback.ErrNetwork}
	rr := get(t, mountList(t, gateway), routepath.FeedbackList, "")
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadGateway)
	}
	if !strings.Contains(rr.Body.String(), "Error fetching feedback") {
		t.Fatalf("body missing error message")
	}
}

func TestValidationErrorFromAPIIsStillGatewayFailure(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{err: errors.Join(errors.New("bad request"), feedback.ErrValidation)}
	rr := get(t, mountList(t, gateway), routepath.FeedbackList, "")
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadGateway)
	}
}

func TestUnconfiguredGatewayFailsClosed(t *testing.T) {
	t.Parallel()

	mount, err := New().Mount(module.Dependencies{})
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	rr := get(t, mount.Handler, routepath.FeedbackList, "")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
}

func TestNonGetIsMethodNotAllowed(t *testing.T) {
	t.Parallel()

	h := mountList(t, &fakeGateway{})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, routepath.FeedbackList, nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusMethodNotAllowed)
	}
	if got := rr.Header().Get("Allow"); got != http.MethodGet {
		t.Fatalf("Allow = %q, want GET", got)
	}
}

func TestSubpathIsNotFound(t *testing.T) {
	t.Parallel()

	rr := get(t, mountList(t, &fakeGateway{}), routepath.FeedbackList+"/extra", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}
