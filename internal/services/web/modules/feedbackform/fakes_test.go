package feedbackform

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/techhubafrica/meetup-feedback/internal/feedback"
	"github.com/techhubafrica/meetup-feedback/internal/feedback/wizard"
	module "github.com/techhubafrica/meetup-feedback/internal/services/web/module"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/platform/wizardcookie"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/storage"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/storage/memory"
)

type fakeClient struct {
	mu sync.Mutex

	attendees   map[string]feedback.Attendee
	lookupErr   error
	createResp  feedback.Attendee
	createErr   error
	submitErr   error
	submissions []feedback.Submission
	calls       []string

	// createStarted and releaseCreate, when set, park CreateAttendee so a
	// test can observe a submission in flight.
	createStarted chan struct{}
	releaseCreate chan struct{}

	// onSubmit, when set, runs before SubmitFeedback answers.
	onSubmit func()
}

func (f *fakeClient) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeClient) CreateAttendee(_ context.Context, name, email string) (feedback.Attendee, error) {
	f.record("create:" + name + ":" + email)
	if f.createStarted != nil {
		close(f.createStarted)
		<-f.releaseCreate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return feedback.Attendee{}, f.createErr
	}
	resp := f.createResp
	if resp.ID == "" {
		resp = feedback.Attendee{ID: "att-1", Name: name, Email: email}
	}
	return resp, nil
}

func (f *fakeClient) GetAttendeeByCode(_ context.Context, code string) (feedback.Attendee, error) {
	f.record("lookup:" + code)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lookupErr != nil {
		return feedback.Attendee{}, f.lookupErr
	}
	attendee, ok := f.attendees[code]
	if !ok {
		return feedback.Attendee{}, feedback.ErrNotFound
	}
	return attendee, nil
}

func (f *fakeClient) SubmitFeedback(_ context.Context, submission feedback.Submission) (feedback.Record, error) {
	f.record("submit:" + submission.AttendeeID)
	if f.onSubmit != nil {
		f.onSubmit()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submissions = append(f.submissions, submission)
	if f.submitErr != nil {
		return feedback.Record{}, f.submitErr
	}
	return feedback.Record{ID: "fb-1", Experience: submission.Experience}, nil
}

func (f *fakeClient) ListFeedback(context.Context) ([]feedback.Record, error) {
	return nil, nil
}

func (f *fakeClient) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeClient) setSubmitErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitErr = err
}

// visitor drives the wizard like one browser, carrying the wizard cookie.
type visitor struct {
	t       *testing.T
	handler http.Handler
	cookie  string
	htmx    bool
}

func newVisitor(t *testing.T, client feedback.Client) (*visitor, *memory.WizardStore) {
	t.Helper()
	store := memory.NewWizardStore(0)
	return newVisitorWithStore(t, client, store), store
}

func newVisitorWithStore(t *testing.T, client feedback.Client, store storage.WizardStore) *visitor {
	t.Helper()
	mount, err := New(Config{Gateway: client, Store: store}).Mount(module.Dependencies{})
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	return &visitor{t: t, handler: mount.Handler, htmx: true}
}

// failingUpdateStore fails every Update while failUpdates is set.
type failingUpdateStore struct {
	*memory.WizardStore
	failUpdates atomic.Bool
}

func (s *failingUpdateStore) Update(ctx context.Context, id string, fn func(*wizard.Wizard) error) (wizard.Snapshot, error) {
	if s.failUpdates.Load() {
		return wizard.Snapshot{}, errors.New("store unavailable")
	}
	return s.WizardStore.Update(ctx, id, fn)
}

func (v *visitor) do(req *http.Request) *httptest.ResponseRecorder {
	v.t.Helper()
	if v.cookie != "" {
		req.AddCookie(&http.Cookie{Name: wizardcookie.Name, Value: v.cookie})
	}
	if v.htmx {
		req.Header.Set("HX-Request", "true")
	}
	rr := httptest.NewRecorder()
	v.handler.ServeHTTP(rr, req)
	for _, c := range rr.Result().Cookies() {
		if c.Name != wizardcookie.Name {
			continue
		}
		if c.MaxAge < 0 {
			v.cookie = ""
		} else {
			v.cookie = c.Value
		}
	}
	return rr
}

func (v *visitor) get(target string) *httptest.ResponseRecorder {
	v.t.Helper()
	return v.do(httptest.NewRequest(http.MethodGet, target, nil))
}

func (v *visitor) post(target string, form url.Values) *httptest.ResponseRecorder {
	v.t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return v.do(req)
}

func identityForm() url.Values {
	return url.Values{"name": {"Jo Doe"}, "email": {"jo@x.com"}}
}

func initialForm() url.Values {
	return url.Values{"expectations": {"Learn about systems design"}, "experience": {"Good"}}
}

func detailedForm() url.Values {
	return url.Values{"keyTakeaways": {"Great talks on scaling"}, "improvements": {"More networking time"}}
}
