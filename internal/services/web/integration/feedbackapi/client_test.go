package feedbackapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"

	"github.com/techhubafrica/meetup-feedback/internal/feedback"
)

type recordedRequest struct {
	Method      string
	Path        string
	ContentType string
	Body        string
}

type apiStub struct {
	mu       sync.Mutex
	requests []recordedRequest
	handler  http.HandlerFunc
}

func newAPIStub(t *testing.T, handler http.HandlerFunc) (*apiStub, *Client) {
	t.Helper()
	stub := &apiStub{handler: handler}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		stub.mu.Lock()
		stub.requests = append(stub.requests, recordedRequest{
			Method:      r.Method,
			Path:        r.URL.Path,
			ContentType: r.Header.Get("Content-Type"),
			Body:        strings.TrimSpace(string(body)),
		})
		stub.mu.Unlock()
		stub.handler(w, r)
	}))
	t.Cleanup(srv.Close)
	client, err := New(Config{BaseURL: srv.URL + "/api/", HTTPClient: srv.Client()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return stub, client
}

func (s *apiStub) recorded() []recordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]recordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestCreateAttendeePostsJSONAndDecodesMongoID(t *testing.T) {
	t.Parallel()

	stub, client := newAPIStub(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]string{"_id": "A", "name": "Jo Doe", "email": "jo@x.com"})
	})
	got, err := client.CreateAttendee(context.Background(), "Jo Doe", "jo@x.com")
	if err != nil {
		t.Fatalf("CreateAttendee() error = %v", err)
	}
	if diff := cmp.Diff(feedback.Attendee{ID: "A", Name: "Jo Doe", Email: "jo@x.com"}, got); diff != "" {
		t.Fatalf("attendee mismatch (-want +got):\n%s", diff)
	}
	want := []recordedRequest{{
		Method:      http.MethodPost,
		Path:        "/api/attendees",
		ContentType: "application/json",
		Body:        `{"name":"Jo Doe","email":"jo@x.com"}`,
	}}
	if diff := cmp.Diff(want, stub.recorded()); diff != "" {
		t.Fatalf("requests mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmitFeedbackSendsWireNames(t *testing.T) {
	t.Parallel()

	stub, client := newAPIStub(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]any{"_id": "r-1", "experience": "Good"})
	})
	rec, err := client.SubmitFeedback(context.Background(), feedback.Submission{
		AttendeeID:   "A",
		Expectations: "Learn about systems design",
		Experience:   feedback.ExperienceGood,
		KeyTakeaways: "Great talks on scaling",
		Improvements: "More networking time",
	})
	if err != nil {
		t.Fatalf("SubmitFeedback() error = %v", err)
	}
	if rec.ID != "r-1" {
		t.Fatalf("record id = %q, want r-1", rec.ID)
	}
	wantBody := `{"attendeeId":"A","expectations":"Learn about systems design","experience":"Good","keyTakeaways":"Great talks on scaling","improvements":"More networking time"}`
	if got := stub.recorded()[0].Body; got != wantBody {
		t.Fatalf("body = %s, want %s", got, wantBody)
	}
	if got := stub.recorded()[0].Path; got != "/api/feedback" {
		t.Fatalf("path = %q", got)
	}
}

func TestListFeedbackDecodesRecordsInOrder(t *testing.T) {
	t.Parallel()

	_, client := newAPIStub(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[
			{"_id":"1","attendee":{"name":"Ada","email":"a@x.com"},"experience":"Excellent","createdAt":"2025-03-15T10:00:00Z"},
			{"id":"2","attendee":{"name":"Bo"},"experience":"Poor"}
		]`)
	})
	records, err := client.ListFeedback(context.Background())
	if err != nil {
		t.Fatalf("ListFeedback() error = %v", err)
	}
	if len(records) != 2 || records[0].ID != "1" || records[1].ID != "2" {
		t.Fatalf("records = %+v", records)
	}
	if want := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC); !records[0].CreatedAt.Equal(want) {
		t.Fatalf("createdAt = %v, want %v", records[0].CreatedAt, want)
	}
	if !records[1].CreatedAt.IsZero() {
		t.Fatalf("missing createdAt should decode to zero time")
	}
}

func TestListFeedbackNullBodyIsEmpty(t *testing.T) {
	t.Parallel()

	_, client := newAPIStub(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `null`)
	})
	records, err := client.ListFeedback(context.Background())
	if err != nil {
		t.Fatalf("ListFeedback() error = %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Fatalf("records = %#v, want empty slice", records)
	}
}

func TestGetAttendeeByCodeEscapesCodeAndMapsNotFound(t *testing.T) {
	t.Parallel()

	stub, client := newAPIStub(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Attendee not found"})
	})
	_, err := client.GetAttendeeByCode(context.Background(), "ab/c d")
	if !errors.Is(err, feedback.ErrNotFound) {
		t.Fatalf("GetAttendeeByCode() error = %v, want ErrNotFound", err)
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Message != "Attendee not found" || apiErr.Status != http.StatusNotFound {
		t.Fatalf("error = %#v", err)
	}
	if got := stub.recorded()[0].Path; got != "/api/attendees/ab/c d" {
		t.Fatalf("decoded path = %q", got)
	}
}

func TestGetAttendeeByCodeEmptySkipsRequest(t *testing.T) {
	t.Parallel()

	stub, client := newAPIStub(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"_id": "x"})
	})
	if _, err := client.GetAttendeeByCode(context.Background(), "  "); !errors.Is(err, feedback.ErrNotFound) {
		t.Fatalf("GetAttendeeByCode(blank) error = %v, want ErrNotFound", err)
	}
	if n := len(stub.recorded()); n != 0 {
		t.Fatalf("blank code issued %d requests", n)
	}
}

func TestErrorClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{name: "validation", status: http.StatusBadRequest, body: `{"error":"email taken"}`, want: feedback.ErrValidation},
		{name: "not found outside lookup", status: http.StatusNotFound, body: `{}`, want: feedback.ErrValidation},
		{name: "server error", status: http.StatusInternalServerError, body: `oops`, want: feedback.ErrNetwork},
		{name: "bad gateway", status: http.StatusBadGateway, body: ``, want: feedback.ErrNetwork},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, client := newAPIStub(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			})
			_, err := client.CreateAttendee(context.Background(), "Jo Doe", "jo@x.com")
			if !errors.Is(err, tc.want) {
				t.Fatalf("error = %v, want %v", err, tc.want)
			}
			if got := StatusOf(err); got != tc.status {
				t.Fatalf("StatusOf() = %d, want %d", got, tc.status)
			}
		})
	}
}

func TestUndecodableBodyIsNetworkError(t *testing.T) {
	t.Parallel()

	_, client := newAPIStub(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html>maintenance</html>`)
	})
	_, err := client.ListFeedback(context.Background())
	if !errors.Is(err, feedback.ErrNetwork) {
		t.Fatalf("ListFeedback() error = %v, want ErrNetwork", err)
	}
}

func TestTimeoutIsNetworkError(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})
	client, err := New(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond, HTTPClient: srv.Client()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	_, err = client.ListFeedback(context.Background())
	if !errors.Is(err, feedback.ErrNetwork) {
		t.Fatalf("ListFeedback() error = %v, want ErrNetwork", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("ListFeedback() error = %v, want deadline exceeded cause", err)
	}
}

func TestNewValidatesBaseURL(t *testing.T) {
	t.Parallel()

	for _, base := range []string{"", "   ", "ftp://example.com", "http://", "::bad"} {
		if _, err := New(Config{BaseURL: base}); err == nil {
			t.Fatalf("New(%q) error = nil, want error", base)
		}
	}
	client, err := New(Config{BaseURL: DefaultBaseURL})
	if err != nil {
		t.Fatalf("New(default) error = %v", err)
	}
	if client.timeout <= 0 {
		t.Fatalf("default timeout not applied")
	}
}

func TestErrorMessageIncludesOperationAndStatus(t *testing.T) {
	t.Parallel()

	err := &Error{Op: OpSubmitFeedback, Status: 500, Message: "boom", Kind: feedback.ErrNetwork}
	if got := err.Error(); got != "feedback api: submit feedback: status 500: boom" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestServerMessageTruncatesOnRuneBoundary(t *testing.T) {
	t.Parallel()

	// 199 ASCII bytes put the two-byte "é" across the limit.
	body := strings.Repeat("a", maxServerMessage-1) + "é" + "tail"
	got := serverMessage([]byte(body))
	if !utf8.ValidString(got) {
		t.Fatalf("serverMessage() = %q, not valid UTF-8", got)
	}
	if want := strings.Repeat("a", maxServerMessage-1); got != want {
		t.Fatalf("serverMessage() length = %d, want %d", len(got), len(want))
	}
	if got := serverMessage([]byte(`{"message":" too short "}`)); got != "too short" {
		t.Fatalf("serverMessage(json) = %q, want %q", got, "too short")
	}
}
