package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	module "github.com/techhubafrica/meetup-feedback/internal/services/web/module"
)

type stubModule struct {
	id    string
	mount module.Mount
	err   error
}

func (m stubModule) ID() string { return m.id }

func (m stubModule) Mount(module.Dependencies) (module.Mount, error) {
	return m.mount, m.err
}

type reportingModule struct {
	stubModule
	healthy bool
}

func (m reportingModule) Healthy() bool { return m.healthy }

func status(code int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(code)
	})
}

func TestComposeRejectsDuplicateModulePrefix(t *testing.T) {
	t.Parallel()

	_, err := Compose(ComposeInput{
		Modules: []module.Module{
			stubModule{id: "one", mount: module.Mount{Prefix: "/one", Handler: status(http.StatusOK)}},
			stubModule{id: "two", mount: module.Mount{Prefix: "/one", Handler: status(http.StatusOK)}},
		},
	})
	if err == nil {
		t.Fatalf("expected duplicate prefix error")
	}
}

func TestComposeRejectsInvalidModulePrefixes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
	}{
		{name: "empty", prefix: ""},
		{name: "missing leading slash", prefix: "feedback"},
		{name: "contains surrounding whitespace", prefix: "/feedback "},
		{name: "static subtree", prefix: "/static/x"},
		{name: "health path", prefix: "/up"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Compose(ComposeInput{
				Modules: []module.Module{
					stubModule{id: "bad", mount: module.Mount{Prefix: tc.prefix, Handler: status(http.StatusOK)}},
				},
			})
			if err == nil {
				t.Fatalf("expected invalid prefix error")
			}
			if got := err.Error(); !strings.Contains(got, "invalid prefix") || !strings.Contains(got, "bad") {
				t.Fatalf("unexpected error = %q", got)
			}
		})
	}
}

func TestComposeRejectsNilModuleAndMountErrors(t *testing.T) {
	t.Parallel()

	if _, err := Compose(ComposeInput{Modules: []module.Module{nil}}); err == nil {
		t.Fatalf("expected nil module error")
	}
	_, err := Compose(ComposeInput{Modules: []module.Module{
		stubModule{id: "broken", err: http.ErrAbortHandler},
	}})
	if err == nil || !strings.Contains(err.Error(), "broken") {
		t.Fatalf("Compose() error = %v, want mount error naming the module", err)
	}
	_, err = Compose(ComposeInput{Modules: []module.Module{
		stubModule{id: "nohandler", mount: module.Mount{Prefix: "/x"}},
	}})
	if err == nil {
		t.Fatalf("expected missing handler error")
	}
}

func TestComposeRoutesModulesAndStatic(t *testing.T) {
	t.Parallel()

	h, err := Compose(ComposeInput{
		Modules: []module.Module{
			stubModule{id: "root", mount: module.Mount{Prefix: "/", Handler: status(http.StatusTeapot)}},
			stubModule{id: "form", mount: module.Mount{Prefix: "/form", Handler: status(http.StatusAccepted)}},
		},
		StaticFS: fstest.MapFS{"app.css": {Data: []byte("body{}")}},
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	tests := []struct {
		path string
		want int
	}{
		{path: "/", want: http.StatusTeapot},
		{path: "/elsewhere", want: http.StatusTeapot},
		{path: "/form", want: http.StatusAccepted},
		{path: "/form/next", want: http.StatusAccepted},
		{path: "/static/app.css", want: http.StatusOK},
	}
	for _, tc := range tests {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if rr.Code != tc.want {
			t.Fatalf("GET %s status = %d, want %d", tc.path, rr.Code, tc.want)
		}
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/static/app.css", nil))
	if got := rr.Header().Get("Content-Type"); got != "text/css; charset=utf-8" {
		t.Fatalf("static Content-Type = %q", got)
	}
}

func TestHealthReportsModules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		healthy    bool
		wantStatus int
		wantReport HealthReport
	}{
		{
			name:       "healthy",
			healthy:    true,
			wantStatus: http.StatusOK,
			wantReport: HealthReport{Status: HealthOK, Modules: map[string]bool{"plain": true, "gateway": true}},
		},
		{
			name:       "degraded",
			healthy:    false,
			wantStatus: http.StatusServiceUnavailable,
			wantReport: HealthReport{Status: HealthDegraded, Modules: map[string]bool{"plain": true, "gateway": false}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h, err := Compose(ComposeInput{Modules: []module.Module{
				stubModule{id: "plain", mount: module.Mount{Prefix: "/plain", Handler: status(http.StatusOK)}},
				reportingModule{
					stubModule: stubModule{id: "gateway", mount: module.Mount{Prefix: "/gateway", Handler: status(http.StatusOK)}},
					healthy:    tc.healthy,
				},
			}})
			if err != nil {
				t.Fatalf("Compose() error = %v", err)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/up", nil))
			if rr.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tc.wantStatus)
			}
			var got HealthReport
			if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
				t.Fatalf("decode health: %v", err)
			}
			if diff := cmp.Diff(tc.wantReport, got); diff != "" {
				t.Fatalf("health mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
