package modulehandler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"

	module "github.com/techhubafrica/meetup-feedback/internal/services/web/module"
	apperrors "github.com/techhubafrica/meetup-feedback/internal/services/web/platform/errors"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/platform/pagerender"
)

func TestCSRFTokenDelegatesToDependencies(t *testing.T) {
	t.Parallel()

	base := NewBase(module.Dependencies{ResolveCSRFToken: func(*http.Request) string { return "tok" }})
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := base.CSRFToken(r); got != "tok" {
		t.Fatalf("CSRFToken() = %q, want %q", got, "tok")
	}
	if got := NewBase(module.Dependencies{}).CSRFToken(r); got != "" {
		t.Fatalf("CSRFToken() without resolver = %q, want empty", got)
	}
}

func TestDependenciesRoundTrip(t *testing.T) {
	t.Parallel()

	deps := module.Dependencies{PublicBaseURL: "https://meetup.example.org"}
	if got := NewBase(deps).Dependencies().PublicBaseURL; got != deps.PublicBaseURL {
		t.Fatalf("Dependencies().PublicBaseURL = %q, want %q", got, deps.PublicBaseURL)
	}
}

func TestLocalizerTranslatesCatalogKeys(t *testing.T) {
	t.Parallel()

	loc := NewBase(module.Dependencies{}).Localizer(httptest.NewRequest(http.MethodGet, "/", nil))
	if got := loc.Sprintf("web.feedback.step.initial"); got != "Initial Feedback" {
		t.Fatalf("Sprintf() = %q, want %q", got, "Initial Feedback")
	}
}

func TestWritePageRendersFragment(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("HX-Request", "true")
	NewBase(module.Dependencies{}).WritePage(rr, r, pagerender.Page{
		Title:    "Title",
		Fragment: templ.Raw("<p>hello</p>"),
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), "<p>hello</p>") {
		t.Fatalf("body = %q, want fragment", rr.Body.String())
	}
}

func TestWriteNotFoundRendersErrorPage(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	NewBase(module.Dependencies{}).WriteNotFound(rr, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	if !strings.Contains(rr.Body.String(), "<!DOCTYPE html>") {
		t.Fatalf("body is not a full page")
	}
}

func TestWriteErrorUsesErrorKind(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	err := apperrors.Wrap(apperrors.KindConflict, "web.error.conflict", errors.New("busy"))
	NewBase(module.Dependencies{}).WriteError(rr, httptest.NewRequest(http.MethodPost, "/", nil), err)
	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusConflict)
	}
	if strings.Contains(rr.Body.String(), "busy") {
		t.Fatalf("body leaks cause: %q", rr.Body.String())
	}
}
