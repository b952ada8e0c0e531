package pagerender

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"

	module "github.com/techhubafrica/meetup-feedback/internal/services/web/module"
	flashnotice "github.com/techhubafrica/meetup-feedback/internal/services/web/platform/flash"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/platform/requestmeta"
	webtemplates "github.com/techhubafrica/meetup-feedback/internal/services/web/templates"
)

func textComponent(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

func TestWritePageRendersHTMXFragmentWithStatus(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/tech-guru-meetup-2025/feedback/next", nil)
	req.Header.Set("HX-Request", "true")
	rr := httptest.NewRecorder()

	err := WritePage(rr, req, module.Dependencies{}, Page{
		Title:      "Feedback",
		StatusCode: http.StatusUnprocessableEntity,
		Fragment:   textComponent(`<section id="fragment-root">ok</section>`),
		Toast:      &webtemplates.Toast{Kind: "error", Message: "Please fill in all required fields correctly"},
	})
	if err != nil {
		t.Fatalf("WritePage() error = %v", err)
	}
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnprocessableEntity)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `id="fragment-root"`) {
		t.Fatalf("body missing fragment marker: %q", body)
	}
	if !strings.Contains(body, `hx-swap-oob="true"`) || !strings.Contains(body, "Please fill in all required fields correctly") {
		t.Fatalf("body missing out-of-band toast: %q", body)
	}
	if strings.Contains(strings.ToLower(body), "<!doctype html") || strings.Contains(strings.ToLower(body), "<html") {
		t.Fatalf("expected htmx fragment without full document wrapper")
	}
}

func TestWritePageRendersFullPageWithLayout(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/tech-guru-meetup-2025/feedback", nil)
	rr := httptest.NewRecorder()

	err := WritePage(rr, req, module.Dependencies{}, Page{
		Title:    "Feedback",
		Fragment: textComponent(`<section id="fragment-root">ok</section>`),
	})
	if err != nil {
		t.Fatalf("WritePage() error = %v", err)
	}
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if got := rr.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Fatalf("content-type = %q, want %q", got, "text/html; charset=utf-8")
	}
	body := rr.Body.String()
	if !strings.Contains(body, "<!DOCTYPE html>") || !strings.Contains(body, `id="fragment-root"`) {
		t.Fatalf("body missing layout or fragment: %q", body)
	}
	if !strings.Contains(body, "<title>Feedback | Tech Guru Meetup 2025</title>") {
		t.Fatalf("body missing composed title: %q", body)
	}
}

func TestWritePageConsumesFlashNotice(t *testing.T) {
	t.Parallel()

	policy := requestmeta.SchemePolicy{}
	writeReq := httptest.NewRequest(http.MethodPost, "/tech-guru-meetup-2025/feedback/next", nil)
	writeRR := httptest.NewRecorder()
	flashnotice.Write(writeRR, writeReq, flashnotice.NoticeSuccess("web.feedback.step_completed", "1"), policy)
	cookie, err := http.ParseSetCookie(writeRR.Header().Get("Set-Cookie"))
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/tech-guru-meetup-2025/feedback", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	if err := WritePage(rr, req, module.Dependencies{SchemePolicy: policy}, Page{Fragment: textComponent("ok")}); err != nil {
		t.Fatalf("WritePage() error = %v", err)
	}
	if body := rr.Body.String(); !strings.Contains(body, "Step 1 completed!") {
		t.Fatalf("body missing flash toast: %q", body)
	}
	cleared := false
	for _, c := range rr.Result().Cookies() {
		if c.Name == flashnotice.CookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("flash cookie was not cleared")
	}
}

func TestToastFromNoticeFallsBackToKey(t *testing.T) {
	t.Parallel()

	toast := ToastFromNotice(nil, flashnotice.Notice{Kind: flashnotice.KindInfo, Key: "raw message"})
	if toast == nil || toast.Message != "raw message" || toast.Kind != "info" {
		t.Fatalf("ToastFromNotice() = %+v", toast)
	}
	if got := ToastFromNotice(nil, flashnotice.Notice{}); got != nil {
		t.Fatalf("ToastFromNotice(empty) = %+v, want nil", got)
	}
}
