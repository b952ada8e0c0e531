// Package wizardcookie carries the visitor's feedback wizard session id.
package wizardcookie

import (
	"net/http"
	"strings"
	"time"

	"github.com/techhubafrica/meetup-feedback/internal/services/web/platform/requestmeta"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/routepath"
)

// Name is the wizard session cookie name.
const Name = "meetup_wizard"

// Read returns the trimmed wizard session id when present.
func Read(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(Name)
	if err != nil || cookie == nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	if value == "" {
		return "", false
	}
	return value, true
}

// WriteWithPolicy sets the wizard cookie, scoped to the feedback routes and
// expiring after ttl.
func WriteWithPolicy(w http.ResponseWriter, r *http.Request, sessionID string, ttl time.Duration, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    strings.TrimSpace(sessionID),
		Path:     routepath.Feedback,
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPSWithPolicy(r, policy),
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearWithPolicy expires the wizard cookie.
func ClearWithPolicy(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    "",
		Path:     routepath.Feedback,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPSWithPolicy(r, policy),
		SameSite: http.SameSiteLaxMode,
	})
}
