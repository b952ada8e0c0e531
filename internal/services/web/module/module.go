// Package module defines the feature contract used by web composition.
package module

import (
	"net/http"

	"github.com/techhubafrica/meetup-feedback/internal/services/web/platform/requestmeta"
)

// ResolveCSRFToken returns the CSRF token to embed in forms for a request.
type ResolveCSRFToken func(*http.Request) string

// Dependencies carries request-scoped resolvers and shared settings every
// module may use. Gateways are passed to each module's constructor instead.
type Dependencies struct {
	SchemePolicy     requestmeta.SchemePolicy
	PublicBaseURL    string
	ResolveCSRFToken ResolveCSRFToken
}

// CSRFToken resolves the request token, or "" when no resolver is wired.
func (d Dependencies) CSRFToken(r *http.Request) string {
	if d.ResolveCSRFToken == nil || r == nil {
		return ""
	}
	return d.ResolveCSRFToken(r)
}

// Mount describes a module route mount.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount(Dependencies) (Mount, error)
}

// HealthReporter is an optional interface for modules that can report their
// operational availability. Modules with gateway dependencies implement this
// so the registry can derive service health without centralizing client knowledge.
type HealthReporter interface {
	Healthy() bool
}
