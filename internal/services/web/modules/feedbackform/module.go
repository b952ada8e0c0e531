// Package feedbackform serves the three-step feedback wizard.
//
// Wizard state lives server side in a storage.WizardStore keyed by the
// wizard cookie. Every POST loads the session, applies one wizard operation
// under the store's per-session lock and renders the resulting step.
package feedbackform

import (
	"net/http"
	"time"

	"github.com/techhubafrica/meetup-feedback/internal/feedback"
	"github.com/techhubafrica/meetup-feedback/internal/platform/timeouts"
	module "github.com/techhubafrica/meetup-feedback/internal/services/web/module"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/routepath"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/storage"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/storage/memory"
)

// DefaultSuccessRedirectDelay is how long the thank-you page stays up before
// the browser moves on to the feedback list.
const DefaultSuccessRedirectDelay = 5 * time.Second

// Config wires the wizard module.
type Config struct {
	// Gateway is the remote feedback API; nil fails closed.
	Gateway feedback.Client
	// Store keeps wizard sessions; nil uses an in-memory store.
	Store storage.WizardStore
	// APITimeout bounds each remote call.
	APITimeout time.Duration
	// SuccessRedirectDelay defaults to DefaultSuccessRedirectDelay.
	SuccessRedirectDelay time.Duration
	// SessionTTL is the wizard cookie lifetime.
	SessionTTL time.Duration
}

// Module provides feedback wizard routes.
type Module struct {
	cfg        Config
	configured bool
}

// New returns a wizard module.
func New(cfg Config) Module {
	configured := cfg.Gateway != nil
	if cfg.Gateway == nil {
		cfg.Gateway = unavailableGateway{}
	}
	if cfg.Store == nil {
		cfg.Store = memory.NewWizardStore(cfg.SessionTTL)
	}
	if cfg.APITimeout <= 0 {
		cfg.APITimeout = timeouts.APIRequest
	}
	if cfg.SuccessRedirectDelay <= 0 {
		cfg.SuccessRedirectDelay = DefaultSuccessRedirectDelay
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = storage.DefaultWizardTTL
	}
	return Module{cfg: cfg, configured: configured}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "feedbackform" }

// Healthy reports whether the module has an API gateway.
func (m Module) Healthy() bool { return m.configured }

// Mount wires wizard route handlers.
func (m Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	svc := newService(m.cfg.Gateway, m.cfg.Store, m.cfg.APITimeout)
	h := newHandlers(svc, m.cfg, deps)
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.Feedback, Handler: mux}, nil
}
