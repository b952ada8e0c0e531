// Package landing serves the event landing page, its QR code and the
// simulated scan hand-off to the feedback form.
package landing

import (
	"net/http"
	"time"

	module "github.com/techhubafrica/meetup-feedback/internal/services/web/module"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/routepath"
)

// DefaultScanDelay is how long the scan page waits before opening the form.
const DefaultScanDelay = 2 * time.Second

// Config tunes the landing module.
type Config struct {
	// ScanDelay is the pause on the scan page; non-positive uses the default.
	ScanDelay time.Duration
	// Encode renders QR PNGs; nil uses the go-qrcode encoder.
	Encode Encoder
}

// Module provides landing routes.
type Module struct {
	cfg Config
}

// New returns a landing module.
func New(cfg Config) Module {
	if cfg.ScanDelay <= 0 {
		cfg.ScanDelay = DefaultScanDelay
	}
	if cfg.Encode == nil {
		cfg.Encode = EncodePNG
	}
	return Module{cfg: cfg}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "landing" }

// Mount wires landing route handlers. The module owns the root prefix and
// answers unknown paths with the not-found page.
func (m Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	h := newHandlers(newService(m.cfg.Encode), m.cfg, deps)
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.Root, Handler: mux}, nil
}
