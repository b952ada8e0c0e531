package web

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/techhubafrica/meetup-feedback/internal/platform/timeouts"
	webapp "github.com/techhubafrica/meetup-feedback/internal/services/web/app"
	module "github.com/techhubafrica/meetup-feedback/internal/services/web/module"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/modules"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/platform/httpx"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/platform/requestmeta"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/routepath"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/static"
	webtemplates "github.com/techhubafrica/meetup-feedback/internal/services/web/templates"
)

const csrfKeySize = 32

// Config defines the inputs for the web server.
type Config struct {
	HTTPAddr string
	// PublicBaseURL is the externally visible origin encoded in the QR code.
	// An https URL also marks the CSRF cookie Secure.
	PublicBaseURL       string
	TrustForwardedProto bool
	// CSRFKey seeds the CSRF token key. Empty uses a random key per process,
	// which invalidates open forms on restart.
	CSRFKey string
	Logger  zerolog.Logger
	Modules modules.Dependencies
}

// Server hosts the web HTTP server.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	logger     zerolog.Logger
	modules    modules.Dependencies
}

// NewHandler builds the root handler with its middleware chain.
func NewHandler(cfg Config) (http.Handler, error) {
	key, err := csrfKey(cfg.CSRFKey)
	if err != nil {
		return nil, err
	}
	policy := requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto}
	deps := module.Dependencies{
		SchemePolicy:     policy,
		PublicBaseURL:    strings.TrimRight(strings.TrimSpace(cfg.PublicBaseURL), "/"),
		ResolveCSRFToken: csrf.Token,
	}
	root, err := webapp.Compose(webapp.ComposeInput{
		Modules:      modules.DefaultModules(cfg.Modules),
		Dependencies: deps,
		StaticFS:     static.FS,
	})
	if err != nil {
		return nil, fmt.Errorf("compose modules: %w", err)
	}

	handler := httpx.Chain(root,
		httpx.Logger(cfg.Logger),
		httpx.RequestID(),
		httpx.AccessLog(),
		httpx.RecoverPanic(),
		csrfProtection(key, deps.PublicBaseURL, policy),
	)
	return otelhttp.NewHandler(handler, "web",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	), nil
}

// NewServer creates a configured web server.
func NewServer(cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("build handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
			IdleTimeout:       timeouts.Idle,
		},
		logger:  cfg.Logger,
		modules: cfg.Modules,
	}, nil
}

// ListenAndServe runs the HTTP server until the context ends.
//
// On cancellation, it performs a bounded shutdown so in-flight requests
// are drained before hard close.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	s.logger.Info().Str("addr", s.httpAddr).Msg("web listening")
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		<-serveErr
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases the wizard session store.
func (s *Server) Close() {
	if s == nil || s.modules.WizardStore == nil {
		return
	}
	if err := s.modules.WizardStore.Close(); err != nil {
		s.logger.Warn().Err(err).Msg("close wizard store")
	}
}

func csrfKey(seed string) ([]byte, error) {
	if seed = strings.TrimSpace(seed); seed != "" {
		sum := sha256.Sum256([]byte(seed))
		return sum[:], nil
	}
	key := make([]byte, csrfKeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate csrf key: %w", err)
	}
	return key, nil
}

// csrfProtection guards every unsafe request. Requests that resolve to plain
// http skip the Referer check, which only holds over TLS.
func csrfProtection(key []byte, publicBaseURL string, policy requestmeta.SchemePolicy) httpx.Middleware {
	opts := []csrf.Option{
		csrf.Path(routepath.Root),
		csrf.Secure(strings.HasPrefix(publicBaseURL, "https://")),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.FieldName(webtemplates.CSRFFieldName),
		csrf.ErrorHandler(http.HandlerFunc(writeCSRFFailure)),
	}
	if parsed, err := url.Parse(publicBaseURL); err == nil && parsed.Host != "" {
		opts = append(opts, csrf.TrustedOrigins([]string{parsed.Host}))
	}
	protect := csrf.Protect(key, opts...)
	return func(next http.Handler) http.Handler {
		protected := protect(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !requestmeta.IsHTTPSWithPolicy(r, policy) {
				r = csrf.PlaintextHTTPRequest(r)
			}
			protected.ServeHTTP(w, r)
		})
	}
}

func writeCSRFFailure(w http.ResponseWriter, r *http.Request) {
	hlog.FromRequest(r).Warn().
		Err(csrf.FailureReason(r)).
		Str("path", r.URL.Path).
		Msg("csrf check failed")
	http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
}
