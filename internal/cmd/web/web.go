// Package web parses web command flags and launches the feedback site.
package web

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/techhubafrica/meetup-feedback/internal/feedback"
	entrypoint "github.com/techhubafrica/meetup-feedback/internal/platform/cmd"
	"github.com/techhubafrica/meetup-feedback/internal/platform/logging"
	"github.com/techhubafrica/meetup-feedback/internal/services/web"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/integration/feedbackapi"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/modules"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/storage"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/storage/memory"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/storage/sqlite"
)

// Config holds the web command configuration. Variable names carry the
// MEETUP_FEEDBACK_ prefix in the environment.
type Config struct {
	HTTPAddr             string        `env:"WEB_HTTP_ADDR" envDefault:"localhost:8080"`
	APIBaseURL           string        `env:"API_BASE_URL" envDefault:"https://tech-hub-server-2iz9.onrender.com/api"`
	PublicBaseURL        string        `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`
	APITimeout           time.Duration `env:"API_TIMEOUT" envDefault:"10s"`
	SuccessRedirectDelay time.Duration `env:"SUCCESS_REDIRECT_DELAY" envDefault:"5s"`
	ScanDelay            time.Duration `env:"SCAN_DELAY" envDefault:"2s"`
	SessionTTL           time.Duration `env:"WIZARD_SESSION_TTL" envDefault:"30m"`
	WizardDBPath         string        `env:"WIZARD_DB_PATH"`
	CSRFKey              string        `env:"CSRF_KEY"`
	TrustForwardedProto  bool          `env:"TRUST_FORWARDED_PROTO"`
	LogLevel             string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat            string        `env:"LOG_FORMAT" envDefault:"json"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.APIBaseURL, "api-base-url", cfg.APIBaseURL, "Feedback API base URL; empty serves the site without the API")
	fs.StringVar(&cfg.PublicBaseURL, "public-base-url", cfg.PublicBaseURL, "Public origin encoded in the QR code")
	fs.DurationVar(&cfg.APITimeout, "api-timeout", cfg.APITimeout, "Timeout for one feedback API call")
	fs.DurationVar(&cfg.SuccessRedirectDelay, "success-redirect-delay", cfg.SuccessRedirectDelay, "Delay before leaving the thank-you page")
	fs.DurationVar(&cfg.ScanDelay, "scan-delay", cfg.ScanDelay, "Delay of the simulated QR scan")
	fs.DurationVar(&cfg.SessionTTL, "wizard-session-ttl", cfg.SessionTTL, "Idle lifetime of a wizard session")
	fs.StringVar(&cfg.WizardDBPath, "wizard-db-path", cfg.WizardDBPath, "SQLite file for wizard sessions; empty keeps them in memory")
	fs.BoolVar(&cfg.TrustForwardedProto, "trust-forwarded-proto", cfg.TrustForwardedProto, "Trust X-Forwarded-Proto from a reverse proxy")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: json or console")

	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the web server and blocks until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	return RunWithOutput(ctx, cfg, os.Stderr)
}

// RunWithOutput is Run with logs written to w.
func RunWithOutput(ctx context.Context, cfg Config, w io.Writer) error {
	logger, err := logging.New(w, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	logger = logger.With().Str("service", entrypoint.ServiceWeb).Logger()
	ctx = logger.WithContext(ctx)

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(ctx context.Context) error {
		deps, err := buildDependencies(ctx, cfg)
		if err != nil {
			return err
		}
		server, err := web.NewServer(web.Config{
			HTTPAddr:            cfg.HTTPAddr,
			PublicBaseURL:       cfg.PublicBaseURL,
			TrustForwardedProto: cfg.TrustForwardedProto,
			CSRFKey:             cfg.CSRFKey,
			Logger:              logger,
			Modules:             deps,
		})
		if err != nil {
			if deps.WizardStore != nil {
				_ = deps.WizardStore.Close()
			}
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}

func buildDependencies(ctx context.Context, cfg Config) (modules.Dependencies, error) {
	logger := zerolog.Ctx(ctx)

	var client feedback.Client
	if strings.TrimSpace(cfg.APIBaseURL) == "" {
		logger.Warn().Msg("feedback api base url is empty; wizard and list report unavailable")
	} else {
		api, err := feedbackapi.New(feedbackapi.Config{BaseURL: cfg.APIBaseURL, Timeout: cfg.APITimeout})
		if err != nil {
			return modules.Dependencies{}, fmt.Errorf("init feedback api: %w", err)
		}
		client = api
	}

	store, err := openWizardStore(ctx, cfg)
	if err != nil {
		return modules.Dependencies{}, err
	}

	return modules.Dependencies{
		Client:               client,
		WizardStore:          store,
		ListViews:            memory.NewListViewStore(storage.DefaultListViewTTL, memory.DefaultMaxListViews),
		APITimeout:           cfg.APITimeout,
		SessionTTL:           cfg.SessionTTL,
		SuccessRedirectDelay: cfg.SuccessRedirectDelay,
		ScanDelay:            cfg.ScanDelay,
	}, nil
}

func openWizardStore(ctx context.Context, cfg Config) (storage.WizardStore, error) {
	path := strings.TrimSpace(cfg.WizardDBPath)
	if path == "" {
		return memory.NewWizardStore(cfg.SessionTTL), nil
	}
	store, err := sqlite.Open(ctx, path, cfg.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("open wizard store: %w", err)
	}
	zerolog.Ctx(ctx).Info().Str("path", path).Msg("wizard sessions stored in sqlite")
	return store, nil
}
