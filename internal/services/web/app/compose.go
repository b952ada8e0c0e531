// Package app composes the root HTTP handler from feature modules.
package app

import (
	"fmt"
	"io/fs"
	"net/http"
	"strings"

	module "github.com/techhubafrica/meetup-feedback/internal/services/web/module"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/modules"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/platform/httpx"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/routepath"
	webhttp "github.com/techhubafrica/meetup-feedback/internal/services/web/transport/http"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/transport/httpmux"
)

// ComposeInput carries the modules and shared contracts mounted on the root
// mux.
type ComposeInput struct {
	Modules      []module.Module
	Dependencies module.Dependencies
	// StaticFS is served under routepath.Static when set.
	StaticFS fs.FS
}

// Health statuses reported by the health endpoint.
const (
	HealthOK       = "ok"
	HealthDegraded = "degraded"
)

// HealthReport is the health endpoint payload.
type HealthReport struct {
	Status  string          `json:"status"`
	Modules map[string]bool `json:"modules"`
}

// Compose builds a root HTTP handler with static assets, the health
// endpoint and every module mount.
func Compose(input ComposeInput) (http.Handler, error) {
	root := http.NewServeMux()
	httpmux.MountStatic(root, input.StaticFS, webhttp.WithStaticMime)

	mounts := make([]module.Mount, 0, len(input.Modules))
	for _, feature := range input.Modules {
		mount, err := resolveMount(feature, input.Dependencies)
		if err != nil {
			return nil, err
		}
		mounts = append(mounts, mount)
	}
	if err := httpmux.MountModules(root, mounts); err != nil {
		return nil, err
	}

	root.Handle(http.MethodGet+" "+routepath.Health, healthHandler(input.Modules))
	return root, nil
}

func resolveMount(feature module.Module, deps module.Dependencies) (module.Mount, error) {
	if feature == nil {
		return module.Mount{}, fmt.Errorf("module is nil")
	}
	mount, err := feature.Mount(deps)
	if err != nil {
		return module.Mount{}, fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	if err := validatePrefix(mount.Prefix); err != nil {
		return module.Mount{}, fmt.Errorf("mount module %q has invalid prefix %q: %w", feature.ID(), mount.Prefix, err)
	}
	if mount.Handler == nil {
		return module.Mount{}, fmt.Errorf("mount module %q: handler is required", feature.ID())
	}
	return mount, nil
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("prefix is required")
	}
	if strings.TrimSpace(prefix) != prefix {
		return fmt.Errorf("prefix must not include surrounding whitespace")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("prefix must begin with /")
	}
	if strings.HasPrefix(prefix, routepath.Static) || prefix == routepath.Health {
		return fmt.Errorf("prefix is reserved")
	}
	return nil
}

// healthHandler answers 200 while every module is healthy and 503 once one
// of them lost its gateway.
func healthHandler(mods []module.Module) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		report := HealthReport{Status: HealthOK, Modules: modules.Health(mods)}
		status := http.StatusOK
		for _, healthy := range report.Modules {
			if !healthy {
				report.Status = HealthDegraded
				status = http.StatusServiceUnavailable
				break
			}
		}
		w.Header().Set("Cache-Control", "no-store")
		_ = httpx.WriteJSON(w, status, report)
	})
}
