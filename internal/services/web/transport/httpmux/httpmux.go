// Package httpmux mounts static assets and module route groups on the root
// mux.
package httpmux

import (
	"fmt"
	"io/fs"
	"net/http"
	"strings"

	module "github.com/techhubafrica/meetup-feedback/internal/services/web/module"
	routepath "github.com/techhubafrica/meetup-feedback/internal/services/web/routepath"
)

// MountStatic wires the shared static route into the root mux.
func MountStatic(rootMux *http.ServeMux, staticFS fs.FS, withStaticMime func(http.Handler) http.Handler) {
	if rootMux == nil || staticFS == nil {
		return
	}
	staticHandler := http.StripPrefix(routepath.Static, http.FileServer(http.FS(staticFS)))
	if withStaticMime != nil {
		staticHandler = withStaticMime(staticHandler)
	}
	rootMux.Handle(http.MethodGet+" "+routepath.Static, staticHandler)
}

// MountModules registers every module mount under its prefix. A prefix
// without a trailing slash also receives its subtree. Duplicate or empty
// prefixes are rejected.
func MountModules(rootMux *http.ServeMux, mounts []module.Mount) error {
	if rootMux == nil {
		return fmt.Errorf("mount modules: root mux is nil")
	}
	seen := make(map[string]struct{}, len(mounts))
	for _, mount := range mounts {
		prefix := strings.TrimSpace(mount.Prefix)
		if prefix == "" {
			return fmt.Errorf("mount modules: empty prefix")
		}
		if mount.Handler == nil {
			return fmt.Errorf("mount modules: %s: handler is nil", prefix)
		}
		if _, ok := seen[prefix]; ok {
			return fmt.Errorf("mount modules: duplicate prefix %s", prefix)
		}
		seen[prefix] = struct{}{}
		rootMux.Handle(prefix, mount.Handler)
		if !strings.HasSuffix(prefix, "/") {
			rootMux.Handle(prefix+"/", mount.Handler)
		}
	}
	return nil
}
