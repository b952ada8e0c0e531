// Package feedbacklist serves the searchable community feedback list.
package feedbacklist

import (
	"net/http"

	module "github.com/techhubafrica/meetup-feedback/internal/services/web/module"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/routepath"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/storage"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/storage/memory"
)

// Module provides feedback list routes.
type Module struct {
	gateway Gateway
	views   storage.ListViewStore
}

// New returns a list module with an unavailable gateway.
func New() Module {
	return NewWithGateway(nil, nil)
}

// NewWithGateway returns a list module reading through gateway. A nil views
// store uses an in-memory one.
func NewWithGateway(gateway Gateway, views storage.ListViewStore) Module {
	if views == nil {
		views = memory.NewListViewStore(0, 0)
	}
	return Module{gateway: gateway, views: views}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "feedbacklist" }

// Healthy reports whether the module has an API gateway.
func (m Module) Healthy() bool { return m.gateway != nil }

// Mount wires list route handlers.
func (m Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	h := newHandlers(newService(m.gateway, m.views), deps)
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.FeedbackList, Handler: mux}, nil
}
