package modules

import (
	module "github.com/techhubafrica/meetup-feedback/internal/services/web/module"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/modules/feedbackform"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/modules/feedbacklist"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/modules/landing"
)

// DefaultModules returns the landing page, the feedback wizard and the
// feedback list.
func DefaultModules(deps Dependencies) []Module {
	var list Module = feedbacklist.New()
	if deps.Client != nil {
		list = feedbacklist.NewWithGateway(deps.Client, deps.ListViews)
	}
	return []Module{
		landing.New(landing.Config{ScanDelay: deps.ScanDelay}),
		feedbackform.New(feedbackform.Config{
			Gateway:              deps.Client,
			Store:                deps.WizardStore,
			APITimeout:           deps.APITimeout,
			SuccessRedirectDelay: deps.SuccessRedirectDelay,
			SessionTTL:           deps.SessionTTL,
		}),
		list,
	}
}

// Health reports each module's availability keyed by module id. Modules
// without gateway dependencies are always healthy.
func Health(mods []Module) map[string]bool {
	status := make(map[string]bool, len(mods))
	for _, m := range mods {
		healthy := true
		if reporter, ok := m.(module.HealthReporter); ok {
			healthy = reporter.Healthy()
		}
		status[m.ID()] = healthy
	}
	return status
}
