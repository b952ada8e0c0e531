// Package modules composes the web feature modules.
package modules

import (
	"time"

	"github.com/techhubafrica/meetup-feedback/internal/feedback"
	module "github.com/techhubafrica/meetup-feedback/internal/services/web/module"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/storage"
)

// Mount aliases the module mount contract.
type Mount = module.Mount

// Module aliases the module interface contract.
type Module = module.Module

// Dependencies carries the API client, stores and timings required to
// compose the web module registry. A nil Client leaves the wizard and the
// list failing closed with 503 responses.
type Dependencies struct {
	Client feedback.Client

	WizardStore storage.WizardStore
	ListViews   storage.ListViewStore

	APITimeout           time.Duration
	SessionTTL           time.Duration
	SuccessRedirectDelay time.Duration
	ScanDelay            time.Duration
}
