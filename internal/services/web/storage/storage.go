package storage

import (
	"context"
	"errors"
	"time"

	"github.com/techhubafrica/meetup-feedback/internal/feedback"
	"github.com/techhubafrica/meetup-feedback/internal/feedback/wizard"
)

// ErrNotFound reports a missing or expired session or view.
var ErrNotFound = errors.New("storage: not found")

// Default lifetimes for per-visitor state.
const (
	DefaultWizardTTL   = 30 * time.Minute
	DefaultListViewTTL = 15 * time.Minute
)

// WizardStore keeps wizard sessions keyed by an opaque id.
//
// Update runs fn while holding the session's lock and then saves the wizard,
// whether or not fn returned an error; wizard methods leave the state
// consistent on failure. It returns the saved snapshot with fn's error, or a
// zero snapshot with the store's error when nothing was saved. Concurrent
// Updates for the same id run one after another.
type WizardStore interface {
	Create(ctx context.Context, snapshot wizard.Snapshot) (string, error)
	Get(ctx context.Context, id string) (wizard.Snapshot, error)
	Update(ctx context.Context, id string, fn func(*wizard.Wizard) error) (wizard.Snapshot, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// ListViewStore keeps the record set one list page load fetched, so filter
// requests can narrow it without calling the API again.
type ListViewStore interface {
	Put(records []feedback.Record) string
	Get(id string) ([]feedback.Record, bool)
}
