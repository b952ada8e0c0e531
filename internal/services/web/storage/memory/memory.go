// Package memory provides process-local storage for wizard sessions and list
// views. Entries expire lazily on access and on writes.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/techhubafrica/meetup-feedback/internal/feedback"
	"github.com/techhubafrica/meetup-feedback/internal/feedback/wizard"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/storage"
)

// WizardStore keeps wizard sessions in memory with a sliding expiry.
type WizardStore struct {
	ttl   time.Duration
	now   func() time.Time
	newID func() string
	locks storage.KeyedMutex

	mu       sync.Mutex
	sessions map[string]wizardEntry
}

type wizardEntry struct {
	snapshot  wizard.Snapshot
	expiresAt time.Time
}

// NewWizardStore builds a store; a non-positive ttl uses the default.
func NewWizardStore(ttl time.Duration) *WizardStore {
	if ttl <= 0 {
		ttl = storage.DefaultWizardTTL
	}
	return &WizardStore{
		ttl:      ttl,
		now:      time.Now,
		newID:    uuid.NewString,
		sessions: make(map[string]wizardEntry),
	}
}

// Create stores a new session and returns its id.
func (s *WizardStore) Create(_ context.Context, snapshot wizard.Snapshot) (string, error) {
	id := s.newID()
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleanupExpiredLocked(now)
	s.sessions[id] = wizardEntry{snapshot: snapshot, expiresAt: now.Add(s.ttl)}
	return id, nil
}

// Get returns the session snapshot or storage.ErrNotFound.
func (s *WizardStore) Get(_ context.Context, id string) (wizard.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.lookupLocked(id, s.now())
	if !ok {
		return wizard.Snapshot{}, storage.ErrNotFound
	}
	return entry.snapshot, nil
}

// Update applies fn under the session lock and saves the result.
func (s *WizardStore) Update(ctx context.Context, id string, fn func(*wizard.Wizard) error) (wizard.Snapshot, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	current, err := s.Get(ctx, id)
	if err != nil {
		return wizard.Snapshot{}, err
	}
	w, err := wizard.Restore(current)
	if err != nil {
		return wizard.Snapshot{}, err
	}
	fnErr := fn(w)
	next := w.Snapshot()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		// Deleted while fn ran.
		return wizard.Snapshot{}, storage.ErrNotFound
	}
	s.sessions[id] = wizardEntry{snapshot: next, expiresAt: s.now().Add(s.ttl)}
	return next, fnErr
}

// Delete removes a session. Missing ids are not an error.
func (s *WizardStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Close is a no-op for the memory store.
func (s *WizardStore) Close() error { return nil }

func (s *WizardStore) lookupLocked(id string, now time.Time) (wizardEntry, bool) {
	entry, ok := s.sessions[id]
	if !ok {
		return wizardEntry{}, false
	}
	if !now.Before(entry.expiresAt) {
		delete(s.sessions, id)
		return wizardEntry{}, false
	}
	return entry, true
}

func (s *WizardStore) cleanupExpiredLocked(now time.Time) {
	for id, entry := range s.sessions {
		if !now.Before(entry.expiresAt) {
			delete(s.sessions, id)
		}
	}
}

// ListViewStore keeps fetched record sets for list filtering.
type ListViewStore struct {
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
	newID      func() string

	mu    sync.Mutex
	views map[string]listViewEntry
}

type listViewEntry struct {
	records   []feedback.Record
	createdAt time.Time
	expiresAt time.Time
}

// DefaultMaxListViews bounds memory held by abandoned list pages.
const DefaultMaxListViews = 512

// NewListViewStore builds a store; non-positive values use the defaults.
func NewListViewStore(ttl time.Duration, maxEntries int) *ListViewStore {
	if ttl <= 0 {
		ttl = storage.DefaultListViewTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxListViews
	}
	return &ListViewStore{
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
		newID:      uuid.NewString,
		views:      make(map[string]listViewEntry),
	}
}

// Put stores a copy of records and returns the view id.
func (s *ListViewStore) Put(records []feedback.Record) string {
	id := s.newID()
	now := s.now()
	held := append([]feedback.Record(nil), records...)

	s.mu.Lock()
	defer s.mu.Unlock()
	for key, entry := range s.views {
		if !now.Before(entry.expiresAt) {
			delete(s.views, key)
		}
	}
	for len(s.views) >= s.maxEntries {
		s.evictOldestLocked()
	}
	s.views[id] = listViewEntry{records: held, createdAt: now, expiresAt: now.Add(s.ttl)}
	return id
}

// Get returns the records for a live view.
func (s *ListViewStore) Get(id string) ([]feedback.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.views[id]
	if !ok {
		return nil, false
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.views, id)
		return nil, false
	}
	return append([]feedback.Record(nil), entry.records...), true
}

func (s *ListViewStore) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, entry := range s.views {
		if oldestID == "" || entry.createdAt.Before(oldest) {
			oldestID, oldest = id, entry.createdAt
		}
	}
	delete(s.views, oldestID)
}

var (
	_ storage.WizardStore   = (*WizardStore)(nil)
	_ storage.ListViewStore = (*ListViewStore)(nil)
)
