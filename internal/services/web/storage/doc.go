// Package storage declares persistence contracts for web-owned session data.
//
// Wizard sessions and list views are per-visitor working state. The remote
// feedback API stays the source of truth for attendees and feedback records.
package storage
