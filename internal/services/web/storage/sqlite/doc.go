// Package sqlite persists wizard sessions in SQLite so an in-progress
// submission survives a restart.
//
// Rows hold JSON snapshots that expire; nothing here is authoritative.
package sqlite
