// Package session persists the working state across restarts.
//
// There is a single session slot. Every save overwrites it (last write
// wins) and a corrupt or missing record restores to an empty state rather
// than surfacing an error. Snapshots are JSON, gzip-compressed on disk.
//
// The Scheduler drives autosave: a short debounce after each change plus a
// periodic save while there is content. Autosave failures are logged and
// counted, never surfaced to the client.
package session
