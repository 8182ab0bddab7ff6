// Package ws pushes state updates to connected clients.
//
// Every client receives the full state view on connect and after every
// mutation. Broadcasts are coalesced: a burst of changes may produce fewer
// messages, each carrying the latest revision, never a stale one.
package ws
