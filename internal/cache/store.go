// Package cache mirrors the last-known-good backend collections into a local
// durable key/value store. The mirror only ever holds a best-effort snapshot,
// never authoritative state: it is read at cold start when the network path
// fails and overwritten on every successful fetch or local mutation.
package cache

import "context"

// Snapshot keys shared between the services and the store.
const (
	KeyReservations = "professorReservations"
	KeyTimetable    = "timetableEntries"
	KeyEditing      = "editingReservation"
)

// Store is the narrow read/write surface the services depend on. Writes are
// fire-and-forget: implementations must swallow and log serialization or
// storage failures rather than surface them. Reads must treat a missing or
// corrupt record as absent.
type Store interface {
	// Write serializes value under key, replacing any previous snapshot.
	Write(ctx context.Context, key string, value any)
	// Read deserializes the snapshot stored under key into dest and
	// reports whether a usable snapshot was found.
	Read(ctx context.Context, key string, dest any) bool
}
