// Package state holds the shared, externally mutable stores the main page
// observes: the image/drive selection and the flash session mirror.
//
// # Overview
//
// Both stores are written from outside the UI loop (the daemon poller, the
// websocket stream, and step widgets acting on user input) and read from the
// UI loop. They share one Hub, so every mutation of either store produces a
// notification on a single merged stream.
//
//	Writers:                        Hub:                 Readers:
//	┌──────────────────┐                                 ┌──────────────────┐
//	│ poller / stream  │─ Flash.Apply ──┐                │ page.Sync()      │
//	│ step widgets     │─ Selection.* ──┼─> Notify() ──> │  re-projects the │
//	│ settings watcher │─ Hub.Notify ───┘                │  current state   │
//	└──────────────────┘                                 └──────────────────┘
//
// # Notification Semantics
//
// Notifications carry no payload. Observers are expected to re-read the
// stores in full, which makes at-least-once delivery and coalescing safe:
// two notifications that arrive before the observer runs lead to the same
// result as one.
//
// # Concurrency Model
//
// Each store guards its data with a sync.RWMutex and returns defensive
// copies, the same approach the snapshot store of the monitoring UI used:
//
//   - Mutations take the write lock, then notify after releasing it
//   - Queries take the read lock and copy pointers and slices out
//   - Observers run on the mutating goroutine and must not block
//
// # Reset Semantics
//
// Flash.ResetState remembers the session it cleared. A terminal status for
// that session arriving from a later poll is dropped, so a user returning
// from the success screen never sees residual progress.
package state
