// Package page coordinates the three-step flashing workflow: choose a source,
// choose targets, flash.
//
// A Page keeps a cached Snapshot of the selection and flash stores and
// replaces it wholesale on every store notification. Step availability
// (Gate) and the visible regions (Layout) are derived from that snapshot and
// the page's own ViewState each frame.
//
// The page is not safe for concurrent use. Store notifications arrive on
// arbitrary goroutines, so the callback passed to Mount must hand control back
// to the UI loop, which then calls Sync.
//
// Phases:
//
//	main ──GoToSuccess──> success
//	  ^                      │
//	  └────FlashAnother──────┘  (resets the flash store first)
package page
