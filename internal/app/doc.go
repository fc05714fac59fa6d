// Package app is the composition root for Etcher.
//
// Run loads configuration, opens the settings and preference stores, creates
// the shared selection and flash stores, starts the daemon sync loops and
// hands everything to the UI.
//
// # Daemon sync
//
// Two goroutines keep the stores current:
//
//   - the stream loop holds a websocket to the daemon and applies every
//     status it pushes; it reconnects with exponential backoff
//   - the poll loop refreshes the drive list on every tick and fetches the
//     flash status only while the stream is down
//
// Poll failures are recorded on the flash store so the header can report a
// missing daemon. Backoff doubles per consecutive failure and is capped at
// 30 seconds.
package app
