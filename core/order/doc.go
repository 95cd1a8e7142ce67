// Package order provides the order lifecycle operations (placement,
// listing, tracking, and the admin status/notes update) plus a polling
// Watcher that notices externally-changed order statuses and reports them
// through the notification dispatcher.
//
// The Watcher replaces the original fixed-interval re-fetch with a
// cancellable sequential loop: every probe completes (or times out) before
// the next is scheduled, so probes can never overlap a slow backend.
package order
