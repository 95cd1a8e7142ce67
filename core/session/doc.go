// Package session owns the authenticated-user identity for the storefront
// client: login, registration, federated login, logout, and the one-time
// startup restore that revalidates a stored token against the backend.
//
// The manager is the exclusive owner of the session; the durable store is a
// mirror, never a second source of truth. Token and profile are persisted
// together or not at all, so a partial session can never be restored.
//
// Network and backend failures never escape as errors: every auth operation
// returns a uniform Result carrying either the adopted profile or a
// human-readable message extracted from the backend's error payload.
package session
