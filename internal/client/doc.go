// Package client implements the client side of the push channel: a reconnect
// manager that keeps one WebSocket alive across transient disconnects and
// maintains the local unread counter and the currently displayed tip.
//
// Push payloads are hints, not the source of truth: a NEW_NOTIFICATION
// message bumps the counter and triggers the invalidate callback so the
// owner refetches the authoritative list through the REST API.
package client
