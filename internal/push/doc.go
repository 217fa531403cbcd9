// Package push implements server-side push notification fan-out using the actor pattern.
//
// The Broadcaster owns a registry of user id -> open WebSocket channels and converts
// domain events (new notification, unread count change, scheduled tip) into typed JSON
// messages. Uses single goroutine + command channel (no mutexes). Per-connection write
// goroutines handle slow clients gracefully. Delivery is best-effort, at-most-once per
// attempt: the notification record itself stays retrievable through the store.
package push
