// Package server implements the HTTP server using Echo framework.
//
// Routes: auth (session login), loan/payment/account REST API, notifications,
// the /ws push endpoint, and health/metrics. Handlers split by domain:
// handlers_auth.go, handlers_loans.go, handlers_account.go,
// handlers_notifications.go, handlers_ws.go, handlers_health.go.
package server
