// Package server implements the HTTP server using Echo framework.
//
// Routes: catalog API (/api/...), WebSocket endpoint (/ws), health and
// metrics, and the admin surface (stats, match events). Handlers split by
// concern: handlers_api.go, handlers_ws.go, handlers_admin.go,
// handlers_health.go.
package server
