// Package httpapi exposes the matching, moderation, and conversation
// services over HTTP.
//
// Routes are served under /api with JSON request and response bodies.
// Domain errors map onto status codes: invalid input is 400, a missing
// index or unreachable reply service is 503. Prometheus metrics are
// exposed on /metrics.
package httpapi
