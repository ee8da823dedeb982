// Package api implements the RequestGateway port over HTTP.
//
// The client attaches the bearer token from an oauth2.TokenSource just
// before each request is sent, throttles outbound calls, tags each call
// with an X-Request-ID, and records Prometheus metrics.
package api
