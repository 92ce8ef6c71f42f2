// SPDX-License-Identifier: EPL-2.0

// Package server exposes the detector over HTTP.
//
// Routes:
//
//	GET  /         service description
//	GET  /health   readiness
//	POST /detect   classify one clip (X-API-Key required)
//	GET  /metrics  Prometheus exposition, when metrics are enabled
//
// Every error body is {"status":"error","message":...}.
package server
