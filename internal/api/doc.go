// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package api provides the HTTP REST API for the recommendation service.

Endpoints:

	POST /api/v1/recommend                  resolve a title and rank similar movies
	GET  /api/v1/movies/resolve?q=          fuzzy title resolution only
	GET  /api/v1/movies/{index}/similar?n=  rank by catalog index
	GET  /api/v1/moods                      known emotions and their genres
	GET  /api/v1/moods/{emotion}/movies?n=  mood picks
	GET  /api/v1/health                     catalog statistics and uptime
	GET  /metrics                           Prometheus exposition

Every JSON response uses models.APIResponse. Errors carry a machine-readable
code:

	400 VALIDATION_ERROR  malformed body or query parameters
	400 INVALID_ANCHOR    catalog index out of range
	404 NO_MATCH          no title scored at or above the match threshold
	429 RATE_LIMIT_EXCEEDED
	500 INTERNAL_ERROR

Middleware Stack:

Global middleware runs for every route: request ID with logging context,
RealIP, Recoverer and CORS. The /api/v1 group adds httprate limiting by
client IP, security headers, a request body cap and Prometheus metrics.

Usage Example:

	handler := api.NewHandler(index, version)
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(&cfg.Security))
	srv := &http.Server{Addr: addr, Handler: router.SetupChi()}
*/
package api
