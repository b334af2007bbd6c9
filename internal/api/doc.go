// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package api exposes the recommendation service over HTTP using the chi router.

# Endpoints

	POST /recommend                     {"mode":"movie|mood","value":"...","top_n":5}
	GET  /api/v1/recommend/movie        ?title=Avatar&top_n=5
	GET  /api/v1/recommend/mood         ?mood=happy&top_n=5
	GET  /api/v1/catalog                titles and moods for pickers
	GET  /api/v1/catalog/search         ?q=dark&limit=10 title autocomplete
	POST /api/v1/admin/reload           rebuild the engine snapshot
	GET  /api/v1/health/live            process is up
	GET  /api/v1/health/ready           a snapshot is loaded
	GET  /metrics                       Prometheus

Successful recommendation responses have the form {"results":[...]}; errors
are {"error":"message","code":"NOT_FOUND"} with a status derived from the
error by statusFor.

# Middleware

Every request passes through request ID propagation, real IP extraction,
panic recovery, CORS (go-chi/cors) and Prometheus request metrics. The
/recommend and /api/v1 groups are rate limited per client IP with
go-chi/httprate; health checks get a separate, more generous limit.
*/
package api
