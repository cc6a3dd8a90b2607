// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

/*
Package middleware provides HTTP middleware shared by the API router.

  - RequestID: accepts or generates X-Request-ID and stores it in the
    request context for logging and the recommendation engine
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled
    by chi route pattern

Both are plain func(http.Handler) http.Handler and plug into chi's r.Use.
*/
package middleware
