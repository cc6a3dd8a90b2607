// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

/*
Package collaborator provides HTTP/JSON clients for the two external
services the engine consults:

  - GenerativeClient (recommend.CandidateProposer): POST /v1/propose with
    {"request": ..., "max_items": n}, answered by {"items": [...]}
  - IntentClient (recommend.IntentParser): POST /v1/parse with
    {"text": ...}, answered by {"request": {...}}

Each client throttles outbound calls with a token bucket and runs every call
through its own circuit breaker (generative-api, intent-api). Breaker state
and call outcomes are exported as Prometheus metrics.

A client with no URL configured is nil. The engine treats a nil proposer as
"no proposals" and a nil intent parser as unavailable.
*/
package collaborator
