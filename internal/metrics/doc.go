// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

/*
Package metrics provides Prometheus metrics for the recommendation service.

All collectors are registered with the default registry via promauto and are
exposed at /metrics in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

Recommendation:
  - wardrobe_recommend_requests_total{outcome}
  - wardrobe_recommend_duration_seconds

Search:
  - wardrobe_search_candidates_evaluated (histogram, outfits scored per search)
  - wardrobe_search_branches_pruned_total
  - wardrobe_search_rejections_total{kind}
  - wardrobe_search_truncated_total

Feedback:
  - wardrobe_feedback_total{outcome}

Collaborators:
  - wardrobe_collaborator_requests_total{collaborator, outcome}
  - wardrobe_collaborator_duration_seconds{collaborator}
  - circuit_breaker_state{name} (0=closed, 1=half-open, 2=open)
  - circuit_breaker_state_transitions_total{name, from_state, to_state}

Catalog and events:
  - wardrobe_catalog_items{slot}
  - wardrobe_catalog_version
  - wardrobe_events_published_total{topic, outcome}
  - wardrobe_events_consumed_total{topic, outcome}

API:
  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests

# Thread Safety

All helpers are safe for concurrent use.
*/
package metrics
