// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

/*
Package api exposes the recommendation engine and the catalog over HTTP.

Routes (all JSON, all wrapped in models.APIResponse):

	POST   /api/v1/outfits/recommend   structured request -> ranked outfits
	POST   /api/v1/outfits/intent      free text -> ranked outfits
	POST   /api/v1/feedback            like / dislike / neutral (202)
	GET    /api/v1/catalog/items       ?slot=&season=
	POST   /api/v1/catalog/items       ingest a batch
	GET    /api/v1/catalog/items/{id}
	DELETE /api/v1/catalog/items/{id}  deprecate
	GET    /api/v1/catalog/search      ?attribute=&value=
	GET    /api/v1/catalog/popular     ?slot=&limit=
	GET    /api/v1/profiles/{userID}
	GET    /api/v1/health
	GET    /metrics                    Prometheus

Error codes:

	INSUFFICIENT_INVENTORY  422  a required slot has no eligible items
	INVALID_CONSTRAINT      400  contradictory hard constraints
	UNKNOWN_CANDIDATE       404  feedback for an outfit never shown to the user
	VALIDATION_ERROR        400  malformed body or parameters
	INVALID_ITEM            400  rejected ingestion
	DUPLICATE_ITEM          409  ingestion of an existing ID
	NOT_FOUND               404  unknown item or route
	SERVICE_UNAVAILABLE     503  intent collaborator down or disabled
	RATE_LIMIT_EXCEEDED     429

The middleware stack follows chi conventions: request ID, real IP, panic
recovery, CORS and compression globally; rate limiting, security headers,
Prometheus instrumentation and a body size limit on /api/v1.
*/
package api
