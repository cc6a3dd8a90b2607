// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/wardrobe/internal/models"
	"github.com/tomtom215/wardrobe/internal/recommend"
)

const (
	defaultPopularLimit = 10
	maxPopularLimit     = 100
)

// ListItems handles GET /api/v1/catalog/items?slot=&season=
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	slot, err := slotParam(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	season, err := seasonParam(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	h.respondItems(w, r, http.StatusOK, h.catalog.List(slot, season))
}

// GetItem handles GET /api/v1/catalog/items/{id}. Deprecated items are
// returned too.
func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.catalog.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, item)
}

// IngestItems handles POST /api/v1/catalog/items. The batch is all or
// nothing.
func (h *Handler) IngestItems(w http.ResponseWriter, r *http.Request) {
	var body models.IngestRequest
	if !decodeAndValidate(w, r, &body) {
		return
	}

	added, err := h.catalog.Ingest(r.Context(), body.Items)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	h.respondItems(w, r, http.StatusCreated, added)
}

// DeprecateItem handles DELETE /api/v1/catalog/items/{id}. Items are
// retired, never removed, so earlier recommendations stay resolvable.
func (h *Handler) DeprecateItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	changed, err := h.catalog.Deprecate(r.Context(), id)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, &models.DeprecateResponse{
		ID:         id,
		Deprecated: true,
		Changed:    changed,
	})
}

// SearchItems handles GET /api/v1/catalog/search?attribute=&value=
func (h *Handler) SearchItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := h.catalog.SearchByAttribute(q.Get("attribute"), q.Get("value"))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	h.respondItems(w, r, http.StatusOK, items)
}

// PopularItems handles GET /api/v1/catalog/popular?slot=&limit=
func (h *Handler) PopularItems(w http.ResponseWriter, r *http.Request) {
	slot, err := slotParam(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	limit, err := getIntParam(r, "limit", defaultPopularLimit)
	if err != nil || limit < 1 || limit > maxPopularLimit {
		respondError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "limit must be between 1 and 100", nil)
		return
	}

	h.respondItems(w, r, http.StatusOK, h.catalog.Popular(slot, limit))
}

func (h *Handler) respondItems(w http.ResponseWriter, r *http.Request, status int, items []recommend.WardrobeItem) {
	if items == nil {
		items = []recommend.WardrobeItem{}
	}
	respondSuccess(w, r, status, &models.ItemsResponse{
		Items:          items,
		Count:          len(items),
		CatalogVersion: h.catalog.Version(),
	})
}
