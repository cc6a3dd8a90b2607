// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

/*
Package models defines the HTTP request and response shapes of the
wardrobe API.

Every endpoint answers with an APIResponse envelope. Request bodies carry
go-playground/validator tags and are checked by the validation package
before they reach the engine; domain types (items, outfits, profiles) are
reused from the recommend package rather than duplicated here.
*/
package models
