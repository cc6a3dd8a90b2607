// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package recommend

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Slot is an outfit role that a candidate fills with exactly one item.
type Slot string

const (
	// SlotTop covers shirts, blouses, sweaters.
	SlotTop Slot = "top"
	// SlotBottom covers pants, skirts, shorts.
	SlotBottom Slot = "bottom"
	// SlotOuterwear covers jackets and coats.
	SlotOuterwear Slot = "outerwear"
	// SlotShoe covers all footwear.
	SlotShoe Slot = "shoe"
	// SlotAccessory covers bags, belts, hats, watches.
	SlotAccessory Slot = "accessory"
)

// SlotOrder is the canonical slot order. Outfits list their items in this
// order and the combination search expands slots in this order.
var SlotOrder = []Slot{SlotTop, SlotBottom, SlotOuterwear, SlotShoe, SlotAccessory}

// DefaultSlots are the required slots when a request names none.
var DefaultSlots = []Slot{SlotTop, SlotBottom, SlotShoe}

// slotAliases maps garment categories onto slots for ingestion.
var slotAliases = map[string]Slot{
	"top": SlotTop, "shirt": SlotTop, "t-shirt": SlotTop, "tshirt": SlotTop,
	"blouse": SlotTop, "sweater": SlotTop, "polo": SlotTop, "hoodie": SlotTop,
	"bottom": SlotBottom, "pants": SlotBottom, "jeans": SlotBottom, "trousers": SlotBottom,
	"skirt": SlotBottom, "shorts": SlotBottom, "chinos": SlotBottom,
	"outerwear": SlotOuterwear, "jacket": SlotOuterwear, "coat": SlotOuterwear, "blazer": SlotOuterwear,
	"shoe": SlotShoe, "shoes": SlotShoe, "sneakers": SlotShoe, "boots": SlotShoe, "sandals": SlotShoe,
	"accessory": SlotAccessory, "bag": SlotAccessory, "belt": SlotAccessory, "hat": SlotAccessory,
	"scarf": SlotAccessory, "watch": SlotAccessory,
}

// ParseSlot resolves a slot name or garment category.
func ParseSlot(s string) (Slot, bool) {
	slot, ok := slotAliases[strings.ToLower(strings.TrimSpace(s))]
	return slot, ok
}

// Valid reports whether s is one of the canonical slots.
func (s Slot) Valid() bool {
	return s.Rank() >= 0
}

// Rank returns the slot's position in SlotOrder, or -1.
func (s Slot) Rank() int {
	for i, slot := range SlotOrder {
		if slot == s {
			return i
		}
	}
	return -1
}

// SortSlots orders slots canonically in place.
func SortSlots(slots []Slot) {
	sort.SliceStable(slots, func(i, j int) bool { return slots[i].Rank() < slots[j].Rank() })
}

// Season is a calendar season.
type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
	SeasonWinter Season = "winter"
)

// AllSeasons lists every season in calendar order.
var AllSeasons = []Season{SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter}

// ParseSeasons resolves a season name. The "all-season" alias expands to
// every season.
func ParseSeasons(s string) ([]Season, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "spring":
		return []Season{SeasonSpring}, true
	case "summer":
		return []Season{SeasonSummer}, true
	case "autumn", "fall":
		return []Season{SeasonAutumn}, true
	case "winter":
		return []Season{SeasonWinter}, true
	case "all-season", "all_season", "all":
		return append([]Season(nil), AllSeasons...), true
	default:
		return nil, false
	}
}

// Valid reports whether s is a known season.
func (s Season) Valid() bool {
	switch s {
	case SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter:
		return true
	default:
		return false
	}
}

// SeasonAt returns the meteorological season for t.
func SeasonAt(t time.Time, southern bool) Season {
	var s Season
	switch t.Month() {
	case time.March, time.April, time.May:
		s = SeasonSpring
	case time.June, time.July, time.August:
		s = SeasonSummer
	case time.September, time.October, time.November:
		s = SeasonAutumn
	default:
		s = SeasonWinter
	}
	if !southern {
		return s
	}
	switch s {
	case SeasonSpring:
		return SeasonAutumn
	case SeasonSummer:
		return SeasonWinter
	case SeasonAutumn:
		return SeasonSpring
	default:
		return SeasonSummer
	}
}

// Formality is an ordinal dress level. Zero means unknown.
type Formality int

const (
	FormalityUnknown Formality = iota
	FormalityCasual
	FormalitySmartCasual
	FormalitySemiFormal
	FormalityBusiness
	FormalityFormal
)

const (
	// MinFormality is the lowest known formality level.
	MinFormality = FormalityCasual
	// MaxFormality is the highest known formality level.
	MaxFormality = FormalityFormal
)

var formalityNames = map[Formality]string{
	FormalityCasual:      "casual",
	FormalitySmartCasual: "smart-casual",
	FormalitySemiFormal:  "semi-formal",
	FormalityBusiness:    "business",
	FormalityFormal:      "formal",
}

// String returns the formality name.
func (f Formality) String() string {
	if name, ok := formalityNames[f]; ok {
		return name
	}
	return "unknown"
}

// Known reports whether f is a real level.
func (f Formality) Known() bool {
	return f >= MinFormality && f <= MaxFormality
}

// ParseFormality resolves a formality name or level digit.
func ParseFormality(s string) (Formality, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "unknown" || s == "0" {
		return FormalityUnknown, true
	}
	for f, name := range formalityNames {
		if name == s {
			return f, true
		}
	}
	switch s {
	case "smart_casual", "smartcasual":
		return FormalitySmartCasual, true
	case "semi_formal", "semiformal":
		return FormalitySemiFormal, true
	}
	if len(s) == 1 && s[0] >= '1' && s[0] <= '5' {
		return Formality(s[0] - '0'), true
	}
	return FormalityUnknown, false
}

// MarshalText encodes the formality by name.
func (f Formality) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText accepts a formality name or level digit.
func (f *Formality) UnmarshalText(text []byte) error {
	parsed, ok := ParseFormality(string(text))
	if !ok {
		return &ValueError{Field: "formality", Value: string(text)}
	}
	*f = parsed
	return nil
}

// Provenance distinguishes owned items from generated proposals.
type Provenance string

const (
	ProvenanceOwned     Provenance = "owned"
	ProvenanceGenerated Provenance = "generated"
)

// Popularity carries sales signals used to rank catalog items outside of
// outfit search.
type Popularity struct {
	// Score is a normalized popularity measure (0-1).
	Score float64 `json:"score"`

	// Rating is the average rating (0-5).
	Rating float64 `json:"rating"`

	// Purchases is the number of recorded purchases.
	Purchases int `json:"purchases"`
}

// WardrobeItem is a single garment or accessory.
//
// Items are immutable once ingested; the only mutation is deprecation.
type WardrobeItem struct {
	// ID is the unique item identifier.
	ID string `json:"id"`

	// Slot is the outfit role this item fills.
	Slot Slot `json:"slot"`

	// Colors are lower-case color categories. Items may carry several.
	Colors []string `json:"colors,omitempty"`

	// StyleTags describe the item's style (casual, sporty, vintage, ...).
	StyleTags []string `json:"style_tags,omitempty"`

	// Seasons the item is suitable for. Empty means unknown.
	Seasons []Season `json:"seasons,omitempty"`

	// Formality is the item's dress level.
	Formality Formality `json:"formality"`

	// Attributes holds free-form descriptors (pattern, material, fit).
	Attributes map[string]string `json:"attributes,omitempty"`

	// Popularity holds optional sales signals.
	Popularity *Popularity `json:"popularity,omitempty"`

	// Provenance is "owned" for catalog items and "generated" for proposals.
	Provenance Provenance `json:"provenance"`

	// Embedding is passed through from the generative collaborator.
	Embedding []float32 `json:"embedding,omitempty"`

	// Deprecated items are excluded from searches but kept for audit.
	Deprecated bool `json:"deprecated"`

	// DeprecatedAt is when the item was retired.
	DeprecatedAt *time.Time `json:"deprecated_at,omitempty"`

	// CreatedAt is when the item was ingested.
	CreatedAt time.Time `json:"created_at"`
}

// Generated reports whether the item came from the generative collaborator.
func (it *WardrobeItem) Generated() bool {
	return it.Provenance == ProvenanceGenerated
}

// SeasonFit reports whether the item carries season data and, if so,
// whether it includes s.
func (it *WardrobeItem) SeasonFit(s Season) (known, fits bool) {
	if len(it.Seasons) == 0 {
		return false, false
	}
	for _, season := range it.Seasons {
		if season == s {
			return true, true
		}
	}
	return true, false
}

// HasColor reports whether the item carries color c.
func (it *WardrobeItem) HasColor(c string) bool {
	for _, color := range it.Colors {
		if color == c {
			return true
		}
	}
	return false
}

// HasTag reports whether the item carries style tag t.
func (it *WardrobeItem) HasTag(t string) bool {
	for _, tag := range it.StyleTags {
		if tag == t {
			return true
		}
	}
	return false
}

// Occasion is the situational context of a request.
type Occasion string

const (
	OccasionCasual Occasion = "casual"
	OccasionWork   Occasion = "work"
	OccasionFormal Occasion = "formal"
	OccasionParty  Occasion = "party"
	OccasionSport  Occasion = "sport"
	OccasionDate   Occasion = "date"
	OccasionTravel Occasion = "travel"
)

// Occasions lists the supported occasions.
var Occasions = []Occasion{
	OccasionCasual, OccasionWork, OccasionFormal, OccasionParty,
	OccasionSport, OccasionDate, OccasionTravel,
}

// Valid reports whether o is a supported occasion. The empty occasion is
// allowed and means "no particular occasion".
func (o Occasion) Valid() bool {
	if o == "" {
		return true
	}
	for _, occ := range Occasions {
		if occ == o {
			return true
		}
	}
	return false
}

// Constraints are hard filters. Violating any of them rejects a candidate.
type Constraints struct {
	// ExcludeColors removes every item carrying one of these colors.
	ExcludeColors []string `json:"exclude_colors,omitempty"`

	// ExcludeItems removes specific items by ID.
	ExcludeItems []string `json:"exclude_items,omitempty"`

	// MinFormality is the lowest acceptable item formality (0 = unbounded).
	MinFormality Formality `json:"min_formality,omitempty"`

	// MaxFormality is the highest acceptable item formality (0 = unbounded).
	MaxFormality Formality `json:"max_formality,omitempty"`
}

// Check returns the first constraint the item violates.
func (c *Constraints) Check(it *WardrobeItem) (ViolationKind, bool) {
	for _, excluded := range c.ExcludeColors {
		if it.HasColor(excluded) {
			return ViolationExcludedColor, false
		}
	}
	for _, id := range c.ExcludeItems {
		if it.ID == id {
			return ViolationExcludedItem, false
		}
	}
	if it.Formality.Known() {
		if c.MinFormality.Known() && it.Formality < c.MinFormality {
			return ViolationFormalityWindow, false
		}
		if c.MaxFormality.Known() && it.Formality > c.MaxFormality {
			return ViolationFormalityWindow, false
		}
	}
	return "", true
}

// Preferences are soft signals that raise, but never force, a ranking.
type Preferences struct {
	// StyleTags are the style tags to favor.
	StyleTags []string `json:"style_tags,omitempty"`
}

// Request is a structured outfit request.
type Request struct {
	// Occasion is the situational context.
	Occasion Occasion `json:"occasion,omitempty"`

	// Season defaults to the current season when empty.
	Season Season `json:"season,omitempty"`

	// RequiredSlots defaults to top, bottom and shoe.
	RequiredSlots []Slot `json:"required_slots,omitempty"`

	// Constraints are hard filters.
	Constraints Constraints `json:"constraints"`

	// Preferences are soft signals.
	Preferences Preferences `json:"preferences"`
}

// ViolationKind names a hard-constraint violation.
type ViolationKind string

const (
	ViolationExcludedColor       ViolationKind = "excluded_color"
	ViolationExcludedItem        ViolationKind = "excluded_item"
	ViolationFormalityWindow     ViolationKind = "formality_window"
	ViolationFormalityDispersion ViolationKind = "formality_dispersion"
	ViolationColorClash          ViolationKind = "color_clash"
)

// Violations is a set of violation kinds, kept sorted and unique.
type Violations []ViolationKind

// Add inserts k if absent.
func (v Violations) Add(k ViolationKind) Violations {
	i := sort.Search(len(v), func(i int) bool { return v[i] >= k })
	if i < len(v) && v[i] == k {
		return v
	}
	v = append(v, "")
	copy(v[i+1:], v[i:])
	v[i] = k
	return v
}

// Has reports whether k is present.
func (v Violations) Has(k ViolationKind) bool {
	i := sort.Search(len(v), func(i int) bool { return v[i] >= k })
	return i < len(v) && v[i] == k
}

// Breakdown holds the compatibility sub-scores of an outfit.
type Breakdown struct {
	// ColorHarmony is the minimum pairwise color harmony.
	ColorHarmony float64 `json:"color_harmony"`

	// ColorHarmonyAvg is the mean pairwise color harmony.
	ColorHarmonyAvg float64 `json:"color_harmony_avg"`

	// StyleCohesion is the mean pairwise style-tag overlap.
	StyleCohesion float64 `json:"style_cohesion"`

	// SeasonMatch is the share of items suited to the request season.
	SeasonMatch float64 `json:"season_match"`

	// FormalityMatch scores the spread of item formality levels.
	FormalityMatch float64 `json:"formality_match"`

	// FormalityDispersion is max minus min of known formality levels.
	FormalityDispersion int `json:"formality_dispersion"`
}

// Assessment is the outcome of evaluating a full or partial outfit.
type Assessment struct {
	Breakdown     Breakdown
	Compatibility float64
	Violations    Violations
}

// Outfit is a ranked candidate: one item per required slot.
type Outfit struct {
	// Key identifies the outfit by its item set.
	Key string `json:"key"`

	// Items are ordered canonically by slot.
	Items []WardrobeItem `json:"items"`

	// Compatibility is the rule-based score (0-1).
	Compatibility float64 `json:"compatibility"`

	// Preference is the per-user learned score (0-1).
	Preference float64 `json:"preference"`

	// Score is the weighted composite used for ranking.
	Score float64 `json:"score"`

	// Scores holds each scorer's contribution before weighting.
	Scores map[string]float64 `json:"scores,omitempty"`

	// Breakdown holds the compatibility sub-scores.
	Breakdown Breakdown `json:"breakdown"`

	// Generated is true when any item is a generated proposal.
	Generated bool `json:"generated"`
}

// ItemIDs returns the outfit's item IDs in slot order.
func (o *Outfit) ItemIDs() []string {
	ids := make([]string, len(o.Items))
	for i := range o.Items {
		ids[i] = o.Items[i].ID
	}
	return ids
}

// OutfitKey builds the order-independent key of an item set.
func OutfitKey(itemIDs []string) string {
	ids := append([]string(nil), itemIDs...)
	sort.Strings(ids)
	return strings.Join(ids, OutfitKeySeparator)
}

// OutfitKeySeparator joins item IDs in an outfit key. Item IDs may not
// contain it.
const OutfitKeySeparator = "+"

// compositeKey length-prefixes each part, so distinct tuples never share a
// key whatever the parts contain.
func compositeKey(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(strconv.Itoa(len(p)))
		b.WriteByte(':')
		b.WriteString(p)
	}
	return b.String()
}

// Signal is the polarity of a feedback event.
type Signal int

const (
	SignalDislike Signal = -1
	SignalNeutral Signal = 0
	SignalLike    Signal = 1
)

// Valid reports whether s is -1, 0 or +1.
func (s Signal) Valid() bool {
	return s >= SignalDislike && s <= SignalLike
}

// FeedbackEvent is a user's reaction to a surfaced outfit.
type FeedbackEvent struct {
	// UserID is the user giving feedback.
	UserID string `json:"user_id"`

	// ItemIDs identify the outfit.
	ItemIDs []string `json:"item_ids"`

	// Signal is like (+1), dislike (-1) or neutral (0).
	Signal Signal `json:"signal"`

	// Timestamp is when the user reacted.
	Timestamp time.Time `json:"timestamp"`
}

// OutfitKey returns the key of the referenced outfit.
func (e *FeedbackEvent) OutfitKey() string {
	return OutfitKey(e.ItemIDs)
}

// Identity is the deduplication key of the event.
func (e *FeedbackEvent) Identity() string {
	return compositeKey(e.UserID, e.OutfitKey(), e.Timestamp.UTC().Format(time.RFC3339Nano))
}

// Response is the result of a recommendation request.
type Response struct {
	// Outfits are ranked best first.
	Outfits []Outfit `json:"outfits"`

	// Warnings flag degraded operation (e.g. generative service down).
	Warnings []string `json:"warnings,omitempty"`

	// Metadata describes how the response was produced.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata describes a recommendation run.
type ResponseMetadata struct {
	RequestID      string                `json:"request_id"`
	UserID         string                `json:"user_id"`
	Season         Season                `json:"season"`
	ColdStart      bool                  `json:"cold_start"`
	Evaluated      int                   `json:"evaluated"`
	Pruned         int                   `json:"pruned"`
	Rejected       map[ViolationKind]int `json:"rejected,omitempty"`
	Truncated      bool                  `json:"truncated"`
	GeneratedItems int                   `json:"generated_items"`
	CatalogVersion uint64                `json:"catalog_version"`
	LatencyMS      int64                 `json:"latency_ms"`
	Timestamp      time.Time             `json:"timestamp"`
}

// Warning flags carried in Response.Warnings.
const (
	WarningGenerativeUnavailable = "generative_service_unavailable"
	WarningSearchTruncated       = "search_truncated"
	WarningNoValidCombination    = "no_valid_combination"
)

// Scorer is one scoring variant. The combination search composes scorers
// by weight and never depends on a concrete variant.
type Scorer interface {
	// Name returns the scorer's identifier, used to look up its weight.
	Name() string

	// Score rates a complete outfit in [0, 1].
	Score(o *Outfit, sc *ScoringContext) float64

	// UpperBound returns a value no lower than Score for any completion
	// of the partial outfit.
	UpperBound(p *Partial, sc *ScoringContext) float64
}

// Evaluator applies the attribute rules.
type Evaluator interface {
	// Evaluate scores a complete outfit. The result does not depend on the
	// order of items.
	Evaluate(items []WardrobeItem, req *Request) Assessment

	// Bound returns upper bounds on every sub-score of any completion of
	// items to total slots, plus the violations that are already certain.
	Bound(items []WardrobeItem, total int, req *Request) Assessment
}

// ScoringContext is the per-request state shared by scorers.
type ScoringContext struct {
	Request *Request

	// Weights is the effective preference weight vector for this request.
	Weights map[string]float64

	names []string
}

// WeightNames returns the weight keys in sorted order.
func (sc *ScoringContext) WeightNames() []string {
	if sc.names == nil {
		sc.names = sortedKeys(sc.Weights)
	}
	return sc.names
}

// Partial is an outfit under construction.
type Partial struct {
	// Items chosen so far.
	Items []WardrobeItem

	// Total is the number of slots the outfit will have.
	Total int

	// Bound is the evaluator's upper-bound assessment.
	Bound Assessment
}

// Remaining is the number of slots left to fill.
func (p *Partial) Remaining() int {
	return p.Total - len(p.Items)
}

// TagUpperBound bounds the share of items carrying tag t in any completion.
func (p *Partial) TagUpperBound(t string) float64 {
	if p.Total == 0 {
		return 0
	}
	count := p.Remaining()
	for i := range p.Items {
		if p.Items[i].HasTag(t) {
			count++
		}
	}
	return float64(count) / float64(p.Total)
}

// CandidateProposer is the generative-suggestion collaborator.
type CandidateProposer interface {
	// ProposeCandidates returns ephemeral items for a single search.
	ProposeCandidates(ctx context.Context, req *Request) ([]WardrobeItem, error)
}

// Reranker reorders the ranked outfits of a response. Implementations
// must return a permutation of a prefix of outfits.
type Reranker interface {
	Name() string
	Rerank(ctx context.Context, outfits []Outfit, k int) []Outfit
}

// IntentParser is the request-interpretation collaborator.
type IntentParser interface {
	// ParseIntent turns free text into a structured request.
	ParseIntent(ctx context.Context, text string) (*Request, error)
}

// EventPublisher publishes domain events. Implementations must not block
// the caller for long.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// Event topics.
const (
	TopicFeedbackApplied     = "wardrobe.feedback.applied"
	TopicItemDeprecated      = "wardrobe.catalog.item_deprecated"
	TopicCatalogItemIngested = "wardrobe.catalog.item_ingested"
)

// FeedbackApplied is the payload of TopicFeedbackApplied.
type FeedbackApplied struct {
	UserID    string    `json:"user_id"`
	OutfitKey string    `json:"outfit_key"`
	Signal    Signal    `json:"signal"`
	Updates   int       `json:"updates"`
	Timestamp time.Time `json:"timestamp"`
}
