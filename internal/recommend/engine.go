// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/wardrobe/internal/metrics"
)

// Note: This package does not import the algorithms or catalog packages.
// Evaluators, scorers and the catalog are injected, which keeps the
// search independent of any concrete variant.

// Engine answers outfit requests and learns from feedback.
// It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	registry *Registry
	ledger   *Ledger
	feedback *FeedbackProcessor

	// Scoring components
	evaluator Evaluator
	scorers   []Scorer
	weights   map[string]float64
	algMu     sync.RWMutex

	// Collaborators; nil means not configured.
	proposer CandidateProposer
	intent   IntentParser
	reranker Reranker
	collabMu sync.RWMutex

	// Bounds concurrent searches.
	sem chan struct{}

	now func() time.Time

	// Metrics
	requestCount   atomic.Int64
	errorCount     atomic.Int64
	degradedCount  atomic.Int64
	truncatedCount atomic.Int64
}

// Metrics is a point-in-time summary of engine activity.
type Metrics struct {
	RequestCount   int64    `json:"request_count"`
	ErrorCount     int64    `json:"error_count"`
	DegradedCount  int64    `json:"degraded_count"`
	TruncatedCount int64    `json:"truncated_count"`
	LedgerSize     int      `json:"ledger_size"`
	Users          int      `json:"users"`
	Scorers        []string `json:"scorers"`
}

// NewEngine creates an engine over registry.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, registry *Registry, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if registry == nil {
		return nil, fmt.Errorf("registry is required")
	}

	ledger := NewLedger(cfg.Ledger)
	logger = logger.With().Str("component", "recommend").Logger()

	return &Engine{
		config:   cfg,
		logger:   logger,
		registry: registry,
		ledger:   ledger,
		feedback: NewFeedbackProcessor(cfg.Preference, registry.Profiles(), ledger, logger),
		weights:  cfg.Weights.ToMap(),
		sem:      make(chan struct{}, cfg.Limits.MaxConcurrentSearches),
		now:      time.Now,
	}, nil
}

// SetEvaluator sets the attribute rules used by every search.
func (e *Engine) SetEvaluator(ev Evaluator) {
	e.algMu.Lock()
	defer e.algMu.Unlock()
	e.evaluator = ev
}

// RegisterScorer adds a scorer weighted by the configured weight of its
// name. Scorers without a configured weight contribute nothing until
// RegisterScorerWithWeight is used.
func (e *Engine) RegisterScorer(s Scorer) {
	e.algMu.Lock()
	defer e.algMu.Unlock()

	e.scorers = append(e.scorers, s)
	e.logger.Info().
		Str("scorer", s.Name()).
		Float64("weight", e.weights[s.Name()]).
		Msg("registered scorer")
}

// RegisterScorerWithWeight adds a scorer with an explicit weight.
func (e *Engine) RegisterScorerWithWeight(s Scorer, weight float64) {
	e.algMu.Lock()
	e.weights[s.Name()] = weight
	e.algMu.Unlock()
	e.RegisterScorer(s)
}

// SetProposer sets the generative collaborator. Nil disables proposals.
func (e *Engine) SetProposer(p CandidateProposer) {
	e.collabMu.Lock()
	defer e.collabMu.Unlock()
	e.proposer = p
}

// SetIntentParser sets the free-text collaborator. Nil makes
// RecommendFromText fail with ErrIntentServiceUnavailable.
func (e *Engine) SetIntentParser(p IntentParser) {
	e.collabMu.Lock()
	defer e.collabMu.Unlock()
	e.intent = p
}

// SetReranker installs a post-search reranker. Nil removes it.
func (e *Engine) SetReranker(r Reranker) {
	e.collabMu.Lock()
	defer e.collabMu.Unlock()
	e.reranker = r
}

// SetPublisher sets the domain event publisher.
func (e *Engine) SetPublisher(p EventPublisher) {
	e.feedback.SetPublisher(p)
}

// SetClock replaces the time source. Used by tests.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
	e.ledger.SetClock(now)
}

// Ledger returns the surfaced-outfit ledger.
func (e *Engine) Ledger() *Ledger {
	return e.ledger
}

// Recommend returns the top-N outfits for userID.
//
// A topN of zero selects the configured default; larger values are clamped
// to the configured maximum. Failures of the generative collaborator are
// reported as a warning, never as an error.
func (e *Engine) Recommend(ctx context.Context, userID string, req *Request, topN int) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	resp, outcome, err := e.recommend(ctx, userID, req, topN, start)
	metrics.RecordRecommendation(outcome, time.Since(start))
	if err != nil && outcome == "error" {
		e.errorCount.Add(1)
	}
	return resp, err
}

func (e *Engine) recommend(ctx context.Context, userID string, in *Request, topN int, start time.Time) (*Response, string, error) {
	req, topN, err := e.prepareRequest(in, topN)
	if err != nil {
		return nil, "invalid_constraint", err
	}
	if err := e.registry.Inventory().Validate(req); err != nil {
		return nil, "invalid_constraint", err
	}

	requestID := RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	logger := e.createRequestLogger(requestID, userID, req)

	evaluator, scorers := e.components()
	if evaluator == nil || len(scorers) == 0 {
		return nil, "error", fmt.Errorf("engine has no evaluator or scorers registered")
	}

	if err := e.acquire(ctx); err != nil {
		return nil, "error", err
	}
	defer e.release()

	profile, err := e.registry.Profiles().Get(ctx, userID)
	if err != nil {
		return nil, "error", fmt.Errorf("get profile: %w", err)
	}
	coldStart := profile.ColdStart(e.config.Preference.ColdStartMinFeedback)
	sc := &ScoringContext{
		Request: req,
		Weights: profile.EffectiveWeights(&e.config.Preference, e.favoredTags(req)),
	}

	var warnings []string
	view := e.registry.Inventory().View()
	generated, err := e.propose(ctx, req)
	switch {
	case err != nil:
		e.degradedCount.Add(1)
		warnings = append(warnings, WarningGenerativeUnavailable)
		logger.Warn().Err(err).Msg("generative service unavailable, using catalog items only")
	case len(generated) > 0:
		view = view.WithGenerated(generated)
	}

	pools := make([]SlotPool, len(req.RequiredSlots))
	for i, slot := range req.RequiredSlots {
		pools[i] = SlotPool{Slot: slot, Items: view.ItemsForSlot(slot, req.Season, &req.Constraints)}
	}

	searchCtx, cancel := context.WithTimeout(ctx, e.config.Limits.SearchTimeout)
	defer cancel()

	result, err := NewSearch(evaluator, scorers, e.config.DisablePruning).Run(searchCtx, req, pools, sc, topN)
	if err != nil {
		var inv *InsufficientInventoryError
		if errors.As(err, &inv) {
			logger.Debug().Str("slot", string(inv.Slot)).Msg("insufficient inventory")
			return nil, "insufficient_inventory", err
		}
		return nil, "error", fmt.Errorf("search: %w", err)
	}
	e.recordSearch(&result.Stats)

	if result.Stats.Truncated {
		e.truncatedCount.Add(1)
		warnings = append(warnings, WarningSearchTruncated)
	}
	if len(result.Outfits) == 0 && len(result.Stats.Rejected) > 0 {
		warnings = append(warnings, WarningNoValidCombination)
	}

	e.collabMu.RLock()
	reranker := e.reranker
	e.collabMu.RUnlock()
	if reranker != nil && len(result.Outfits) > 1 {
		result.Outfits = reranker.Rerank(ctx, result.Outfits, len(result.Outfits))
	}

	e.ledger.Record(userID, result.Outfits)

	resp := e.buildResponse(requestID, userID, req, result, warnings, start)
	resp.Metadata.ColdStart = coldStart
	resp.Metadata.GeneratedItems = len(generated)
	resp.Metadata.CatalogVersion = view.Version()

	logger.Debug().
		Int("returned", len(resp.Outfits)).
		Int("evaluated", result.Stats.Evaluated).
		Int("pruned", result.Stats.Pruned).
		Bool("truncated", result.Stats.Truncated).
		Bool("cold_start", coldStart).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, "success", nil
}

// RecommendFromText parses free text with the intent collaborator and then
// recommends as Recommend does.
func (e *Engine) RecommendFromText(ctx context.Context, userID, text string, topN int) (*Response, error) {
	e.collabMu.RLock()
	parser := e.intent
	e.collabMu.RUnlock()

	if parser == nil {
		return nil, fmt.Errorf("%w: no intent parser configured", ErrIntentServiceUnavailable)
	}

	req, err := parser.ParseIntent(ctx, text)
	if err != nil {
		if errors.Is(err, ErrIntentServiceUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrIntentServiceUnavailable, err)
	}
	return e.Recommend(ctx, userID, req, topN)
}

// SubmitFeedback applies a feedback event to the user's profile.
//
//nolint:gocritic // event is small and read-only
func (e *Engine) SubmitFeedback(ctx context.Context, ev FeedbackEvent) (FeedbackOutcome, error) {
	return e.feedback.Ingest(ctx, ev)
}

// Profile returns a copy of the user's profile. Unknown users get the
// cold-start profile.
func (e *Engine) Profile(ctx context.Context, userID string) (*Profile, error) {
	return e.registry.Profiles().Get(ctx, userID)
}

// prepareRequest copies the request and applies defaults.
func (e *Engine) prepareRequest(in *Request, topN int) (*Request, int, error) {
	req := &Request{}
	if in != nil {
		*req = *in
		req.RequiredSlots = append([]Slot(nil), in.RequiredSlots...)
		req.Constraints.ExcludeColors = normalizeSet(in.Constraints.ExcludeColors, CanonicalColor)
		req.Constraints.ExcludeItems = append([]string(nil), in.Constraints.ExcludeItems...)
	}

	if !req.Occasion.Valid() {
		return nil, 0, invalidConstraint("unknown occasion %q", req.Occasion)
	}
	if req.Season == "" {
		req.Season = SeasonAt(e.now(), e.config.SouthernHemisphere)
	} else if !req.Season.Valid() {
		return nil, 0, invalidConstraint("unknown season %q", req.Season)
	}
	if len(req.RequiredSlots) == 0 {
		req.RequiredSlots = append([]Slot(nil), DefaultSlots...)
	}
	SortSlots(req.RequiredSlots)

	switch {
	case topN < 0:
		return nil, 0, invalidConstraint("top_n must be non-negative, got %d", topN)
	case topN == 0:
		topN = e.config.Limits.DefaultTopN
	case topN > e.config.Limits.MaxTopN:
		topN = e.config.Limits.MaxTopN
	}

	return req, topN, nil
}

// createRequestLogger creates a logger with request context.
func (e *Engine) createRequestLogger(requestID, userID string, req *Request) zerolog.Logger {
	return e.logger.With().
		Str("request_id", requestID).
		Str("user_id", userID).
		Str("occasion", string(req.Occasion)).
		Str("season", string(req.Season)).
		Logger()
}

// favoredTags merges the request's style preferences with the occasion's
// configured tags.
func (e *Engine) favoredTags(req *Request) []string {
	all := append(append([]string(nil), req.Preferences.StyleTags...), e.config.OccasionTags[req.Occasion]...)
	return normalizeSet(all, func(s string) string { return strings.ToLower(strings.TrimSpace(s)) })
}

// components returns the evaluator and the weighted scorers. Weights are
// normalized over the registered scorers.
func (e *Engine) components() (Evaluator, []WeightedScorer) {
	e.algMu.RLock()
	defer e.algMu.RUnlock()

	var sum float64
	for _, s := range e.scorers {
		sum += e.weights[s.Name()]
	}
	out := make([]WeightedScorer, 0, len(e.scorers))
	for _, s := range e.scorers {
		w := e.weights[s.Name()]
		if sum > 0 {
			w /= sum
		}
		out = append(out, WeightedScorer{Scorer: s, Weight: w})
	}
	return e.evaluator, out
}

// propose asks the generative collaborator for extra items, bounded by the
// proposal timeout.
func (e *Engine) propose(ctx context.Context, req *Request) ([]WardrobeItem, error) {
	e.collabMu.RLock()
	proposer := e.proposer
	e.collabMu.RUnlock()

	if proposer == nil {
		return nil, nil
	}

	pctx, cancel := context.WithTimeout(ctx, e.config.Limits.ProposalTimeout)
	defer cancel()

	items, err := proposer.ProposeCandidates(pctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerativeServiceUnavailable, err)
	}
	return items, nil
}

func (e *Engine) acquire(ctx context.Context) error {
	select {
	case e.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for search slot: %w", ctx.Err())
	}
}

func (e *Engine) release() {
	<-e.sem
}

func (e *Engine) recordSearch(stats *SearchStats) {
	rejected := make(map[string]int, len(stats.Rejected))
	for kind, n := range stats.Rejected {
		rejected[string(kind)] = n
	}
	metrics.RecordSearch(stats.Evaluated, stats.Pruned, rejected, stats.Truncated)
}

// buildResponse constructs the final response.
func (e *Engine) buildResponse(requestID, userID string, req *Request, result *SearchResult, warnings []string, start time.Time) *Response {
	outfits := result.Outfits
	if outfits == nil {
		outfits = []Outfit{}
	}
	return &Response{
		Outfits:  outfits,
		Warnings: warnings,
		Metadata: ResponseMetadata{
			RequestID: requestID,
			UserID:    userID,
			Season:    req.Season,
			Evaluated: result.Stats.Evaluated,
			Pruned:    result.Stats.Pruned,
			Rejected:  result.Stats.Rejected,
			Truncated: result.Stats.Truncated,
			LatencyMS: time.Since(start).Milliseconds(),
			Timestamp: e.now(),
		},
	}
}

// GetMetrics returns the current engine metrics.
func (e *Engine) GetMetrics() Metrics {
	e.algMu.RLock()
	names := make([]string, len(e.scorers))
	for i, s := range e.scorers {
		names[i] = s.Name()
	}
	e.algMu.RUnlock()

	return Metrics{
		RequestCount:   e.requestCount.Load(),
		ErrorCount:     e.errorCount.Load(),
		DegradedCount:  e.degradedCount.Load(),
		TruncatedCount: e.truncatedCount.Load(),
		LedgerSize:     e.ledger.Len(),
		Users:          e.registry.Profiles().Len(),
		Scorers:        names,
	}
}

// GetConfig returns a copy of the current configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}

type requestIDKey struct{}

// WithRequestID attaches a request ID that Recommend reports in metadata.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the ID set by WithRequestID.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
