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
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/tomtom215/wardrobe/internal/metrics"
)

// FeedbackOutcome describes what Ingest did with an event.
type FeedbackOutcome string

const (
	// OutcomeApplied means the profile was updated.
	OutcomeApplied FeedbackOutcome = "applied"

	// OutcomeDuplicate means the event was already applied and was dropped.
	OutcomeDuplicate FeedbackOutcome = "duplicate"
)

// FeedbackProcessor folds user reactions into preference profiles.
type FeedbackProcessor struct {
	cfg       PreferenceConfig
	profiles  *ProfileStore
	ledger    *Ledger
	publisher atomic.Pointer[publisherHolder]
	logger    zerolog.Logger
}

type publisherHolder struct {
	p EventPublisher
}

// NewFeedbackProcessor creates a processor that applies feedback to
// profiles in store, for outfits recorded in ledger.
//
//nolint:gocritic // config is copied once at construction; zerolog by value
func NewFeedbackProcessor(cfg PreferenceConfig, profiles *ProfileStore, ledger *Ledger, logger zerolog.Logger) *FeedbackProcessor {
	return &FeedbackProcessor{
		cfg:      cfg,
		profiles: profiles,
		ledger:   ledger,
		logger:   logger.With().Str("component", "feedback").Logger(),
	}
}

// SetPublisher sets where feedback.applied events go. Nil disables them.
func (f *FeedbackProcessor) SetPublisher(p EventPublisher) {
	if p == nil {
		f.publisher.Store(nil)
		return
	}
	f.publisher.Store(&publisherHolder{p: p})
}

// ValidateFeedback checks the shape of an event.
//
//nolint:gocritic // event is small and read-only
func ValidateFeedback(ev FeedbackEvent) error {
	if strings.TrimSpace(ev.UserID) == "" {
		return fmt.Errorf("%w: user_id is required", ErrInvalidFeedback)
	}
	if len(ev.ItemIDs) == 0 {
		return fmt.Errorf("%w: item_ids is required", ErrInvalidFeedback)
	}
	seen := make(map[string]struct{}, len(ev.ItemIDs))
	for _, id := range ev.ItemIDs {
		if id == "" {
			return fmt.Errorf("%w: empty item id", ErrInvalidFeedback)
		}
		if strings.Contains(id, OutfitKeySeparator) {
			return fmt.Errorf("%w: item id %q contains %q", ErrInvalidFeedback, id, OutfitKeySeparator)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate item id %q", ErrInvalidFeedback, id)
		}
		seen[id] = struct{}{}
	}
	if !ev.Signal.Valid() {
		return fmt.Errorf("%w: signal must be -1, 0 or 1, got %d", ErrInvalidFeedback, ev.Signal)
	}
	if ev.Timestamp.IsZero() {
		return fmt.Errorf("%w: timestamp is required", ErrInvalidFeedback)
	}
	return nil
}

// Ingest applies one feedback event.
//
// Replaying an event that was already applied is a silent no-op. Once the
// per-profile history is full, events stamped at or before the newest
// evicted entry are dropped the same way. Feedback
// on an outfit that was never surfaced to the user, or whose ledger entry
// expired, fails with ErrUnknownCandidateReference.
//
//nolint:gocritic // event is small and read-only
func (f *FeedbackProcessor) Ingest(ctx context.Context, ev FeedbackEvent) (FeedbackOutcome, error) {
	if err := ValidateFeedback(ev); err != nil {
		metrics.RecordFeedback("invalid")
		return "", err
	}

	identity := ev.Identity()
	key := ev.OutfitKey()
	outcome := OutcomeApplied

	p, err := f.profiles.Update(ctx, ev.UserID, func(p *Profile) (bool, error) {
		if p.Seen(identity, ev.Timestamp) {
			outcome = OutcomeDuplicate
			return false, nil
		}
		surfaced, ok := f.ledger.Lookup(ev.UserID, key)
		if !ok {
			return false, fmt.Errorf("%w: outfit %s for user %s", ErrUnknownCandidateReference, key, ev.UserID)
		}
		p.Weights = ApplyFeedback(p.Weights, surfaced.Features, ev.Signal, &f.cfg)
		p.Updates++
		p.markApplied(identity, ev.Timestamp, f.cfg.AppliedEventsLimit)
		return true, nil
	})

	switch {
	case errors.Is(err, ErrUnknownCandidateReference):
		metrics.RecordFeedback("unknown_candidate")
		f.logger.Warn().
			Str("user_id", ev.UserID).
			Str("outfit", key).
			Msg("feedback references an outfit that was not surfaced")
		return "", err
	case err != nil:
		metrics.RecordFeedback("error")
		return "", fmt.Errorf("apply feedback: %w", err)
	}

	metrics.RecordFeedback(string(outcome))
	if outcome == OutcomeDuplicate {
		f.logger.Debug().
			Str("user_id", ev.UserID).
			Str("outfit", key).
			Msg("duplicate feedback dropped")
		return outcome, nil
	}

	f.logger.Debug().
		Str("user_id", ev.UserID).
		Str("outfit", key).
		Int("signal", int(ev.Signal)).
		Int("updates", p.Updates).
		Msg("feedback applied")

	f.publish(ctx, &FeedbackApplied{
		UserID:    ev.UserID,
		OutfitKey: key,
		Signal:    ev.Signal,
		Updates:   p.Updates,
		Timestamp: ev.Timestamp,
	})
	return outcome, nil
}

func (f *FeedbackProcessor) publish(ctx context.Context, payload *FeedbackApplied) {
	h := f.publisher.Load()
	if h == nil {
		return
	}
	if err := h.p.Publish(ctx, TopicFeedbackApplied, payload); err != nil {
		f.logger.Warn().Err(err).Str("topic", TopicFeedbackApplied).Msg("failed to publish event")
	}
}
