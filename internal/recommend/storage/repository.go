// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/wardrobe/internal/recommend"
)

// Key prefixes for the KV store.
const (
	itemKeyPrefix    = "item:"
	profileKeyPrefix = "profile:"
	auditKeyPrefix   = "audit:"
)

// ErrCorruptRecord is returned when a stored value cannot be decoded.
var ErrCorruptRecord = errors.New("corrupt record")

// AuditRecord is one entry of the domain event audit trail.
type AuditRecord struct {
	ID         string          `json:"id"`
	Topic      string          `json:"topic"`
	Payload    json.RawMessage `json:"payload"`
	RecordedAt time.Time       `json:"recorded_at"`
}

// Repository maps domain records onto a KV store.
type Repository struct {
	kv  KV
	now func() time.Time
}

// NewRepository creates a repository over kv.
func NewRepository(kv KV) *Repository {
	return &Repository{kv: kv, now: time.Now}
}

// KV returns the underlying store.
func (r *Repository) KV() KV {
	return r.kv
}

// LoadItems returns every stored catalog item, deprecated ones included.
// A record that does not decode fails the whole load.
func (r *Repository) LoadItems(ctx context.Context) ([]recommend.WardrobeItem, error) {
	entries, err := r.kv.List(ctx, itemKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	items := make([]recommend.WardrobeItem, 0, len(entries))
	for _, e := range entries {
		var it recommend.WardrobeItem
		if err := json.Unmarshal(e.Value, &it); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrCorruptRecord, e.Key, err)
		}
		if it.ID != strings.TrimPrefix(e.Key, itemKeyPrefix) {
			return nil, fmt.Errorf("%w: %s holds item %q", ErrCorruptRecord, e.Key, it.ID)
		}
		items = append(items, it)
	}
	return items, nil
}

// SaveItems writes items in one batch.
func (r *Repository) SaveItems(ctx context.Context, items []recommend.WardrobeItem) error {
	entries := make([]Entry, 0, len(items))
	for i := range items {
		data, err := json.Marshal(&items[i])
		if err != nil {
			return fmt.Errorf("marshal item %s: %w", items[i].ID, err)
		}
		entries = append(entries, Entry{Key: itemKeyPrefix + items[i].ID, Value: data})
	}
	if err := r.kv.PutBatch(ctx, entries); err != nil {
		return fmt.Errorf("save items: %w", err)
	}
	return nil
}

// LoadProfile returns recommend.ErrProfileNotFound for unknown users.
func (r *Repository) LoadProfile(ctx context.Context, userID string) (*recommend.Profile, error) {
	data, err := r.kv.Get(ctx, profileKeyPrefix+userID)
	if errors.Is(err, ErrNotFound) {
		return nil, recommend.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	var p recommend.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: profile %s: %w", ErrCorruptRecord, userID, err)
	}
	return &p, nil
}

// SaveProfile replaces the stored profile.
func (r *Repository) SaveProfile(ctx context.Context, p *recommend.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	if err := r.kv.Put(ctx, profileKeyPrefix+p.UserID, data); err != nil {
		return fmt.Errorf("put profile: %w", err)
	}
	return nil
}

// AppendAudit stores an audit record under a time-ordered key.
func (r *Repository) AppendAudit(ctx context.Context, topic string, payload []byte) (*AuditRecord, error) {
	rec := &AuditRecord{
		ID:         uuid.NewString(),
		Topic:      topic,
		Payload:    json.RawMessage(payload),
		RecordedAt: r.now().UTC(),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal audit record: %w", err)
	}
	if err := r.kv.Put(ctx, auditKey(rec.RecordedAt, rec.ID), data); err != nil {
		return nil, fmt.Errorf("put audit record: %w", err)
	}
	return rec, nil
}

// ListAudit returns audit records oldest first, at most limit (0 = all).
func (r *Repository) ListAudit(ctx context.Context, limit int) ([]AuditRecord, error) {
	entries, err := r.kv.List(ctx, auditKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list audit: %w", err)
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}

	out := make([]AuditRecord, 0, len(entries))
	for _, e := range entries {
		var rec AuditRecord
		if err := json.Unmarshal(e.Value, &rec); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrCorruptRecord, e.Key, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// auditKey zero-pads the timestamp so keys sort chronologically.
func auditKey(t time.Time, id string) string {
	ns := strconv.FormatInt(t.UnixNano(), 10)
	if pad := 20 - len(ns); pad > 0 {
		ns = strings.Repeat("0", pad) + ns
	}
	return auditKeyPrefix + ns + ":" + id
}

var _ recommend.ProfileRepository = (*Repository)(nil)
