// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/wardrobe/internal/logging"
)

// BadgerConfig configures the BadgerDB backend.
type BadgerConfig struct {
	// Path is the database directory.
	Path string `koanf:"path"`

	// SyncWrites fsyncs every write.
	SyncWrites bool `koanf:"sync_writes"`

	// InMemory keeps the database in RAM. Path is ignored.
	InMemory bool `koanf:"in_memory"`

	// GCRatio is the value log GC discard ratio.
	// Default: 0.5.
	GCRatio float64 `koanf:"gc_ratio"`
}

// BadgerKV implements KV using BadgerDB for durable storage.
type BadgerKV struct {
	db       *badger.DB
	gcRatio  float64
	inMemory bool
}

// OpenBadger opens (or creates) a BadgerDB at the configured path.
//
//nolint:gocritic // config is copied once at open
func OpenBadger(cfg BadgerConfig) (*BadgerKV, error) {
	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.SyncWrites = cfg.SyncWrites

	// Reduce logging verbosity
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	if cfg.GCRatio <= 0 || cfg.GCRatio >= 1 {
		cfg.GCRatio = 0.5
	}

	logging.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Bool("sync_writes", cfg.SyncWrites).
		Msg("storage opened")

	return &BadgerKV{db: db, gcRatio: cfg.GCRatio, inMemory: cfg.InMemory}, nil
}

// Get retrieves the value for key.
func (b *BadgerKV) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get %s: %w", key, err)
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Put stores a single value.
func (b *BadgerKV) Put(ctx context.Context, key string, value []byte) error {
	return b.PutBatch(ctx, []Entry{{Key: key, Value: value}})
}

// PutBatch stores all entries in one transaction.
func (b *BadgerKV) PutBatch(ctx context.Context, entries []Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.db.Update(func(txn *badger.Txn) error {
		for _, e := range entries {
			if err := txn.Set([]byte(e.Key), e.Value); err != nil {
				return fmt.Errorf("set %s: %w", e.Key, err)
			}
		}
		return nil
	})
}

// List iterates every key under prefix.
func (b *BadgerKV) List(ctx context.Context, prefix string) ([]Entry, error) {
	var out []Entry
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			value, err := item.ValueCopy(nil)
			if err != nil {
				return fmt.Errorf("read %s: %w", item.Key(), err)
			}
			out = append(out, Entry{Key: string(item.KeyCopy(nil)), Value: value})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", prefix, err)
	}
	return out, nil
}

// RunGC runs value log garbage collection until nothing is left to rewrite.
func (b *BadgerKV) RunGC() error {
	if b.inMemory {
		return nil
	}
	for {
		err := b.db.RunValueLogGC(b.gcRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run GC: %w", err)
		}
	}
}

// Close closes the database.
func (b *BadgerKV) Close() error {
	return b.db.Close()
}
