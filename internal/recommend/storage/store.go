// ReelMatch - Content-Based Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package storage persists fitted feature model snapshots.
//
// Snapshots are gob-encoded, gzip-compressed, and stored in BadgerDB keyed
// by snapshot name. A SHA-256 checksum over the raw gob bytes is verified on
// every load, so a corrupted blob fails loudly instead of restoring a broken
// model.
package storage

import (
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/recommend/features"
)

// ErrSnapshotNotFound is returned by Load when no snapshot exists under the
// requested name.
var ErrSnapshotNotFound = errors.New("snapshot not found")

const snapshotKeyPrefix = "snapshot:"

// SnapshotMetadata describes a stored snapshot blob.
type SnapshotMetadata struct {
	Name        string    `json:"name"`
	Fingerprint string    `json:"fingerprint"`
	SavedAt     time.Time `json:"saved_at"`
	Checksum    string    `json:"checksum"`
	SizeBytes   int64     `json:"size_bytes"`
}

// storedSnapshot is the on-disk record: metadata plus the compressed payload,
// wrapped in a single gob value.
type storedSnapshot struct {
	Metadata       SnapshotMetadata
	CompressedData []byte
}

// BadgerStore persists model snapshots in a BadgerDB database. Safe for
// concurrent use; Badger provides transaction isolation.
type BadgerStore struct {
	db     *badger.DB
	logger zerolog.Logger
}

// Open creates or opens a snapshot store at dir.
func Open(dir string, logger zerolog.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}
	return &BadgerStore{
		db:     db,
		logger: logger.With().Str("component", "storage").Logger(),
	}, nil
}

// NewBadgerStore wraps an already-open BadgerDB database. Used by tests that
// run against an in-memory database.
func NewBadgerStore(db *badger.DB, logger zerolog.Logger) *BadgerStore {
	return &BadgerStore{
		db:     db,
		logger: logger.With().Str("component", "storage").Logger(),
	}
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// Save stores a snapshot under name, replacing any previous snapshot with
// the same name.
func (s *BadgerStore) Save(name string, snap *features.Snapshot) error {
	var raw bytes.Buffer
	if err := gob.NewEncoder(&raw).Encode(snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	hash := sha256.Sum256(raw.Bytes())

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(raw.Bytes()); err != nil {
		return fmt.Errorf("compress snapshot: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return fmt.Errorf("finalize compression: %w", err)
	}

	record := storedSnapshot{
		Metadata: SnapshotMetadata{
			Name:        name,
			Fingerprint: snap.Fingerprint,
			SavedAt:     time.Now().UTC(),
			Checksum:    hex.EncodeToString(hash[:]),
			SizeBytes:   int64(compressed.Len()),
		},
		CompressedData: compressed.Bytes(),
	}

	var blob bytes.Buffer
	if err := gob.NewEncoder(&blob).Encode(record); err != nil {
		return fmt.Errorf("encode snapshot record: %w", err)
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(snapshotKeyPrefix+name), blob.Bytes())
	})
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	s.logger.Info().
		Str("name", name).
		Str("fingerprint", record.Metadata.Fingerprint).
		Int64("size_bytes", record.Metadata.SizeBytes).
		Msg("saved model snapshot")

	return nil
}

// Load retrieves the snapshot stored under name, verifying its checksum.
// Returns ErrSnapshotNotFound when no snapshot exists.
func (s *BadgerStore) Load(name string) (*features.Snapshot, *SnapshotMetadata, error) {
	var record storedSnapshot

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(snapshotKeyPrefix + name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrSnapshotNotFound
		}
		if err != nil {
			return fmt.Errorf("get snapshot: %w", err)
		}
		return item.Value(func(val []byte) error {
			return gob.NewDecoder(bytes.NewReader(val)).Decode(&record)
		})
	})
	if err != nil {
		return nil, nil, err
	}

	gzr, err := gzip.NewReader(bytes.NewReader(record.CompressedData))
	if err != nil {
		return nil, nil, fmt.Errorf("decompress snapshot: %w", err)
	}
	raw, err := io.ReadAll(gzr)
	if cerr := gzr.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read snapshot: %w", err)
	}

	hash := sha256.Sum256(raw)
	if checksum := hex.EncodeToString(hash[:]); checksum != record.Metadata.Checksum {
		return nil, nil, fmt.Errorf("snapshot %q checksum mismatch: expected %s, got %s",
			name, record.Metadata.Checksum, checksum)
	}

	var snap features.Snapshot
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&snap); err != nil {
		return nil, nil, fmt.Errorf("decode snapshot: %w", err)
	}

	return &snap, &record.Metadata, nil
}

// Delete removes the snapshot stored under name. Deleting a missing snapshot
// is not an error.
func (s *BadgerStore) Delete(name string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(snapshotKeyPrefix + name))
	})
	if err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}
