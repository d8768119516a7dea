package cache

import (
	"time"

	"github.com/rshade/roster/internal/roster"
)

// Snapshot is the on-disk form of one cached roster.
type Snapshot struct {
	// Source is the normalized base URL the roster was fetched from.
	Source    string          `json:"source"`
	Records   []roster.Record `json:"records"`
	FetchedAt time.Time       `json:"fetched_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// ExpiredAt reports whether the snapshot is stale at now.
func (s *Snapshot) ExpiredAt(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Snapshots reads and writes the cached roster of one employee service.
type Snapshots struct {
	store  *Store
	source string
	path   string
}

// Load returns the cached records and when they were fetched. It returns
// ErrNotCached when nothing is stored and ErrExpired, after removing the
// file, when the snapshot is stale.
func (s *Snapshots) Load() ([]roster.Record, time.Time, error) {
	snap, err := s.store.read(s.path)
	if err != nil {
		return nil, time.Time{}, err
	}
	if snap.ExpiredAt(s.store.now()) {
		s.store.remove(s.path)
		return nil, time.Time{}, ErrExpired
	}
	if snap.Records == nil {
		snap.Records = []roster.Record{}
	}
	return snap.Records, snap.FetchedAt, nil
}

// Save replaces the cached roster with records.
func (s *Snapshots) Save(records []roster.Record) error {
	if records == nil {
		records = []roster.Record{}
	}
	now := s.store.now()
	return s.store.write(s.path, &Snapshot{
		Source:    s.source,
		Records:   records,
		FetchedAt: now,
		ExpiresAt: now.Add(s.store.ttl),
	})
}

// Drop removes the cached roster. Dropping a missing snapshot is not an error.
func (s *Snapshots) Drop() error {
	return s.store.delete(s.path)
}
