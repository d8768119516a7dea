package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	// ErrNotCached is returned when no snapshot exists for a service.
	ErrNotCached = errors.New("no cached roster")
	// ErrExpired is returned when the cached roster is past its TTL.
	ErrExpired = errors.New("cached roster expired")
	// ErrNoDirectory is returned by NewStore for an empty directory.
	ErrNoDirectory = errors.New("cache directory cannot be empty")
)

// Store owns the snapshot directory. It is safe for concurrent use.
type Store struct {
	dir string
	ttl time.Duration
	now func() time.Time

	mu sync.Mutex
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock replaces time.Now for expiry decisions.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore opens dir, creating it if needed, with snapshots living for
// ttlSeconds.
func NewStore(dir string, ttlSeconds int, opts ...StoreOption) (*Store, error) {
	if dir == "" {
		return nil, ErrNoDirectory
	}
	if err := ValidateTTL(ttlSeconds); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	s := &Store{dir: dir, ttl: time.Duration(ttlSeconds) * time.Second, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Dir returns the snapshot directory.
func (s *Store) Dir() string {
	return s.dir
}

// TTL returns the lifetime given to new snapshots.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// For returns the snapshots of the service at baseURL.
func (s *Store) For(baseURL string) *Snapshots {
	return &Snapshots{
		store:  s,
		source: normalizeBaseURL(baseURL),
		path:   filepath.Join(s.dir, KeyForBaseURL(baseURL)+snapshotFileExtension),
	}
}

// Prune removes expired snapshots of every service and reports how many were
// removed. Unreadable files are left alone.
func (s *Store) Prune() (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("reading cache directory: %w", err)
	}

	now := s.now()
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != snapshotFileExtension {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		snap, readErr := s.read(path)
		if readErr != nil || !snap.ExpiredAt(now) {
			continue
		}
		s.remove(path)
		removed++
	}
	return removed, nil
}

func (s *Store) read(path string) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotCached
		}
		return nil, fmt.Errorf("reading cached roster: %w", err)
	}

	var snap Snapshot
	if err = json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding cached roster: %w", err)
	}
	return &snap, nil
}

// tempFilePattern names in-progress writes. The leading dot and the missing
// .json extension keep them out of Prune.
const tempFilePattern = ".snapshot-*"

// write replaces path through a private temporary file so neither readers nor
// concurrent writers ever see a partial snapshot.
func (s *Store) write(path string, snap *Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding roster for cache: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("writing cached roster: %w", err)
	}
	_, writeErr := tmp.Write(data)
	if closeErr := tmp.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("writing cached roster: %w", writeErr)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replacing cached roster: %w", err)
	}
	return nil
}

func (s *Store) delete(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing cached roster: %w", err)
	}
	return nil
}

func (s *Store) remove(path string) {
	_ = s.delete(path)
}
