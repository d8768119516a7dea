package engine

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/rshade/roster/internal/roster"
	"github.com/rshade/roster/internal/view"
)

// DefaultDeleteConcurrency bounds DeleteMany fan-out.
const DefaultDeleteConcurrency = 4

// SnapshotStore persists the last fetched roster. *cache.Snapshots satisfies it.
type SnapshotStore interface {
	Load() ([]roster.Record, time.Time, error)
	Save(records []roster.Record) error
	Drop() error
}

// FetchResult is the outcome of one Fetch, ready to be applied.
type FetchResult struct {
	// Seq increases with every Fetch started on the engine.
	Seq       uint64
	Records   []roster.Record
	Err       error
	FetchedAt time.Time
}

// Engine coordinates the view controller with its collaborators.
type Engine struct {
	backend           roster.Backend
	controller        *view.Controller
	store             SnapshotStore
	logger            zerolog.Logger
	deleteConcurrency int

	seq       atomic.Uint64
	lastSeq   uint64
	fetchedAt time.Time
	fromCache bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithController uses controller instead of a default one.
func WithController(controller *view.Controller) Option {
	return func(e *Engine) {
		if controller != nil {
			e.controller = controller
		}
	}
}

// WithSnapshotStore enables the warm-start cache.
func WithSnapshotStore(store SnapshotStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLogger sets the engine logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithDeleteConcurrency bounds how many deletes DeleteMany runs at once.
// Values below 1 are ignored.
func WithDeleteConcurrency(n int) Option {
	return func(e *Engine) {
		if n >= 1 {
			e.deleteConcurrency = n
		}
	}
}

// New returns an engine over backend.
func New(backend roster.Backend, opts ...Option) *Engine {
	e := &Engine{
		backend:           backend,
		logger:            zerolog.Nop(),
		deleteConcurrency: DefaultDeleteConcurrency,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.controller == nil {
		e.controller = view.NewController(view.WithLogger(e.logger))
	}
	return e
}

// Controller returns the view controller for sort, filter and paging input.
func (e *Engine) Controller() *view.Controller {
	return e.controller
}

// Snapshot returns the current view.
func (e *Engine) Snapshot() view.Snapshot {
	return e.controller.Snapshot()
}

// FetchedAt returns when the displayed roster was fetched, and whether it
// came from the cache rather than the service.
func (e *Engine) FetchedAt() (time.Time, bool) {
	return e.fetchedAt, e.fromCache
}

// Fetch loads the roster from the data source. It does not touch view state.
func (e *Engine) Fetch(ctx context.Context) FetchResult {
	seq := e.seq.Add(1)
	records, err := e.backend.FetchAll(ctx)
	return FetchResult{
		Seq:       seq,
		Records:   records,
		Err:       err,
		FetchedAt: time.Now(),
	}
}

// Apply folds a fetch result into the view.
//
// On success the source is replaced and the cache updated. On
// roster.ErrNotAuthorized the view is reset, the cache entry dropped and the
// error returned so the caller can ask for new credentials. Any other failure
// leaves the snapshot as it was and returns an error wrapping
// roster.ErrTransientFetch.
func (e *Engine) Apply(res FetchResult) error {
	log := e.logger.With().
		Str("component", "engine").
		Str("operation", "apply").
		Uint64("seq", res.Seq).
		Logger()

	if res.Seq < e.lastSeq {
		log.Debug().Uint64("last_seq", e.lastSeq).Msg("applying fetch that started before the current one")
	}
	e.lastSeq = res.Seq

	switch {
	case res.Err == nil:
		e.controller.SetSource(res.Records)
		e.fetchedAt = res.FetchedAt
		e.fromCache = false
		e.saveSnapshot(res.Records)
		log.Debug().Int("records", len(res.Records)).Msg("roster refreshed")
		return nil

	case errors.Is(res.Err, roster.ErrNotAuthorized):
		log.Warn().Err(res.Err).Msg("employee service rejected credentials")
		e.clearForAuth()
		return res.Err

	default:
		log.Warn().Err(res.Err).Msg("roster fetch failed; keeping last snapshot")
		if errors.Is(res.Err, roster.ErrTransientFetch) {
			return res.Err
		}
		return fmt.Errorf("%w: %w", roster.ErrTransientFetch, res.Err)
	}
}

// Refresh fetches and applies in one step.
func (e *Engine) Refresh(ctx context.Context) error {
	return e.Apply(e.Fetch(ctx))
}

// Warm seeds the view from the snapshot cache. It reports whether a cached
// roster was applied; a missing or expired entry is not an error worth
// surfacing to users, so callers usually log and continue.
func (e *Engine) Warm() (bool, error) {
	if e.store == nil {
		return false, nil
	}
	records, fetchedAt, err := e.store.Load()
	if err != nil {
		return false, err
	}
	e.controller.SetSource(records)
	e.fetchedAt = fetchedAt
	e.fromCache = true
	e.logger.Debug().
		Str("component", "engine").
		Str("operation", "warm").
		Int("records", len(records)).
		Time("fetched_at", fetchedAt).
		Msg("roster loaded from cache")
	return true, nil
}

// Lookup returns the record with id from the current source.
func (e *Engine) Lookup(id int) (roster.Record, error) {
	for _, r := range e.controller.Source() {
		if r.ID == id {
			return r, nil
		}
	}
	return roster.Record{}, fmt.Errorf("%w: id %d", roster.ErrRecordNotFound, id)
}

// clearForAuth empties the view and forgets the cached roster so nothing
// fetched under rejected credentials stays visible.
func (e *Engine) clearForAuth() {
	e.controller.Reset()
	e.fetchedAt = time.Time{}
	e.fromCache = false
	e.dropSnapshot()
}

func (e *Engine) saveSnapshot(records []roster.Record) {
	if e.store == nil {
		return
	}
	if err := e.store.Save(records); err != nil {
		e.logger.Debug().Err(err).Str("component", "engine").Msg("caching roster failed")
	}
}

func (e *Engine) dropSnapshot() {
	if e.store == nil {
		return
	}
	if err := e.store.Drop(); err != nil {
		e.logger.Debug().Err(err).Str("component", "engine").Msg("dropping cached roster failed")
	}
}
