package engine

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/roster/internal/roster"
)

// ErrMutationFailed is returned when the refresh after an accepted mutation fails.
var ErrMutationFailed = errors.New("refresh after change failed")

// Mutation operations.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// MutationResult is a change sent to the service but not yet reflected in
// the view. Pass it to Settle on the goroutine that owns the engine.
type MutationResult struct {
	Operation string
	ID        int
	Accepted  bool
	Err       error
}

// SendCreate validates record and sends it to the service. Like Fetch it
// touches no view state.
func (e *Engine) SendCreate(ctx context.Context, record roster.Record) MutationResult {
	record.Normalize()
	record.ID = 0
	if err := record.Validate(); err != nil {
		return MutationResult{Operation: OpCreate, Err: err}
	}
	ok, err := e.backend.Create(ctx, record)
	return MutationResult{Operation: OpCreate, Accepted: ok && err == nil, Err: err}
}

// SendUpdate validates record and sends it to the service.
func (e *Engine) SendUpdate(ctx context.Context, record roster.Record) MutationResult {
	record.Normalize()
	res := MutationResult{Operation: OpUpdate, ID: record.ID}
	if record.ID <= 0 {
		res.Err = fmt.Errorf("%w: record id must be positive, got %d", roster.ErrInvalidInput, record.ID)
		return res
	}
	if err := record.Validate(); err != nil {
		res.Err = err
		return res
	}
	ok, err := e.backend.Update(ctx, record)
	res.Accepted, res.Err = ok && err == nil, err
	return res
}

// SendDelete asks the service to delete id.
func (e *Engine) SendDelete(ctx context.Context, id int) MutationResult {
	res := MutationResult{Operation: OpDelete, ID: id}
	if id <= 0 {
		res.Err = fmt.Errorf("%w: record id must be positive, got %d", roster.ErrInvalidInput, id)
		return res
	}
	ok, err := e.backend.Delete(ctx, id)
	res.Accepted, res.Err = ok && err == nil, err
	return res
}

// Settle records the outcome of a mutation. It returns res.Err, after
// clearing the view when the service rejected the credentials. The caller
// refreshes when res.Accepted is true.
func (e *Engine) Settle(res MutationResult) error {
	log := e.logger.With().
		Str("component", "engine").
		Str("operation", res.Operation).
		Int("id", res.ID).
		Logger()

	switch {
	case res.Err == nil && res.Accepted:
		log.Debug().Msg("change accepted")
	case res.Err == nil:
		log.Info().Msg("change declined by employee service")
	case errors.Is(res.Err, roster.ErrNotAuthorized):
		log.Warn().Err(res.Err).Msg("employee service rejected credentials")
		e.clearForAuth()
	case errors.Is(res.Err, roster.ErrInvalidRecord), errors.Is(res.Err, roster.ErrInvalidInput):
		log.Debug().Err(res.Err).Msg("change rejected before sending")
	default:
		log.Warn().Err(res.Err).Msg("change failed")
	}
	return res.Err
}

// Create validates record and adds it. On acceptance the roster is refreshed.
// The boolean reports whether the service accepted the record; when it is
// true a non-nil error means only the follow-up refresh failed.
func (e *Engine) Create(ctx context.Context, record roster.Record) (bool, error) {
	return e.finish(ctx, e.SendCreate(ctx, record))
}

// Update validates record and replaces the stored one with the same ID.
// Use Lookup afterwards to show the freshly saved record.
func (e *Engine) Update(ctx context.Context, record roster.Record) (bool, error) {
	return e.finish(ctx, e.SendUpdate(ctx, record))
}

// Delete removes the record with id and refreshes on success.
func (e *Engine) Delete(ctx context.Context, id int) (bool, error) {
	return e.finish(ctx, e.SendDelete(ctx, id))
}

func (e *Engine) finish(ctx context.Context, res MutationResult) (bool, error) {
	if err := e.Settle(res); err != nil {
		return false, err
	}
	if !res.Accepted {
		return false, nil
	}
	if err := e.Refresh(ctx); err != nil {
		if errors.Is(err, roster.ErrNotAuthorized) {
			return true, err
		}
		return true, fmt.Errorf("%w: %w", ErrMutationFailed, err)
	}
	return true, nil
}

// DeleteOutcome is the result of deleting one record in DeleteMany.
type DeleteOutcome struct {
	ID      int
	Deleted bool
	Err     error
}

// DeleteMany deletes ids concurrently, at most WithDeleteConcurrency at a
// time, then refreshes once if any delete was accepted. Duplicate ids are
// deleted once. Outcomes are returned in ascending id order. The returned
// error is roster.ErrNotAuthorized when any delete was rejected for
// credentials, or the refresh error.
func (e *Engine) DeleteMany(ctx context.Context, ids []int) ([]DeleteOutcome, error) {
	unique := slices.Clone(ids)
	slices.Sort(unique)
	unique = slices.Compact(unique)

	for _, id := range unique {
		if id <= 0 {
			return nil, fmt.Errorf("%w: record id must be positive, got %d", roster.ErrInvalidInput, id)
		}
	}

	outcomes := make([]DeleteOutcome, len(unique))
	var mu sync.Mutex

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.deleteConcurrency)

	for i, id := range unique {
		g.Go(func() error {
			res := e.SendDelete(gCtx, id)
			mu.Lock()
			outcomes[i] = DeleteOutcome{ID: id, Deleted: res.Accepted, Err: res.Err}
			mu.Unlock()
			// One failed delete must not cancel the others.
			return nil
		})
	}
	_ = g.Wait()

	log := e.logger.With().
		Str("component", "engine").
		Str("operation", "delete_many").
		Logger()

	var deleted int
	var authErr error
	for _, o := range outcomes {
		switch {
		case o.Deleted:
			deleted++
		case errors.Is(o.Err, roster.ErrNotAuthorized):
			authErr = o.Err
		case o.Err != nil:
			log.Warn().Err(o.Err).Int("id", o.ID).Msg("delete failed")
		default:
			log.Info().Int("id", o.ID).Msg("delete declined by employee service")
		}
	}
	log.Debug().Int("requested", len(unique)).Int("deleted", deleted).Msg("bulk delete finished")

	if authErr != nil {
		e.clearForAuth()
		return outcomes, authErr
	}
	if deleted == 0 {
		return outcomes, nil
	}
	if err := e.Refresh(ctx); err != nil {
		return outcomes, fmt.Errorf("%w: %w", ErrMutationFailed, err)
	}
	return outcomes, nil
}
