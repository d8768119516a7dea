package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/roster/internal/cache"
	"github.com/rshade/roster/internal/client"
	"github.com/rshade/roster/internal/config"
	"github.com/rshade/roster/internal/engine"
	"github.com/rshade/roster/internal/logging"
	"github.com/rshade/roster/internal/roster"
	"github.com/rshade/roster/internal/view"
)

// ErrNoCachedRoster is returned by --offline when nothing usable is cached.
var ErrNoCachedRoster = errors.New("no cached roster available; run without --offline first")

// session bundles the collaborators one command invocation works with.
type session struct {
	cfg    *config.Config
	client *client.Client
	engine *engine.Engine
}

// openSession builds the client, snapshot cache and engine from the config
// loaded for cmd.
func openSession(cmd *cobra.Command) (*session, error) {
	cfg := configFromCommand(cmd)
	log := logging.FromContext(cmd.Context())

	timeout, err := cfg.APITimeout()
	if err != nil {
		return nil, err
	}
	skip, _ := cmd.Flags().GetBool("skip-version-check")
	c, err := client.New(cfg.API.BaseURL, cfg.API.Token, timeout,
		client.WithLogger(*log),
		client.WithSkipVersionCheck(skip),
	)
	if err != nil {
		return nil, err
	}

	ctrl := view.NewController(
		view.WithPageSize(cfg.View.PageSize),
		view.WithSortKey(cfg.SortKey()),
		view.WithLogger(*log),
	)
	opts := []engine.Option{engine.WithController(ctrl), engine.WithLogger(*log)}

	if cfg.Cache.Enabled {
		store, storeErr := cache.NewStore(cfg.CacheDir(), cfg.Cache.TTLSeconds)
		if storeErr != nil {
			log.Warn().Err(storeErr).Str("dir", cfg.CacheDir()).Msg("roster cache unavailable")
		} else {
			if pruned, pruneErr := store.Prune(); pruneErr != nil {
				log.Debug().Err(pruneErr).Msg("pruning roster cache failed")
			} else if pruned > 0 {
				log.Debug().Int("removed", pruned).Msg("pruned expired cached rosters")
			}
			opts = append(opts, engine.WithSnapshotStore(store.For(c.BaseURL())))
		}
	}

	return &session{cfg: cfg, client: c, engine: engine.New(c, opts...)}, nil
}

// load fills the view. The cached roster is applied first; unless offline
// the service is then asked for a fresh one. A failed fetch falls back to the
// cached roster with a warning, except for rejected credentials.
func (s *session) load(cmd *cobra.Command, offline bool) error {
	log := logging.FromContext(cmd.Context())

	warmed, err := s.engine.Warm()
	if err != nil && !errors.Is(err, cache.ErrNotCached) {
		log.Debug().Err(err).Msg("cached roster not used")
	}

	if offline {
		if !warmed {
			return ErrNoCachedRoster
		}
		return nil
	}

	if err = s.engine.Refresh(cmd.Context()); err != nil {
		if errors.Is(err, roster.ErrNotAuthorized) || !warmed {
			return authError(err)
		}
		fetchedAt, _ := s.engine.FetchedAt()
		cmd.PrintErrf("Warning: %v\nShowing cached roster from %s ago.\n",
			err, cache.FormatDuration(time.Since(fetchedAt)))
	}
	return nil
}

// parseID parses a positive record id argument.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(arg), "#"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q is not a valid employee id", roster.ErrInvalidInput, arg)
	}
	return id, nil
}

// parseStatus matches s against the known statuses ignoring case.
// The empty string clears the status.
func parseStatus(s string) (roster.Status, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return roster.StatusUnset, nil
	}
	names := make([]string, 0, len(roster.Statuses()))
	for _, st := range roster.Statuses() {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
		names = append(names, fmt.Sprintf("%q", string(st)))
	}
	return "", fmt.Errorf("%w: unknown status %q, want one of %s",
		roster.ErrInvalidInput, s, strings.Join(names, ", "))
}
