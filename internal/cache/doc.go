// Package cache keeps the last roster fetched from each employee service on
// disk so the CLI can start from a known snapshot when the service is slow or
// unreachable.
//
// Snapshots are JSON files under ~/.roster/cache/, one per service, named by
// a SHA256 hash of the service base URL. Each file records when it was fetched
// and when it expires. The TTL defaults to one hour and is configurable through
// the config file, ROSTER_CACHE_TTL_SECONDS or the --cache-ttl flag.
package cache
