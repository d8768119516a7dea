package client

import (
	"context"

	"github.com/Masterminds/semver/v3"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey string

// SkipVersionCheckKey is the context key for skipping the service version
// check on requests made with that context.
const SkipVersionCheckKey contextKey = "skip_version_check"

// SupportedAPIVersions is the range of service versions this client speaks.
const SupportedAPIVersions = ">= 1.0.0, < 2.0.0"

// Compatibility is the outcome of comparing a service version to
// SupportedAPIVersions.
type Compatibility int

const (
	Compatible Compatibility = iota
	Incompatible
)

// CompareAPIVersion checks the advertised service version against
// SupportedAPIVersions. A leading "v" is accepted.
func CompareAPIVersion(advertised string) (Compatibility, error) {
	constraint, err := semver.NewConstraint(SupportedAPIVersions)
	if err != nil {
		return Incompatible, err
	}
	v, err := semver.NewVersion(advertised)
	if err != nil {
		return Incompatible, err
	}
	if !constraint.Check(v) {
		return Incompatible, nil
	}
	return Compatible, nil
}

// checkAPIVersion warns once per client when the service advertises a version
// outside SupportedAPIVersions. Parse errors are logged but never block.
// The check is skipped when the client was built WithSkipVersionCheck or ctx
// carries SkipVersionCheckKey set to true.
func (c *Client) checkAPIVersion(ctx context.Context, advertised string) {
	skip, ok := ctx.Value(SkipVersionCheckKey).(bool)
	if c.skipVersionCheck || (ok && skip) || advertised == "" {
		return
	}
	c.versionChecked.Do(func() {
		log := c.logger.With().Str("component", "client").Str("api_version", advertised).Logger()
		result, err := CompareAPIVersion(advertised)
		if err != nil {
			log.Warn().Err(err).Msg("failed to parse employee service version")
			return
		}
		if result == Incompatible {
			log.Warn().
				Str("supported", SupportedAPIVersions).
				Msg("employee service version mismatch: this may cause errors")
		}
	})
}
