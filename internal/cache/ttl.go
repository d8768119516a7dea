package cache

import (
	"fmt"
	"time"
)

// TTL bounds and the environment variables config reads for the cache.
const (
	// DefaultTTLSeconds is one hour.
	DefaultTTLSeconds = 3600
	// MinTTLSeconds is one minute.
	MinTTLSeconds = 60
	// MaxTTLSeconds is seven days.
	MaxTTLSeconds = 7 * 24 * 3600

	EnvTTLSeconds   = "ROSTER_CACHE_TTL_SECONDS"
	EnvCacheEnabled = "ROSTER_CACHE_ENABLED"
	EnvCacheDir     = "ROSTER_CACHE_DIR"
)

// ErrInvalidTTL is returned for TTLs outside [MinTTLSeconds, MaxTTLSeconds].
var ErrInvalidTTL = fmt.Errorf("TTL must be between %d and %d seconds", MinTTLSeconds, MaxTTLSeconds)

// ValidateTTL checks that seconds is within the allowed range.
func ValidateTTL(seconds int) error {
	if seconds < MinTTLSeconds || seconds > MaxTTLSeconds {
		return fmt.Errorf("%w: got %d", ErrInvalidTTL, seconds)
	}
	return nil
}

const day = 24 * time.Hour

// FormatDuration renders d with at most two units, for example "45s", "30m",
// "5h30m" or "2d3h".
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Round(time.Second)/time.Second))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Round(time.Minute)/time.Minute))
	case d < day:
		return twoUnits(int(d/time.Hour), "h", int(d%time.Hour/time.Minute), "m")
	default:
		return twoUnits(int(d/day), "d", int(d%day/time.Hour), "h")
	}
}

func twoUnits(major int, majorUnit string, minor int, minorUnit string) string {
	if minor == 0 {
		return fmt.Sprintf("%d%s", major, majorUnit)
	}
	return fmt.Sprintf("%d%s%d%s", major, majorUnit, minor, minorUnit)
}
