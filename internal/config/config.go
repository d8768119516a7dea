// Package config loads roster's YAML configuration and applies environment
// overrides.
//
// Precedence, lowest to highest: built-in defaults, the config file
// (~/.roster/config.yaml, ROSTER_CONFIG or --config), environment variables,
// and finally command-line flags applied by the cli package.
package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rshade/roster/internal/cache"
	"github.com/rshade/roster/internal/view"
)

// Environment variables read by Load.
const (
	EnvConfigPath      = "ROSTER_CONFIG"
	EnvHome            = "ROSTER_HOME"
	EnvAPIURL          = "ROSTER_API_URL"
	EnvAPIToken        = "ROSTER_API_TOKEN"
	EnvPageSize        = "ROSTER_PAGE_SIZE"
	EnvLogLevel        = "ROSTER_LOG_LEVEL"
	EnvLogFormat       = "ROSTER_LOG_FORMAT"
	EnvCacheTTLSeconds = cache.EnvTTLSeconds
	EnvCacheEnabled    = cache.EnvCacheEnabled
	EnvCacheDir        = cache.EnvCacheDir
)

// Defaults.
const (
	DefaultAPIURL          = "http://localhost:5000"
	DefaultAPITimeout      = 30 * time.Second
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "console"
	DefaultCacheTTLSeconds = cache.DefaultTTLSeconds

	configFileName = "config.yaml"
	homeDirName    = ".roster"
	redactedToken  = "********"
)

// Validation errors.
var (
	ErrInvalidAPIURL   = errors.New("api.base_url must be an absolute http(s) URL")
	ErrInvalidPageSize = errors.New("view.page_size must be >= 1")
	ErrInvalidTimeout  = errors.New("api.timeout must be a non-negative duration")
	ErrInvalidSort     = errors.New("view.sort is not a known sort key")
	ErrInvalidCacheTTL = errors.New("cache.ttl_seconds is out of range")
)

// Config is the full roster configuration.
type Config struct {
	API     APIConfig     `json:"api" yaml:"api"`
	View    ViewConfig    `json:"view" yaml:"view"`
	Cache   CacheConfig   `json:"cache" yaml:"cache"`
	Logging LoggingConfig `json:"logging" yaml:"logging"`

	path string
}

// APIConfig describes the employee service endpoint.
type APIConfig struct {
	BaseURL string `json:"base_url" yaml:"base_url"`
	Token   string `json:"token,omitempty" yaml:"token,omitempty"`
	// Timeout is a Go duration string. Empty or "0s" disables the client timeout.
	Timeout string `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// ViewConfig holds the initial view inputs.
type ViewConfig struct {
	PageSize int    `json:"page_size" yaml:"page_size"`
	Sort     string `json:"sort,omitempty" yaml:"sort,omitempty"`
}

// CacheConfig controls the last-known roster cache.
type CacheConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	TTLSeconds int    `json:"ttl_seconds" yaml:"ttl_seconds"`
	Directory  string `json:"directory,omitempty" yaml:"directory,omitempty"`
}

// New returns a Config holding the built-in defaults, bound to DefaultPath.
func New() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: DefaultAPIURL,
			Timeout: DefaultAPITimeout.String(),
		},
		View: ViewConfig{
			PageSize: view.DefaultPageSize,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: DefaultCacheTTLSeconds,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		path: DefaultPath(),
	}
}

// Load builds the configuration from defaults, the file at path and the
// environment. An empty path resolves through ROSTER_CONFIG and then
// DefaultPath. A missing file is only an error when the path was given
// explicitly.
func Load(path string) (*Config, error) {
	cfg := New()

	explicit := path != ""
	if !explicit {
		if envPath := os.Getenv(EnvConfigPath); envPath != "" {
			path = envPath
			explicit = true
		} else {
			path = DefaultPath()
		}
	}
	cfg.path = path

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, unmarshalErr)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := envString(EnvAPIURL); v != "" {
		c.API.BaseURL = v
	}
	if v := envString(EnvAPIToken); v != "" {
		c.API.Token = v
	}
	if n, ok := envInt(EnvPageSize); ok {
		c.View.PageSize = n
	}
	if v := envString(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := envString(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if n, ok := envInt(EnvCacheTTLSeconds); ok {
		c.Cache.TTLSeconds = n
	}
	if v := envString(EnvCacheEnabled); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Cache.Enabled = enabled
		}
	}
	if v := envString(EnvCacheDir); v != "" {
		c.Cache.Directory = v
	}
}

func envString(name string) string {
	return strings.TrimSpace(os.Getenv(name))
}

// envInt ignores values that do not parse.
func envInt(name string) (int, bool) {
	v := envString(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidAPIURL, c.API.BaseURL)
	}
	if _, timeoutErr := c.APITimeout(); timeoutErr != nil {
		return timeoutErr
	}
	if c.View.PageSize < view.MinPageSize {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, c.View.PageSize)
	}
	if _, sortErr := view.ParseSortKey(c.View.Sort); sortErr != nil {
		return fmt.Errorf("%w: %q", ErrInvalidSort, c.View.Sort)
	}
	if ttlErr := cache.ValidateTTL(c.Cache.TTLSeconds); ttlErr != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCacheTTL, ttlErr)
	}
	return nil
}

// APITimeout parses API.Timeout. An empty value means no timeout.
func (c *Config) APITimeout() (time.Duration, error) {
	raw := strings.TrimSpace(c.API.Timeout)
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeout, c.API.Timeout)
	}
	return d, nil
}

// SortKey returns the configured initial sort key, or SortUnspecified when
// the value does not parse.
func (c *Config) SortKey() view.SortKey {
	key, err := view.ParseSortKey(c.View.Sort)
	if err != nil {
		return view.SortUnspecified
	}
	return key
}

// Path returns the file this configuration is bound to.
func (c *Config) Path() string {
	return c.path
}

// SetPath rebinds the configuration to path for Save.
func (c *Config) SetPath(path string) {
	c.path = path
}

// Save writes the configuration as YAML to its bound path. The file is
// owner-only since it may hold the API token.
func (c *Config) Save() error {
	if c.path == "" {
		return errors.New("config has no path")
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err = os.WriteFile(c.path, data, 0600); err != nil {
		return fmt.Errorf("writing config %s: %w", c.path, err)
	}
	return nil
}

// Redacted returns a copy safe to print, with the token masked.
func (c *Config) Redacted() Config {
	out := *c
	if out.API.Token != "" {
		out.API.Token = redactedToken
	}
	return out
}

type configKey struct{}

// ContextWithConfig stores cfg in ctx.
func ContextWithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext returns the config stored in ctx, or the defaults when none is set.
func FromContext(ctx context.Context) *Config {
	if ctx != nil {
		if cfg, ok := ctx.Value(configKey{}).(*Config); ok && cfg != nil {
			return cfg
		}
	}
	return New()
}
