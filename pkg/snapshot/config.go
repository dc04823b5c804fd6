package snapshot

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/mwaltz/sitesnap/pkg/errors"
)

// Config holds the non-secret run configuration, optionally loaded from a
// sitesnap.toml file. Credentials never live here.
type Config struct {
	// Output is the base directory of the output tree.
	Output string `toml:"output"`

	// ReferenceLanguage is forced to the front of progress charts.
	ReferenceLanguage string `toml:"reference_language"`

	HTTP HTTPConfig `toml:"http"`
	AUR  AURConfig  `toml:"aur"`

	// Endpoints overrides source base URLs, keyed by source name
	// (e.g. endpoints.codecov = "https://codecov.example.internal").
	// Used for self-hosted upstream instances.
	Endpoints map[string]string `toml:"endpoints"`
}

// HTTPConfig tunes the shared HTTP client settings handed to each source.
type HTTPConfig struct {
	TimeoutSeconds int `toml:"timeout_seconds"`
	RetryAttempts  int `toml:"retry_attempts"`

	// InsecureCoverage disables TLS verification for the coverage upstream
	// only. Self-hosted instances commonly ship broken certificate chains.
	InsecureCoverage bool `toml:"insecure_coverage"`
}

// Timeout returns the configured per-request timeout.
func (h HTTPConfig) Timeout() time.Duration {
	return time.Duration(h.TimeoutSeconds) * time.Second
}

// AURConfig lists the packages queried from the package-repository RPC.
type AURConfig struct {
	Packages []string `toml:"packages"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Output:            "gh-pages",
		ReferenceLanguage: "en",
		HTTP: HTTPConfig{
			TimeoutSeconds: 10,
			RetryAttempts:  5,
		},
		AUR: AURConfig{Packages: []string{"sunshine"}},
	}
}

// LoadConfig reads a TOML config file, layering it over the defaults.
// A missing file is not an error; the defaults are returned as-is.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	return cfg, nil
}

// Endpoint returns the base URL override for a source, or "" if unset.
func (c Config) Endpoint(source string) string {
	return c.Endpoints[source]
}
