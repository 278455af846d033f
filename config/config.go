// Package config loads Baryon's on-disk settings from TOML, grounded on
// original_source's Settings/CacheSettings (core/settings.rs,
// core/http.rs) and the teacher's own TOML handling (toml.go,
// registry_config.go), which both reach for
// github.com/pelletier/go-toml rather than hand-rolling a parser.
package config

import (
	"os"
	"time"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"

	"github.com/scztt/baryon/strategy"
)

// Settings is Baryon's top-level on-disk configuration, normally loaded
// from ~/.baryon/config.toml.
type Settings struct {
	// RepositoryURL is the endpoint httpcatalog fetches the package
	// index from.
	RepositoryURL string `toml:"repository_url"`

	// CachePath is where the fetched index is cached on disk.
	CachePath string `toml:"cache_path"`

	// CacheTimeout is how long a cached index is trusted before
	// httpcatalog re-fetches it.
	CacheTimeout time.Duration `toml:"-"`
	// CacheTimeoutSeconds is CacheTimeout's on-disk form; TOML has no
	// native duration type, so it round-trips as whole seconds, the way
	// original_source's CacheSettings.cache_timeout is a plain
	// std::time::Duration serialized by its caller.
	CacheTimeoutSeconds int64 `toml:"cache_timeout_seconds"`

	// Conservative and AvoidPrerelease describe the Strategy returned by
	// Strategy. The resolve and resolve-raw commands do not read them:
	// they take their strategy from their own flags or request document.
	Conservative    bool `toml:"conservative"`
	AvoidPrerelease bool `toml:"avoid_prerelease"`
}

// Default returns the settings Baryon uses when no config file is
// present: a conservative strategy, pre-releases allowed, and a
// twenty-four hour cache TTL.
func Default() Settings {
	return Settings{
		CachePath:           "~/.baryon/cache.json",
		CacheTimeoutSeconds: int64((24 * time.Hour).Seconds()),
		CacheTimeout:        24 * time.Hour,
		Conservative:        true,
		AvoidPrerelease:     false,
	}
}

// Parse decodes TOML-formatted settings from raw, starting from
// Default so a partial config file only overrides the fields it names.
func Parse(raw []byte) (Settings, error) {
	s := Default()
	if err := toml.Unmarshal(raw, &s); err != nil {
		return Settings{}, errors.Wrap(err, "config: decode toml")
	}
	s.CacheTimeout = time.Duration(s.CacheTimeoutSeconds) * time.Second
	return s, nil
}

// Load reads and decodes the TOML settings file at path. A missing file
// is not an error: Default is returned unchanged, matching the
// teacher's tolerance for an absent Gopkg.reg (NewRegistryConfig is
// only ever called when readConfig's caller already knows the file
// exists; here, an absent ~/.baryon/config.toml is the common case of
// "no config yet," not a usage error).
func Load(path string) (Settings, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Settings{}, errors.Wrapf(err, "config: read %s", path)
	}
	return Parse(raw)
}

// Strategy builds the strategy.Strategy these settings describe.
func (s Settings) Strategy() strategy.Strategy {
	return strategy.Strategy{Conservative: s.Conservative, AvoidPrerelease: s.AvoidPrerelease}
}
