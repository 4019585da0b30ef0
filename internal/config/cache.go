package config

import "time"

// RefDataCacheConfig controls the Redis read-through cache for the
// category and location lists.  Both lists are static enumerations on the
// backend, so a short TTL removes two backend round trips from every page
// render.  When Enabled is false or no Redis client is configured the
// reference loader always calls the backend.
type RefDataCacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

// LoadRefDataCacheConfig reads REFDATA_CACHE_* variables, falling back to
// defaults when unset.
func LoadRefDataCacheConfig() RefDataCacheConfig {
	cfg := RefDataCacheConfig{
		Enabled: envBool("REFDATA_CACHE_ENABLED", true),
		TTL:     envDur("REFDATA_CACHE_TTL", 5*time.Minute),
		Prefix:  envStr("REFDATA_CACHE_PREFIX", "limpopo:ref"),
	}
	if cfg.TTL <= 0 {
		cfg.TTL = time.Minute
	}
	return cfg
}
