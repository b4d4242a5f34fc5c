package sectionapi

import "time"

// Config holds the engine settings shared by every section.
type Config struct {
	// CacheTTLSeconds bounds how long a fetched snapshot is reused. Zero keeps it until a save.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"60"`
	// MaxConcurrency caps concurrent remote calls per performer batch. Zero is unbounded.
	MaxConcurrency int `mapstructure:"max_concurrency" default:"8"`
	// Disabled lists sections that are not served (comma separated in the environment).
	Disabled []string `mapstructure:"disabled" default:""`
}

// CacheTTL returns the snapshot cache TTL.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(max(c.CacheTTLSeconds, 0)) * time.Second
}
