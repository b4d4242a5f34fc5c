package session

// Config holds configuration of the per-experience section sessions.
type Config struct {
	// Size is the maximum number of experiences held per section. Zero means unbounded.
	Size int `mapstructure:"size" default:"256"`
	// TTLMinutes is how long an untouched session survives.
	TTLMinutes int `mapstructure:"ttl_minutes" default:"30"`
}
