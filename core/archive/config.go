package archive

// Config holds configuration for snapshot archiving.
type Config struct {
	// Enabled turns archiving of confirmed snapshots on.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Prefix is prepended to every object name.
	Prefix string `mapstructure:"prefix" default:"snapshots"`
	// Keep is how many snapshots per section and experience survive a prune. Zero keeps all.
	Keep int `mapstructure:"keep" default:"50"`
}
