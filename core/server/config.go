package server

import "net"

// Config holds configuration for the HTTP server.
type Config struct {
	// Host is the interface the server binds to. Empty binds every interface.
	Host string `mapstructure:"host" default:""`
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables authentication.
	ApiKey string `mapstructure:"api_key" default:""`
	// Metrics exposes the prometheus registry on /metrics.
	Metrics bool `mapstructure:"metrics" default:"true"`
	// Docs serves the swagger UI on /swagger.
	Docs bool `mapstructure:"docs" default:"true"`
	// BodyLimitMB caps request bodies.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"4"`
}

// Address returns the listen address.
func (c Config) Address() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// BodyLimit returns the request body cap in bytes.
func (c Config) BodyLimit() int {
	if c.BodyLimitMB <= 0 {
		return 4 * 1024 * 1024
	}
	return c.BodyLimitMB * 1024 * 1024
}

// PublicPaths are served without an API key.
func (c Config) PublicPaths() []string {
	paths := []string{"/health"}
	if c.Metrics {
		paths = append(paths, "/metrics")
	}
	if c.Docs {
		paths = append(paths, "/swagger")
	}
	return paths
}
