package gateway

// Config holds configuration for the upstream experience services.
type Config struct {
	// BaseURL is the root of the experience REST API.
	BaseURL string `mapstructure:"base_url" default:"http://localhost:8081/api/v1"`
	// Token is sent as a bearer token on every request when set.
	Token string `mapstructure:"token" default:""`
	// TimeoutSeconds bounds a single request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"15"`
	// RetryCount is the number of retries for idempotent requests on transport errors.
	RetryCount int `mapstructure:"retry_count" default:"2"`
}
