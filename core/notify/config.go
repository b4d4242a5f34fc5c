package notify

// Config holds the notification settings.
type Config struct {
	// FeedLimit is how many undelivered messages are kept per experience.
	FeedLimit int `mapstructure:"feed_limit" default:"20"`
}
