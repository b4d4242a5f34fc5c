// Package config provides configuration management for the Experience Manager.
//
// It utilizes Viper for loading configuration from environment variables and an optional
// .env file. Every key has a default declared on the struct tags of its section.
//
// # Configuration Structure
//
// The Config struct is divided into subsections, each mapped to an environment prefix:
//   - Server (SERVER_): listen address, API key, metrics and docs toggles
//   - Gateway (GATEWAY_): base URL, token, timeout and retries of the upstream services
//   - Reconcile (RECONCILE_): snapshot cache TTL, performer concurrency, disabled sections
//   - Session (SESSION_): size and TTL of the per-experience section cache
//   - Rules (RULES_): save gate expressions per section
//   - Database (DATABASE_): save journal connection
//   - Storage (STORAGE_): S3/MinIO credentials and bucket
//   - Archive (ARCHIVE_): snapshot archive toggle, prefix and retention
//   - Notify (NOTIFY_): notification feed size
//   - Log (LOG_): logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Gateway.BaseURL)
package config
