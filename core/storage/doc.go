// Package storage wraps the MinIO client used to archive section snapshots.
//
// The Client interface covers the handful of bucket and object calls the archive needs and
// is mocked in core/storage/mocks for unit tests. Both AWS S3 and self-hosted MinIO work.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
