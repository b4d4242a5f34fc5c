package archive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"
	"time"

	"experience-manager/core/reconcile"
	"experience-manager/core/storage"

	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// timeLayout sorts lexically in time order.
const timeLayout = "20060102T150405.000000000Z"

// Archive writes section snapshots to object storage as JSON documents named
// <prefix>/<experience>/<section>/<timestamp>.json.
type Archive struct {
	client storage.Client
	bucket string
	cfg    Config
	logger *zap.Logger
	now    func() time.Time
}

var _ reconcile.SnapshotArchiver = (*Archive)(nil)

// New creates an archive writing to bucket.
func New(client storage.Client, bucket string, cfg Config, logger *zap.Logger) *Archive {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Archive{client: client, bucket: bucket, cfg: cfg, logger: logger, now: time.Now}
}

// Dir is the object prefix holding the snapshots of one section.
func (a *Archive) Dir(section, experienceID string) string {
	return path.Join(a.cfg.Prefix, experienceID, section) + "/"
}

// Archive stores snapshot and prunes old ones beyond the configured limit.
func (a *Archive) Archive(ctx context.Context, section, experienceID string, snapshot any) error {
	body, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("archive: encode %s snapshot: %w", section, err)
	}

	name := a.Dir(section, experienceID) + a.now().UTC().Format(timeLayout) + ".json"
	_, err = a.client.PutObject(ctx, a.bucket, name, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("archive: put %s: %w", name, err)
	}

	a.logger.Debug("Snapshot archived",
		zap.String("section", section),
		zap.String("experience_id", experienceID),
		zap.String("object", name),
	)

	if a.cfg.Keep > 0 {
		if _, err := a.Prune(ctx, section, experienceID, a.cfg.Keep); err != nil {
			a.logger.Warn("Snapshot prune failed", zap.String("section", section), zap.Error(err))
		}
	}
	return nil
}

// List returns the object names of one section's snapshots, oldest first.
func (a *Archive) List(ctx context.Context, section, experienceID string) ([]string, error) {
	var names []string
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{
		Prefix:    a.Dir(section, experienceID),
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("archive: list: %w", obj.Err)
		}
		if strings.HasSuffix(obj.Key, ".json") {
			names = append(names, obj.Key)
		}
	}
	slices.Sort(names)
	return names, nil
}

// Load decodes the snapshot stored under name into out.
func (a *Archive) Load(ctx context.Context, name string, out any) error {
	obj, err := a.client.GetObject(ctx, a.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return fmt.Errorf("archive: get %s: %w", name, err)
	}
	defer obj.Close()

	body, err := io.ReadAll(obj)
	if err != nil {
		return fmt.Errorf("archive: read %s: %w", name, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("archive: decode %s: %w", name, err)
	}
	return nil
}

// Prune removes all but the keep newest snapshots and returns how many were removed.
func (a *Archive) Prune(ctx context.Context, section, experienceID string, keep int) (int, error) {
	names, err := a.List(ctx, section, experienceID)
	if err != nil {
		return 0, err
	}
	if len(names) <= keep {
		return 0, nil
	}

	stale := names[:len(names)-keep]
	if len(stale) == 1 {
		if err := a.client.RemoveObject(ctx, a.bucket, stale[0], minio.RemoveObjectOptions{}); err != nil {
			return 0, fmt.Errorf("archive: remove %s: %w", stale[0], err)
		}
		return 1, nil
	}

	objects := make(chan minio.ObjectInfo, len(stale))
	for _, name := range stale {
		objects <- minio.ObjectInfo{Key: name}
	}
	close(objects)

	removed := len(stale)
	var firstErr error
	for rerr := range a.client.RemoveObjects(ctx, a.bucket, objects, minio.RemoveObjectsOptions{}) {
		removed--
		if firstErr == nil {
			firstErr = fmt.Errorf("archive: remove %s: %w", rerr.ObjectName, rerr.Err)
		}
	}
	return removed, firstErr
}
