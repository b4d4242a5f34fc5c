package archive

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"experience-manager/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fixedArchive(client *mocks.Client, cfg Config) *Archive {
	a := New(client, "test-bucket", cfg, nil)
	a.now = func() time.Time { return time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC) }
	return a
}

func objects(keys ...string) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(keys))
	for _, k := range keys {
		ch <- minio.ObjectInfo{Key: k}
	}
	close(ch)
	return ch
}

func TestArchive_WritesJSON(t *testing.T) {
	client := new(mocks.Client)
	a := fixedArchive(client, Config{Prefix: "snapshots"})
	ctx := context.Background()

	want := "snapshots/exp-1/options/20260301T103000.000000000Z.json"
	client.On("PutObject", ctx, "test-bucket", want, mock.MatchedBy(func(r io.Reader) bool {
		body, _ := io.ReadAll(r)
		return string(body) == `{"items":["a"]}`
	}), int64(15), minio.PutObjectOptions{ContentType: "application/json"}).Return(minio.UploadInfo{}, nil)

	err := a.Archive(ctx, "options", "exp-1", map[string][]string{"items": {"a"}})
	require.NoError(t, err)
	client.AssertExpectations(t)
	client.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
}

func TestArchive_PutFails(t *testing.T) {
	client := new(mocks.Client)
	a := fixedArchive(client, Config{Prefix: "snapshots", Keep: 3})
	client.On("PutObject", mock.Anything, "test-bucket", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, assert.AnError)

	err := a.Archive(context.Background(), "options", "exp-1", []int{1})
	assert.ErrorIs(t, err, assert.AnError)
	client.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
}

func TestArchive_ListSortsAndFilters(t *testing.T) {
	client := new(mocks.Client)
	a := fixedArchive(client, Config{Prefix: "snapshots"})
	client.On("ListObjects", mock.Anything, "test-bucket", minio.ListObjectsOptions{
		Prefix:    "snapshots/exp-1/pricing/",
		Recursive: true,
	}).Return(objects(
		"snapshots/exp-1/pricing/20260302T000000.000000000Z.json",
		"snapshots/exp-1/pricing/notes.txt",
		"snapshots/exp-1/pricing/20260301T000000.000000000Z.json",
	))

	names, err := a.List(context.Background(), "pricing", "exp-1")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"snapshots/exp-1/pricing/20260301T000000.000000000Z.json",
		"snapshots/exp-1/pricing/20260302T000000.000000000Z.json",
	}, names)
}

func TestArchive_Prune(t *testing.T) {
	keys := []string{
		"snapshots/exp-1/options/1.json",
		"snapshots/exp-1/options/2.json",
		"snapshots/exp-1/options/3.json",
		"snapshots/exp-1/options/4.json",
	}

	t.Run("NothingToDo", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(objects(keys...))

		removed, err := fixedArchive(client, Config{Prefix: "snapshots"}).Prune(context.Background(), "options", "exp-1", 4)
		require.NoError(t, err)
		assert.Zero(t, removed)
	})

	t.Run("Single", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(objects(keys...))
		client.On("RemoveObject", mock.Anything, "test-bucket", keys[0], mock.Anything).Return(nil)

		removed, err := fixedArchive(client, Config{Prefix: "snapshots"}).Prune(context.Background(), "options", "exp-1", 3)
		require.NoError(t, err)
		assert.Equal(t, 1, removed)
		client.AssertExpectations(t)
	})

	t.Run("Batch", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(objects(keys...))
		client.On("RemoveObjects", mock.Anything, "test-bucket", mock.MatchedBy(func(ch <-chan minio.ObjectInfo) bool {
			return len(ch) == 3
		}), mock.Anything).Return(nil)

		removed, err := fixedArchive(client, Config{Prefix: "snapshots"}).Prune(context.Background(), "options", "exp-1", 1)
		require.NoError(t, err)
		assert.Equal(t, 3, removed)
	})
}

func TestArchive_Load(t *testing.T) {
	client := new(mocks.Client)
	a := fixedArchive(client, Config{})
	client.On("GetObject", mock.Anything, "test-bucket", "snapshots/x.json", mock.Anything).
		Return(io.NopCloser(strings.NewReader(`{"items":[1,2]}`)), nil)

	var out struct {
		Items []int `json:"items"`
	}
	require.NoError(t, a.Load(context.Background(), "snapshots/x.json", &out))
	assert.Equal(t, []int{1, 2}, out.Items)

	client.On("GetObject", mock.Anything, "test-bucket", "missing.json", mock.Anything).Return(nil, assert.AnError)
	assert.ErrorIs(t, a.Load(context.Background(), "missing.json", &out), assert.AnError)
}
