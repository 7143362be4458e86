package minio

import (
	"context"
	"fmt"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/MartinHowarth/s3os"
	"github.com/MartinHowarth/s3os/codec"
	"github.com/MartinHowarth/s3os/core"
)

// setupTestStore creates a MinIO container and returns a configured
// Store instance.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	// Start MinIO container
	req := testcontainers.ContainerRequest{
		Image:        "minio/minio:latest",
		ExposedPorts: []string{"9000/tcp"},
		Env: map[string]string{
			"MINIO_ROOT_USER":     "minioadmin",
			"MINIO_ROOT_PASSWORD": "minioadmin",
		},
		Cmd:        []string{"server", "/data"},
		WaitingFor: wait.ForHTTP("/minio/health/live").WithPort("9000/tcp"),
	}

	minioC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start MinIO container")
	t.Cleanup(func() {
		_ = minioC.Terminate(ctx)
	})

	endpoint, err := minioC.Endpoint(ctx, "")
	require.NoError(t, err, "failed to get container endpoint")

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
		Secure: false,
	})
	require.NoError(t, err, "failed to create MinIO client")

	store, err := NewStore(Config{Client: client})
	require.NoError(t, err, "failed to create Store")

	return store
}

// TestIntegration_ObjectStore exercises the core.ObjectStore contract
// against a real MinIO instance.
func TestIntegration_ObjectStore(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	bucket := core.BucketLocation{Name: "test-bucket"}

	t.Run("ensure bucket is idempotent", func(t *testing.T) {
		require.NoError(t, store.EnsureBucket(ctx, bucket))
		require.NoError(t, store.EnsureBucket(ctx, bucket))
	})

	t.Run("put then get round trips", func(t *testing.T) {
		loc := core.ObjectLocation{Key: "some/key", Bucket: bucket}
		require.NoError(t, store.Put(ctx, loc, []byte("hello")))

		data, err := store.Get(ctx, loc)
		require.NoError(t, err)
		assert.Equal(t, []byte("hello"), data)
	})

	t.Run("get of missing object returns ErrNotExist", func(t *testing.T) {
		_, err := store.Get(ctx, core.ObjectLocation{Key: "never-set", Bucket: bucket})
		require.ErrorIs(t, err, core.ErrNotExist)
	})

	t.Run("delete of missing object is silent", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, core.ObjectLocation{Key: "never-set", Bucket: bucket}))
	})

	t.Run("delete removes the object", func(t *testing.T) {
		loc := core.ObjectLocation{Key: "to-delete", Bucket: bucket}
		require.NoError(t, store.Put(ctx, loc, []byte("x")))
		require.NoError(t, store.Delete(ctx, loc))

		_, err := store.Get(ctx, loc)
		require.ErrorIs(t, err, core.ErrNotExist)
	})

	t.Run("list pages follow continuation tokens", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			loc := core.ObjectLocation{Key: fmt.Sprintf("paged/%d", i), Bucket: bucket}
			require.NoError(t, store.Put(ctx, loc, []byte("v")))
		}

		var keys []string
		token := ""
		pages := 0
		for {
			page, err := store.ListPage(ctx, bucket, "paged/", token, 2)
			require.NoError(t, err)
			keys = append(keys, page.Keys...)
			pages++
			token = page.NextToken
			if token == "" {
				break
			}
		}

		assert.Equal(t, []string{"paged/0", "paged/1", "paged/2", "paged/3", "paged/4"}, keys)
		assert.GreaterOrEqual(t, pages, 3)
	})
}

// TestIntegration_Dict exercises the full stack, dict through codec
// through this store, against a real MinIO instance.
func TestIntegration_Dict(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	api := s3os.New(store, codec.YAML{})
	bucket := core.BucketLocation{Name: "dict-bucket"}

	dict, err := s3os.NewDict(ctx, api,
		map[string]any{"a": 2, "b": []any{1, 2}},
		s3os.WithID("integration"),
		s3os.WithBucket(bucket),
	)
	require.NoError(t, err)

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, dict.Set(ctx, "answer", 42))

		value, err := dict.Get(ctx, "answer")
		require.NoError(t, err)
		assert.Equal(t, 42, value)
	})

	t.Run("a second dict with the same id discovers the data", func(t *testing.T) {
		other, err := s3os.NewDict(ctx, api, nil,
			s3os.WithID("integration"),
			s3os.WithBucket(bucket),
		)
		require.NoError(t, err)

		all, err := other.GetAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": 2, "b": []any{1, 2}, "answer": 42}, all)
	})

	t.Run("clear removes everything", func(t *testing.T) {
		require.NoError(t, dict.Clear(ctx))

		all, err := dict.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)

		_, err = dict.Get(ctx, "answer")
		require.ErrorIs(t, err, core.ErrNotExist)
	})
}
