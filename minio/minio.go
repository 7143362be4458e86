package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/MartinHowarth/s3os/core"
	"github.com/MartinHowarth/s3os/minio/internal/errs"
)

// Store implements core.ObjectStore for MinIO/S3-compatible storage.
type Store struct {
	client *minio.Client
	core   minio.Core // low-level API for token-paginated listing
}

// NewStore creates a MinIO-backed object store.
// Returns error if configuration is invalid or the client cannot be
// constructed.
func NewStore(cfg Config) (*Store, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var client *minio.Client
	var err error

	// Use provided client or create new one
	if cfg.Client != nil {
		client = cfg.Client
	} else {
		client, err = minio.New(cfg.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
			Secure: cfg.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create minio client: %w", err)
		}
	}

	return &Store{
		client: client,
		core:   minio.Core{Client: client},
	}, nil
}

// EnsureBucket creates the bucket if it does not already exist.
func (s *Store) EnsureBucket(ctx context.Context, bucket core.BucketLocation) error {
	exists, err := s.client.BucketExists(ctx, bucket.Name)
	if err != nil {
		return errs.Translate(err)
	}
	if exists {
		return nil
	}

	err = s.client.MakeBucket(ctx, bucket.Name, minio.MakeBucketOptions{Region: bucket.Region})
	if err != nil {
		// Lost a create race with another client; the bucket is there.
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "BucketAlreadyOwnedByYou" || errResp.Code == "BucketAlreadyExists" {
			return nil
		}
		return errs.Translate(err)
	}
	return nil
}

// Put creates or overwrites the object at the given location.
func (s *Store) Put(ctx context.Context, loc core.ObjectLocation, data []byte) error {
	_, err := s.client.PutObject(
		ctx,
		loc.Bucket.Name,
		loc.Key,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{},
	)
	if err != nil {
		return errs.Translate(err)
	}
	return nil
}

// Get returns the raw bytes of the object at the given location.
// Returns core.ErrNotExist if no object exists there.
func (s *Store) Get(ctx context.Context, loc core.ObjectLocation) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, loc.Bucket.Name, loc.Key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errs.Translate(err)
	}
	defer func() {
		_ = obj.Close()
	}()

	// GetObject defers the request; a missing key surfaces on first read.
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, errs.Translate(err)
	}
	return data, nil
}

// Delete removes the object at the given location. S3 delete is a
// silent no-op for missing objects, which is exactly the contract.
func (s *Store) Delete(ctx context.Context, loc core.ObjectLocation) error {
	err := s.client.RemoveObject(ctx, loc.Bucket.Name, loc.Key, minio.RemoveObjectOptions{})
	if err != nil {
		return errs.Translate(err)
	}
	return nil
}

// ListPage returns one page of object keys under the prefix using the
// S3 ListObjectsV2 continuation-token protocol.
func (s *Store) ListPage(_ context.Context, bucket core.BucketLocation, prefix, token string, maxKeys int) (core.Page, error) {
	res, err := s.core.ListObjectsV2(bucket.Name, prefix, "", token, "", maxKeys)
	if err != nil {
		return core.Page{}, errs.Translate(err)
	}

	page := core.Page{Keys: make([]string, 0, len(res.Contents))}
	for _, obj := range res.Contents {
		page.Keys = append(page.Keys, obj.Key)
	}
	if res.IsTruncated {
		page.NextToken = res.NextContinuationToken
	}
	return page, nil
}

// Compile-time interface check.
var _ core.ObjectStore = (*Store)(nil)
