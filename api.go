package s3os

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MartinHowarth/s3os/core"
)

// API combines an object store client with a value codec into the
// simplest possible store/retrieve/delete operations, each addressed by
// an object location. It is stateless and safe to share.
type API struct {
	store  core.ObjectStore
	codec  core.Codec
	logger *slog.Logger
}

// APIOption configures an API.
type APIOption func(*API)

// WithLogger sets the logger for per-operation debug logs. The default
// discards everything.
func WithLogger(logger *slog.Logger) APIOption {
	return func(a *API) {
		a.logger = logger
	}
}

// New creates an API over the given store and codec.
func New(store core.ObjectStore, codec core.Codec, opts ...APIOption) *API {
	a := &API{
		store:  store,
		codec:  codec,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Store encodes the value and uploads it to the given location,
// creating the target bucket first if it does not exist. An existing
// object at the location is overwritten.
func (a *API) Store(ctx context.Context, loc core.ObjectLocation, value any) error {
	if err := a.store.EnsureBucket(ctx, loc.Bucket); err != nil {
		return fmt.Errorf("ensure bucket %q: %w", loc.Bucket.Name, err)
	}

	data, err := a.codec.Encode(value)
	if err != nil {
		return fmt.Errorf("encode value for %q: %w", loc.Key, err)
	}

	if err := a.store.Put(ctx, loc, data); err != nil {
		return fmt.Errorf("store %q: %w", loc.Key, err)
	}

	a.logger.Debug("stored object", "bucket", loc.Bucket.Name, "key", loc.Key, "bytes", len(data))
	return nil
}

// Retrieve downloads and decodes the object at the given location.
// Returns an error satisfying errors.Is(err, core.ErrNotExist) if no
// object exists there.
func (a *API) Retrieve(ctx context.Context, loc core.ObjectLocation) (any, error) {
	data, err := a.store.Get(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("retrieve %q: %w", loc.Key, err)
	}

	value, err := a.codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode value for %q: %w", loc.Key, err)
	}

	a.logger.Debug("retrieved object", "bucket", loc.Bucket.Name, "key", loc.Key, "bytes", len(data))
	return value, nil
}

// Delete removes the object at the given location. Deleting an object
// that does not exist is not an error.
func (a *API) Delete(ctx context.Context, loc core.ObjectLocation) error {
	if err := a.store.Delete(ctx, loc); err != nil {
		return fmt.Errorf("delete %q: %w", loc.Key, err)
	}

	a.logger.Debug("deleted object", "bucket", loc.Bucket.Name, "key", loc.Key)
	return nil
}

// Keys returns a lazy iterator over the remote keys under prefix in the
// given bucket. The iterator follows the store's pagination tokens, one
// page at a time.
func (a *API) Keys(bucket core.BucketLocation, prefix string) *core.KeyIterator {
	return core.NewKeyIterator(a.store, bucket, prefix)
}

// StoreSimple stores the value at the root of the default bucket under
// the given key, with no dict namespacing.
func (a *API) StoreSimple(ctx context.Context, key string, value any) error {
	return a.Store(ctx, core.NewObjectLocation(key), value)
}

// RetrieveSimple retrieves the value stored under the given key at the
// root of the default bucket.
func (a *API) RetrieveSimple(ctx context.Context, key string) (any, error) {
	return a.Retrieve(ctx, core.NewObjectLocation(key))
}

// DeleteSimple deletes the object stored under the given key at the
// root of the default bucket.
func (a *API) DeleteSimple(ctx context.Context, key string) error {
	return a.Delete(ctx, core.NewObjectLocation(key))
}
