package core

import "context"

// DefaultPageSize is the page size requested from ListPage when the
// caller has no preference. Matches the common object store maximum of
// 1000 keys per page.
const DefaultPageSize = 1000

// Page is a single page of keys from a prefix listing.
type Page struct {
	// Keys holds the object keys in this page.
	Keys []string

	// NextToken is the continuation token for the next page. Empty means
	// this was the final page.
	NextToken string
}

// ObjectStore is the client surface s3os needs from a remote bucket/key
// object store. Implementations are expected to own connection
// management, timeouts, and retry policy; s3os propagates their errors
// unchanged.
type ObjectStore interface {
	// EnsureBucket creates the bucket if it does not already exist.
	// It is idempotent.
	EnsureBucket(ctx context.Context, bucket BucketLocation) error

	// Put creates or overwrites the object at the given location.
	Put(ctx context.Context, loc ObjectLocation, data []byte) error

	// Get returns the raw bytes of the object at the given location.
	// Returns an error satisfying errors.Is(err, ErrNotExist) if no
	// object exists there.
	Get(ctx context.Context, loc ObjectLocation) ([]byte, error)

	// Delete removes the object at the given location. Deleting an
	// object that does not exist is not an error; the store cannot
	// distinguish "deleted" from "already absent".
	Delete(ctx context.Context, loc ObjectLocation) error

	// ListPage returns one page of object keys under the prefix,
	// resuming from the given continuation token (empty for the first
	// page). maxKeys bounds the page size; the store may return fewer.
	ListPage(ctx context.Context, bucket BucketLocation, prefix, token string, maxKeys int) (Page, error)
}

// Codec encodes values to bytes for storage and decodes them back.
// Decode must be the left inverse of Encode for all supported value
// shapes: scalars, sequences, and string-keyed mappings, recursively.
type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte) (any, error)
}
