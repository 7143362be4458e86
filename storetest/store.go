// Package storetest provides an in-memory core.ObjectStore for unit
// tests, with call accounting and error injection so tests can assert
// exactly which remote operations an overlay performed.
package storetest

import (
	"context"
	"sort"
	"strings"

	"github.com/MartinHowarth/s3os/core"
)

// Counts records how many times each store operation was invoked.
type Counts struct {
	EnsureBucket int
	Put          int
	Get          int
	Delete       int
	ListPage     int
}

// Store is an in-memory object store. It mirrors the remote-store
// contract: Get of a missing object returns core.ErrNotExist, Delete of
// a missing object is silent, and ListPage pages through keys in sorted
// order using the last returned key as the continuation token.
//
// Intended for single-goroutine test use.
type Store struct {
	// PageSize caps how many keys a single ListPage call returns, on top
	// of the caller's maxKeys, so tests can force multi-page listings.
	// Zero means no extra cap.
	PageSize int

	// Counts tallies operations as they happen.
	Counts Counts

	// Forced errors. When set, the matching operation fails with the
	// given error after being counted.
	PutErr    error
	GetErr    error
	DeleteErr error
	ListErr   error

	buckets map[string]map[string][]byte
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{buckets: make(map[string]map[string][]byte)}
}

// Seed inserts an object directly, bypassing call accounting. Use it to
// model state written by another client.
func (s *Store) Seed(bucket core.BucketLocation, key string, data []byte) {
	if s.buckets[bucket.Name] == nil {
		s.buckets[bucket.Name] = make(map[string][]byte)
	}
	s.buckets[bucket.Name][key] = data
}

// Object reports the stored bytes for a key, bypassing call accounting.
func (s *Store) Object(bucket core.BucketLocation, key string) ([]byte, bool) {
	data, ok := s.buckets[bucket.Name][key]
	return data, ok
}

// Len reports the number of objects in the bucket.
func (s *Store) Len(bucket core.BucketLocation) int {
	return len(s.buckets[bucket.Name])
}

// EnsureBucket creates the bucket if absent.
func (s *Store) EnsureBucket(_ context.Context, bucket core.BucketLocation) error {
	s.Counts.EnsureBucket++
	if s.buckets[bucket.Name] == nil {
		s.buckets[bucket.Name] = make(map[string][]byte)
	}
	return nil
}

// Put stores the object. Putting into a bucket that was never created
// fails with core.ErrNotExist, matching the remote store.
func (s *Store) Put(_ context.Context, loc core.ObjectLocation, data []byte) error {
	s.Counts.Put++
	if s.PutErr != nil {
		return s.PutErr
	}
	b := s.buckets[loc.Bucket.Name]
	if b == nil {
		return core.ErrNotExist
	}
	b[loc.Key] = append([]byte(nil), data...)
	return nil
}

// Get returns the stored object or core.ErrNotExist.
func (s *Store) Get(_ context.Context, loc core.ObjectLocation) ([]byte, error) {
	s.Counts.Get++
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	data, ok := s.buckets[loc.Bucket.Name][loc.Key]
	if !ok {
		return nil, core.ErrNotExist
	}
	return append([]byte(nil), data...), nil
}

// Delete removes the object if present. Missing objects are silent.
func (s *Store) Delete(_ context.Context, loc core.ObjectLocation) error {
	s.Counts.Delete++
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	delete(s.buckets[loc.Bucket.Name], loc.Key)
	return nil
}

// ListPage returns a sorted page of keys under prefix, resuming after
// the continuation token.
func (s *Store) ListPage(_ context.Context, bucket core.BucketLocation, prefix, token string, maxKeys int) (core.Page, error) {
	s.Counts.ListPage++
	if s.ListErr != nil {
		return core.Page{}, s.ListErr
	}

	var keys []string
	for key := range s.buckets[bucket.Name] {
		if strings.HasPrefix(key, prefix) && key > token {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	limit := maxKeys
	if s.PageSize > 0 && s.PageSize < limit {
		limit = s.PageSize
	}

	page := core.Page{}
	if len(keys) > limit {
		page.Keys = keys[:limit]
		page.NextToken = keys[limit-1]
	} else {
		page.Keys = keys
	}
	return page, nil
}

// Compile-time interface check.
var _ core.ObjectStore = (*Store)(nil)
