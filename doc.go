// Package s3os provides a dictionary-like interface to objects stored
// in an S3-compatible object store.
//
// The package is layered. API is a stateless façade combining an object
// store client with a value codec into store/retrieve/delete operations
// keyed by object locations. Dict builds on API to expose a mapping
// keyed by plain strings, namespaced under a per-dict ID prefix so many
// dicts can share one bucket, with an optional local cache of values
// this dict instance has set or fetched.
//
// The cache is a cache, not a second source of truth: every mutating
// operation goes to the remote store, and the cache only ever reflects
// what this instance has itself observed. Concurrent writers are not
// coordinated; external mutation shows up as staleness.
//
// Basic usage:
//
//	store, err := minio.NewStore(minio.Config{Endpoint: ep, AccessKey: ak, SecretKey: sk})
//	if err != nil { ... }
//	api := s3os.New(store, codec.YAML{})
//	dict, err := s3os.NewDict(ctx, api, nil, s3os.WithID("my-app"))
//	if err != nil { ... }
//	err = dict.Set(ctx, "answer", 42)
package s3os
