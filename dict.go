package s3os

import (
	"context"
	"fmt"
	"maps"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/MartinHowarth/s3os/core"
)

// DictConfig holds configuration for a Dict.
type DictConfig struct {
	// ID namespaces this dict's keys within the bucket, so multiple
	// dicts can share one bucket without collision. Objects persisted by
	// a previous instance are reachable by reusing its ID. Defaults to a
	// freshly generated UUID.
	ID string

	// UseCache enables the local value cache. With the cache on, Get
	// only goes remote for keys not previously set or fetched by this
	// instance; with it off, every Get is a remote round trip. Mutations
	// always go remote either way. Defaults to true.
	UseCache bool

	// Bucket is the bucket all of this dict's objects live in. Defaults
	// to the default bucket.
	Bucket core.BucketLocation
}

// Prefix returns the remote key prefix for all items stored by this
// dict.
func (c DictConfig) Prefix() string {
	return c.ID + "/"
}

func (c DictConfig) validate() error {
	if c.ID == "" {
		return fmt.Errorf("%w: dict id cannot be empty", core.ErrInvalidConfig)
	}
	if c.Bucket.Name == "" {
		return fmt.Errorf("%w: bucket name cannot be empty", core.ErrInvalidConfig)
	}
	return nil
}

type dictOptions struct {
	config     DictConfig
	metricsReg prometheus.Registerer
}

// DictOption configures a Dict at construction time.
type DictOption func(*dictOptions)

// WithID sets the dict ID instead of generating one.
func WithID(id string) DictOption {
	return func(o *dictOptions) {
		o.config.ID = id
	}
}

// WithoutCache disables the local value cache.
func WithoutCache() DictOption {
	return func(o *dictOptions) {
		o.config.UseCache = false
	}
}

// WithBucket sets the bucket the dict stores its objects in.
func WithBucket(bucket core.BucketLocation) DictOption {
	return func(o *dictOptions) {
		o.config.Bucket = bucket
	}
}

// WithMetrics registers Prometheus counters for this dict's cache and
// remote operations with the given registerer.
func WithMetrics(reg prometheus.Registerer) DictOption {
	return func(o *dictOptions) {
		o.metricsReg = reg
	}
}

// DictStats reports local cache effectiveness. Always tracked, even
// without Prometheus metrics.
type DictStats struct {
	Hits   uint64
	Misses uint64
}

// Dict provides a mapping-like interface to objects stored under a
// shared key prefix in an object store.
//
// It deliberately exposes an explicit subset of mapping operations
// rather than claiming full map semantics, because two behaviors
// deviate from a native map: Delete of a missing key is silent success
// (the remote store cannot report whether anything was removed), and
// dropping a Dict never deletes remote state (use Clear).
//
// A Dict assumes a single logical owner issuing operations
// sequentially. It holds no locks; concurrent use must be synchronized
// externally.
type Dict struct {
	api     *API
	config  DictConfig
	cache   map[string]any // nil when caching is disabled
	stats   DictStats
	metrics *dictMetrics
}

// NewDict creates a Dict over the given API. Each entry of items is
// immediately persisted remotely via Set, regardless of the cache
// setting. A nil items map is valid and performs no remote calls.
func NewDict(ctx context.Context, api *API, items map[string]any, opts ...DictOption) (*Dict, error) {
	o := dictOptions{
		config: DictConfig{
			ID:       uuid.NewString(),
			UseCache: true,
			Bucket:   core.DefaultBucket(),
		},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.config.validate(); err != nil {
		return nil, err
	}

	d := &Dict{
		api:    api,
		config: o.config,
	}
	if o.config.UseCache {
		d.cache = make(map[string]any)
	}
	if o.metricsReg != nil {
		m, err := newDictMetrics(o.metricsReg, o.config.ID)
		if err != nil {
			return nil, err
		}
		d.metrics = m
	}

	for key, value := range items {
		if err := d.Set(ctx, key, value); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Config returns the dict's resolved configuration.
func (d *Dict) Config() DictConfig {
	return d.config
}

// Stats returns the cache hit/miss counters.
func (d *Dict) Stats() DictStats {
	return d.stats
}

// remoteKey prepends the dict's prefix so keys from different dicts
// sharing a bucket cannot collide.
func (d *Dict) remoteKey(key string) string {
	return d.config.Prefix() + key
}

// logicalKey strips the dict's prefix from a remote key, first
// occurrence only, and only if present at the start. A logical key that
// itself begins with the prefix round-trips with one copy of the prefix
// still attached, so the conversion is not injective for such keys.
func (d *Dict) logicalKey(remoteKey string) string {
	if rest, ok := strings.CutPrefix(remoteKey, d.config.Prefix()); ok {
		return rest
	}
	return remoteKey
}

func (d *Dict) location(key string) core.ObjectLocation {
	return core.ObjectLocation{Key: d.remoteKey(key), Bucket: d.config.Bucket}
}

// Set stores the value remotely and, when caching is enabled, mirrors
// it into the local cache.
func (d *Dict) Set(ctx context.Context, key string, value any) error {
	if err := d.api.Store(ctx, d.location(key), value); err != nil {
		return err
	}
	d.metrics.recordOp("store")

	if d.cache != nil {
		d.cache[key] = value
	}
	return nil
}

// Get returns the value for the key. A cache hit returns immediately
// with no remote call; a miss (or an uncached dict) fetches remotely
// and caches the fetched value. Absence is never cached: a missing
// remote object returns core.ErrNotExist every time.
func (d *Dict) Get(ctx context.Context, key string) (any, error) {
	if d.cache != nil {
		if value, ok := d.cache[key]; ok {
			d.stats.Hits++
			d.metrics.recordCacheHit()
			return value, nil
		}
		d.stats.Misses++
		d.metrics.recordCacheMiss()
	}

	value, err := d.api.Retrieve(ctx, d.location(key))
	if err != nil {
		return nil, err
	}
	d.metrics.recordOp("retrieve")

	if d.cache != nil {
		d.cache[key] = value
	}
	return value, nil
}

// Delete removes the key remotely and from the cache. The remote store
// cannot tell whether anything was actually removed, so a missing key
// is silent success in both layers.
func (d *Dict) Delete(ctx context.Context, key string) error {
	if err := d.api.Delete(ctx, d.location(key)); err != nil {
		return err
	}
	d.metrics.recordOp("delete")

	if d.cache != nil {
		delete(d.cache, key)
	}
	return nil
}

// GetAll discovers every object stored under this dict's prefix,
// retrieves each one, and returns the resulting mapping of logical keys
// to values. This is the only way to find keys persisted by a previous
// instance with the same ID.
//
// With caching enabled the result is merged into the cache additively:
// entries cached earlier for keys that no longer exist remotely are
// left in place.
func (d *Dict) GetAll(ctx context.Context) (map[string]any, error) {
	items := make(map[string]any)

	it := d.api.Keys(d.config.Bucket, d.config.Prefix())
	for {
		remote, ok, err := it.Next(ctx)
		if err != nil {
			return nil, fmt.Errorf("list %q: %w", d.config.Prefix(), err)
		}
		if !ok {
			break
		}

		value, err := d.api.Retrieve(ctx, core.ObjectLocation{Key: remote, Bucket: d.config.Bucket})
		if err != nil {
			return nil, err
		}
		items[d.logicalKey(remote)] = value
	}
	d.metrics.recordOp("list")

	if d.cache != nil {
		maps.Copy(d.cache, items)
	}
	return items, nil
}

// AsMap returns the dict contents as a plain map. With caching enabled
// this is a snapshot of the cache only, so keys never set or fetched by
// this instance are absent; use GetAll to force full population.
// Without caching it delegates to GetAll and is always authoritative.
func (d *Dict) AsMap(ctx context.Context) (map[string]any, error) {
	if d.cache != nil {
		return maps.Clone(d.cache), nil
	}
	return d.GetAll(ctx)
}

// Clear deletes every object stored under this dict's prefix and then
// empties the cache, cache setting notwithstanding, so no stale view
// survives. Zero remote objects is success.
func (d *Dict) Clear(ctx context.Context) error {
	it := d.api.Keys(d.config.Bucket, d.config.Prefix())
	for {
		remote, ok, err := it.Next(ctx)
		if err != nil {
			return fmt.Errorf("list %q: %w", d.config.Prefix(), err)
		}
		if !ok {
			break
		}

		if err := d.api.Delete(ctx, core.ObjectLocation{Key: remote, Bucket: d.config.Bucket}); err != nil {
			return err
		}
		d.metrics.recordOp("delete")
	}

	if d.cache != nil {
		clear(d.cache)
	}
	return nil
}

// Len reports the number of entries. Cached dicts count the local cache
// (which may lag the remote store); uncached dicts count remote
// objects.
func (d *Dict) Len(ctx context.Context) (int, error) {
	if d.cache != nil {
		return len(d.cache), nil
	}

	n := 0
	it := d.api.Keys(d.config.Bucket, d.config.Prefix())
	for {
		_, ok, err := it.Next(ctx)
		if err != nil {
			return 0, fmt.Errorf("list %q: %w", d.config.Prefix(), err)
		}
		if !ok {
			return n, nil
		}
		n++
	}
}
