package core

import "context"

// KeyIterator lazily walks a prefix listing one page at a time, passing
// the continuation token forward until the store reports the final
// page. It never materializes more than one page of keys.
//
// Iterators are forward-only and not restartable; create a new one to
// walk the listing again. Not safe for concurrent use.
type KeyIterator struct {
	store  ObjectStore
	bucket BucketLocation
	prefix string

	token string
	buf   []string
	done  bool
}

// NewKeyIterator returns an iterator over all object keys under prefix
// in the given bucket. No remote call is made until Next.
func NewKeyIterator(store ObjectStore, bucket BucketLocation, prefix string) *KeyIterator {
	return &KeyIterator{store: store, bucket: bucket, prefix: prefix}
}

// Next returns the next key in the listing. The second return value is
// false once the listing is exhausted. After an error the iterator is
// spent and further calls report exhaustion.
func (it *KeyIterator) Next(ctx context.Context) (string, bool, error) {
	for len(it.buf) == 0 {
		if it.done {
			return "", false, nil
		}
		page, err := it.store.ListPage(ctx, it.bucket, it.prefix, it.token, DefaultPageSize)
		if err != nil {
			it.done = true
			return "", false, err
		}
		it.token = page.NextToken
		if it.token == "" {
			it.done = true
		}
		it.buf = page.Keys
	}

	key := it.buf[0]
	it.buf = it.buf[1:]
	return key, true, nil
}
