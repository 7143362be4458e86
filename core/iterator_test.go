package core_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MartinHowarth/s3os/core"
	"github.com/MartinHowarth/s3os/storetest"
)

// drain collects every key the iterator yields.
func drain(t *testing.T, it *core.KeyIterator) []string {
	t.Helper()

	var keys []string
	for {
		key, ok, err := it.Next(context.Background())
		require.NoError(t, err)
		if !ok {
			return keys
		}
		keys = append(keys, key)
	}
}

func TestKeyIterator(t *testing.T) {
	bucket := core.DefaultBucket()

	t.Run("walks multiple pages in order", func(t *testing.T) {
		store := storetest.New()
		store.PageSize = 2
		for i := 0; i < 5; i++ {
			store.Seed(bucket, fmt.Sprintf("pre/%d", i), []byte("v"))
		}

		keys := drain(t, core.NewKeyIterator(store, bucket, "pre/"))

		assert.Equal(t, []string{"pre/0", "pre/1", "pre/2", "pre/3", "pre/4"}, keys)
		// 5 keys at 2 per page needs a third page to hit the end.
		assert.Equal(t, 3, store.Counts.ListPage)
	})

	t.Run("fetches pages lazily", func(t *testing.T) {
		store := storetest.New()
		store.PageSize = 1
		store.Seed(bucket, "pre/a", []byte("v"))
		store.Seed(bucket, "pre/b", []byte("v"))

		it := core.NewKeyIterator(store, bucket, "pre/")
		assert.Equal(t, 0, store.Counts.ListPage)

		_, ok, err := it.Next(context.Background())
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 1, store.Counts.ListPage)
	})

	t.Run("empty listing is exhausted immediately", func(t *testing.T) {
		store := storetest.New()

		it := core.NewKeyIterator(store, bucket, "pre/")
		key, ok, err := it.Next(context.Background())
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, key)
	})

	t.Run("filters by prefix", func(t *testing.T) {
		store := storetest.New()
		store.Seed(bucket, "pre/a", []byte("v"))
		store.Seed(bucket, "other/b", []byte("v"))

		keys := drain(t, core.NewKeyIterator(store, bucket, "pre/"))
		assert.Equal(t, []string{"pre/a"}, keys)
	})

	t.Run("propagates listing errors and stays spent", func(t *testing.T) {
		store := storetest.New()
		store.Seed(bucket, "pre/a", []byte("v"))
		boom := errors.New("boom")
		store.ListErr = boom

		it := core.NewKeyIterator(store, bucket, "pre/")
		_, _, err := it.Next(context.Background())
		require.ErrorIs(t, err, boom)

		// A spent iterator reports exhaustion without further calls.
		store.ListErr = nil
		_, ok, err := it.Next(context.Background())
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, 1, store.Counts.ListPage)
	})
}
