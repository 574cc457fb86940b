// Package storetest provides a conformance suite for kvstore.Store
// implementations.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/hupe1980/flatfa/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises the Store contract against s.
func Run(t *testing.T, s kvstore.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("GetMissing", func(t *testing.T) {
		_, err := s.Get(ctx, "ns-a", "nope")
		assert.ErrorIs(t, err, kvstore.ErrNotFound)
	})

	t.Run("PutGetDelete", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "ns-a", "idx/chr1", []byte{1, 2, 3}))
		v, err := s.Get(ctx, "ns-a", "idx/chr1")
		require.NoError(t, err)
		assert.Equal(t, []byte{1, 2, 3}, v)

		require.NoError(t, s.Put(ctx, "ns-a", "idx/chr1", []byte{4}))
		v, err = s.Get(ctx, "ns-a", "idx/chr1")
		require.NoError(t, err)
		assert.Equal(t, []byte{4}, v)

		_, err = s.Get(ctx, "ns-b", "idx/chr1")
		assert.ErrorIs(t, err, kvstore.ErrNotFound, "namespaces are isolated")

		require.NoError(t, s.Delete(ctx, "ns-a", "idx/chr1"))
		_, err = s.Get(ctx, "ns-a", "idx/chr1")
		assert.ErrorIs(t, err, kvstore.ErrNotFound)
		require.NoError(t, s.Delete(ctx, "ns-a", "idx/chr1"), "deleting a missing key")
	})

	t.Run("Scan", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "ns-c", "idx/b", []byte("2")))
		require.NoError(t, s.Put(ctx, "ns-c", "idx/a", []byte("1")))
		require.NoError(t, s.Put(ctx, "ns-c", "meta/commit", []byte("x")))
		require.NoError(t, s.Put(ctx, "ns-d", "idx/z", []byte("9")))

		got := map[string]string{}
		err := s.Scan(ctx, "ns-c", "idx/", func(key string, value []byte) error {
			got[key] = string(value)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"idx/a": "1", "idx/b": "2"}, got)

		n := 0
		err = s.Scan(ctx, "ns-c", "", func(string, []byte) error {
			n++
			return kvstore.ErrStopScan
		})
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		boom := errors.New("boom")
		err = s.Scan(ctx, "ns-c", "idx/", func(string, []byte) error { return boom })
		assert.ErrorIs(t, err, boom)
	})
}
