package cost

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/konseloradiksi/soapgen/internal/cache"
	domainErrors "github.com/konseloradiksi/soapgen/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*cache.Cache, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "cache")
	c, err := cache.NewCache(dir, time.Hour)
	require.NoError(t, err)
	return c, dir
}

func TestCachedCounter_CountTokens(t *testing.T) {
	t.Run("counts once per prompt", func(t *testing.T) {
		c, _ := newTestCache(t)
		counter := new(mockTokenCounter)
		counter.On("CountTokens", mock.Anything, "key", "prompt").Return(321, nil).Once()

		cached := NewCachedCounter(counter, c, "gemini-2.5-flash")

		first, err := cached.CountTokens(context.Background(), "key", "prompt")
		require.NoError(t, err)
		second, err := cached.CountTokens(context.Background(), "key", "prompt")
		require.NoError(t, err)

		assert.Equal(t, 321, first)
		assert.Equal(t, 321, second)
		counter.AssertNumberOfCalls(t, "CountTokens", 1)
	})

	t.Run("keys entries by model", func(t *testing.T) {
		c, _ := newTestCache(t)
		flash := new(mockTokenCounter)
		flash.On("CountTokens", mock.Anything, "key", "prompt").Return(10, nil)
		pro := new(mockTokenCounter)
		pro.On("CountTokens", mock.Anything, "key", "prompt").Return(12, nil)

		_, err := NewCachedCounter(flash, c, "gemini-2.5-flash").CountTokens(context.Background(), "key", "prompt")
		require.NoError(t, err)
		got, err := NewCachedCounter(pro, c, "gemini-2.5-pro").CountTokens(context.Background(), "key", "prompt")
		require.NoError(t, err)

		assert.Equal(t, 12, got)
		pro.AssertExpectations(t)
	})

	t.Run("does not store the prompt", func(t *testing.T) {
		c, dir := newTestCache(t)
		counter := new(mockTokenCounter)
		counter.On("CountTokens", mock.Anything, "key", "client reports cravings").Return(5, nil)

		_, err := NewCachedCounter(counter, c, "m").CountTokens(context.Background(), "key", "client reports cravings")
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
		require.NoError(t, err)
		assert.NotContains(t, string(data), "cravings")
	})

	t.Run("missing key skips the cache", func(t *testing.T) {
		c, _ := newTestCache(t)
		counter := new(mockTokenCounter)
		counter.On("CountTokens", mock.Anything, "", "prompt").Return(0, domainErrors.ErrMissingCredential)

		_, err := NewCachedCounter(counter, c, "m").CountTokens(context.Background(), "", "prompt")

		assert.True(t, errors.Is(err, domainErrors.ErrMissingCredential))
	})

	t.Run("errors are not cached", func(t *testing.T) {
		c, _ := newTestCache(t)
		counter := new(mockTokenCounter)
		counter.On("CountTokens", mock.Anything, "key", "prompt").Return(0, domainErrors.NewHTTPError(503, "")).Once()
		counter.On("CountTokens", mock.Anything, "key", "prompt").Return(7, nil).Once()

		cached := NewCachedCounter(counter, c, "m")
		_, err := cached.CountTokens(context.Background(), "key", "prompt")
		require.Error(t, err)

		got, err := cached.CountTokens(context.Background(), "key", "prompt")
		require.NoError(t, err)
		assert.Equal(t, 7, got)
	})
}
