package credential

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore(t *testing.T) {
	t.Run("starts empty", func(t *testing.T) {
		s := NewStore()

		key, ok := s.Lookup()
		assert.False(t, ok)
		assert.Empty(t, key)
	})

	t.Run("set and clear", func(t *testing.T) {
		s := NewStore()

		s.Set("  AIza-test \n")
		key, ok := s.Lookup()
		assert.True(t, ok)
		assert.Equal(t, "AIza-test", key)

		s.Clear()
		assert.Empty(t, s.Get())
	})

	t.Run("blank key counts as unset", func(t *testing.T) {
		s := NewStore()
		s.Set("key")
		s.Set("   ")

		_, ok := s.Lookup()
		assert.False(t, ok)
	})
}

func TestStore_Concurrent(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Set("key")
		}()
		go func() {
			defer wg.Done()
			_ = s.Get()
		}()
	}
	wg.Wait()

	assert.Equal(t, "key", s.Get())
}
