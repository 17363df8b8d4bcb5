package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorageSetGet(t *testing.T) {
	s := NewMemoryStorage[string, int]()

	s.Set("a", 1)
	v, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = s.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, 1, s.Count())
}

func TestMemoryStorageDirtyTracking(t *testing.T) {
	s := NewMemoryStorage[string, int]()

	s.Set("a", 1)
	s.SetClean("b", 2)

	dirty := s.GetDirty()
	require.Len(t, dirty, 1)
	assert.Equal(t, 1, dirty["a"])

	s.ClearDirty([]string{"a"})
	assert.Empty(t, s.GetDirty())

	// Updating again re-marks the key dirty
	s.Set("a", 3)
	assert.Len(t, s.GetDirty(), 1)
}

func TestMemoryStorageDelete(t *testing.T) {
	s := NewMemoryStorage[string, int]()

	s.Set("a", 1)
	require.True(t, s.Delete("a"))
	assert.False(t, s.Delete("a"))
	assert.Empty(t, s.GetDirty())
	assert.Zero(t, s.Count())
}

func TestMemoryStorageForEach(t *testing.T) {
	s := NewMemoryStorage[string, int]()
	s.Set("a", 1)
	s.Set("b", 2)
	s.Set("c", 3)

	sum := 0
	s.ForEach(func(_ string, v int) bool {
		sum += v
		return true
	})
	assert.Equal(t, 6, sum)

	visited := 0
	s.ForEach(func(_ string, _ int) bool {
		visited++
		return false
	})
	assert.Equal(t, 1, visited)
}

func TestMemoryStorageGetAllValues(t *testing.T) {
	s := NewMemoryStorage[string, string]()
	s.Set("a", "x")
	s.Set("b", "y")

	values := s.GetAllValues()
	assert.ElementsMatch(t, []string{"x", "y"}, values)
}
