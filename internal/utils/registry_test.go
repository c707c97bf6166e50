package utils

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry[string, int]()
	require.NoError(t, r.Register("a", 1))

	v, ok := r.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.True(t, r.Has("a"))
	assert.False(t, r.Has("b"))
	assert.Equal(t, 1, r.Size())
}

func TestRegistryValidatorRejects(t *testing.T) {
	r := NewRegistry[string, int]()
	noDupes := func(key string, _ int, items map[string]int) error {
		if _, exists := items[key]; exists {
			return fmt.Errorf("%q already registered", key)
		}
		return nil
	}

	require.NoError(t, r.RegisterWithValidator("a", 1, noDupes))
	err := r.RegisterWithValidator("a", 2, noDupes)
	require.Error(t, err)

	// The rejected value never lands.
	v, _ := r.Get("a")
	assert.Equal(t, 1, v)
}

func TestRegistryListAndForEach(t *testing.T) {
	r := NewRegistry[string, int]()
	r.Register("a", 1)
	r.Register("b", 2)

	assert.ElementsMatch(t, []string{"a", "b"}, r.List())

	sum := 0
	r.ForEach(func(_ string, v int) { sum += v })
	assert.Equal(t, 3, sum)
}
