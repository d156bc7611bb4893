package cache

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreAndGet(t *testing.T) {
	c := New[string]()
	c.Store("a", "one")
	c.Store("b", "two")

	require.Equal(t, "one", c.Get("a"))
	require.Equal(t, "two", c.Get("b"))
	require.Equal(t, "", c.Get("missing"))
}

func TestRemove(t *testing.T) {
	c := New[int]()
	c.Store("a", 1)
	c.Remove("a")
	require.Zero(t, c.Get("a"))
}

func TestGetAll(t *testing.T) {
	c := New[int]()
	c.Store("a", 1)
	c.Store("b", 2)

	require.ElementsMatch(t, []string{"a", "b"}, c.GetKeys())
	require.ElementsMatch(t, []int{1, 2}, c.GetAll())
}
