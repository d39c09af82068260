package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_SetGet(t *testing.T) {
	c := New[[]string](time.Minute)

	_, ok := c.Get("q")
	assert.False(t, ok)

	c.Set("q", []string{"a", "b"})
	got, ok := c.Get("q")
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestCache_Expiry(t *testing.T) {
	c := New[int](10 * time.Millisecond)
	c.Set("k", 42)

	time.Sleep(20 * time.Millisecond)
	_, ok := c.Get("k")
	assert.False(t, ok)
}
