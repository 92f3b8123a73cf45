package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQueryCache(t *testing.T) {
	c := NewQueryCache[[]string](2, time.Hour)

	c.Set("a", []string{"x"})
	got, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, []string{"x"}, got)

	_, ok = c.Get("missing")
	assert.False(t, ok)

	// 超过容量时淘汰最久未使用的键
	c.Set("b", []string{"y"})
	c.Set("c", []string{"z"})
	assert.Equal(t, 2, c.Len())
}

func TestQueryCacheExpiry(t *testing.T) {
	c := NewQueryCache[int](8, 10*time.Millisecond)

	c.Set("k", 42)
	time.Sleep(30 * time.Millisecond)

	// 过期后视为未命中
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestHashIP(t *testing.T) {
	// 同一 IP 哈希稳定，不同 IP 不同
	assert.Equal(t, HashIP("1.2.3.4"), HashIP("1.2.3.4"))
	assert.NotEqual(t, HashIP("1.2.3.4"), HashIP("1.2.3.5"))
	assert.Len(t, HashIP("1.2.3.4"), 16)
}
