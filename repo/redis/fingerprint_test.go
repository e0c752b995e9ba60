package redis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildCacheKey_StableForSameParams(t *testing.T) {
	key1 := BuildCacheKey("blogs", map[string]any{
		"page":     1,
		"pageSize": 10,
		"category": "tech",
	})
	key2 := BuildCacheKey("blogs", map[string]any{
		"category": "tech",
		"pageSize": 10,
		"page":     1,
	})

	assert.Equal(t, key1, key2, "语义相同的参数集合必须命中同一个键")
}

func TestBuildCacheKey_DifferentParamsDifferentKeys(t *testing.T) {
	base := BuildCacheKey("blogs", map[string]any{"page": 1, "search": "go"})
	differentValue := BuildCacheKey("blogs", map[string]any{"page": 2, "search": "go"})
	differentParam := BuildCacheKey("blogs", map[string]any{"page": 1, "search": "rust"})

	assert.NotEqual(t, base, differentValue)
	assert.NotEqual(t, base, differentParam)
}

func TestBuildCacheKey_PrefixAndShape(t *testing.T) {
	key := BuildCacheKey("blogs", map[string]any{"page": 1})

	assert.True(t, strings.HasPrefix(key, "blogs:"))
	// "<prefix>:" 之后是 md5 的 32 位十六进制指纹
	assert.Len(t, strings.TrimPrefix(key, "blogs:"), 32)
}

func TestBuildCacheKey_EmptyParams(t *testing.T) {
	key1 := BuildCacheKey("blogs", map[string]any{})
	key2 := BuildCacheKey("blogs", map[string]any{})

	assert.Equal(t, key1, key2)
	assert.True(t, strings.HasPrefix(key1, "blogs:"))
}
