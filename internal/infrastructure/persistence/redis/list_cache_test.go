package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookreview/internal/domain/book"
)

// newTestCache 用miniredis起一个内存Redis
func newTestCache(t *testing.T) (*BookListCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewBookListCache(client), mr
}

func TestBookListCache_MissThenHit(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	params := book.ListParams{Search: "dune", SortBy: "rating", SortOrder: "desc", Page: 1, PerPage: 10}

	// 未命中
	data, version, err := cache.Get(ctx, params)
	require.NoError(t, err)
	assert.Nil(t, data)

	// 按Get时的版本写入后命中
	require.NoError(t, cache.Set(ctx, params, []byte(`{"list":[]}`), version))

	data, _, err = cache.Get(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"list":[]}`), data)
}

// 查询形状的任何一个维度变化都不能命中别的形状的缓存
func TestBookListCache_KeyIncludesQueryShape(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	base := book.ListParams{Search: "go", SortBy: "title", SortOrder: "asc", Page: 1, PerPage: 10}
	_, version, err := cache.Get(ctx, base)
	require.NoError(t, err)
	require.NoError(t, cache.Set(ctx, base, []byte("page1"), version))

	variants := []book.ListParams{
		{Search: "rust", SortBy: "title", SortOrder: "asc", Page: 1, PerPage: 10},
		{Search: "go", SortBy: "rating", SortOrder: "asc", Page: 1, PerPage: 10},
		{Search: "go", SortBy: "title", SortOrder: "desc", Page: 1, PerPage: 10},
		{Search: "go", SortBy: "title", SortOrder: "asc", Page: 2, PerPage: 10},
		{Search: "go", SortBy: "title", SortOrder: "asc", Page: 1, PerPage: 20},
	}

	for _, v := range variants {
		data, _, err := cache.Get(ctx, v)
		require.NoError(t, err)
		assert.Nil(t, data, "参数%+v不应命中base的缓存", v)
	}
}

// Invalidate后旧页面不可再读到（新评论写入后的一致性保证）
func TestBookListCache_InvalidateDropsStalePages(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	params := book.ListParams{SortBy: "title", SortOrder: "asc", Page: 1, PerPage: 10}
	_, version, err := cache.Get(ctx, params)
	require.NoError(t, err)
	require.NoError(t, cache.Set(ctx, params, []byte("stale"), version))

	require.NoError(t, cache.Invalidate(ctx))

	data, version, err := cache.Get(ctx, params)
	require.NoError(t, err)
	assert.Nil(t, data)

	// 失效后按新版本写入新数据正常命中
	require.NoError(t, cache.Set(ctx, params, []byte("fresh"), version))
	data, _, err = cache.Get(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, []byte("fresh"), data)
}

// 回源窗口内发生失效时，迟到的回填不能污染新版本
// 时序：读缓存未命中（拿到版本v）→ 评论写入Invalidate（版本变v+1）→
// 用v回填回源前算出的旧页面 → 后续读者必须未命中，而不是读到旧页面
func TestBookListCache_LateFillAfterInvalidateNotServed(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	params := book.ListParams{SortBy: "rating", SortOrder: "desc", Page: 1, PerPage: 10}

	data, version, err := cache.Get(ctx, params)
	require.NoError(t, err)
	require.Nil(t, data)

	// 回源期间有评论写入
	require.NoError(t, cache.Invalidate(ctx))

	// 迟到的回填：旧页面落在失效前的版本key下
	require.NoError(t, cache.Set(ctx, params, []byte("写入评论前算出的旧页面"), version))

	data, _, err = cache.Get(ctx, params)
	require.NoError(t, err)
	assert.Nil(t, data, "失效后的读者不能看到旧版本回填的页面")
}

func TestSessionStore_Blacklist(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewSessionStore(client)
	ctx := context.Background()

	in, err := store.IsInBlacklist(ctx, "tok-1")
	require.NoError(t, err)
	assert.False(t, in)

	require.NoError(t, store.AddToBlacklist(ctx, "tok-1", 0))

	in, err = store.IsInBlacklist(ctx, "tok-1")
	require.NoError(t, err)
	assert.True(t, in)
}
