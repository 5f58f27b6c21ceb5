package redis

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/bookreview/internal/domain/book"
	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

// DefaultListCacheTTL 列表缓存兜底过期时间
// 正常失效靠版本号，TTL只是防止旧版本的key堆积
const DefaultListCacheTTL = 5 * time.Minute

// BookListCache 图书列表查询缓存
// 设计说明：
// 1. 缓存key由"精确的查询形状"（search/sort/order/page/per_page）
//    加一个全局版本号构成
// 2. 任何评论或图书写入都Bump版本号，旧版本的key从此不再被读到
//    ——缓存永远不会返回比它声称的更旧的页面
// 3. 缓存只是优化：任何Redis错误调用方都应降级为直查数据库
type BookListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBookListCache 创建图书列表缓存
func NewBookListCache(client *redis.Client) *BookListCache {
	return &BookListCache{
		client: client,
		ttl:    DefaultListCacheTTL,
	}
}

// key 由版本号+查询形状生成缓存key
// 查询形状做sha1只是为了key的长度可控，不承担安全职责
func (c *BookListCache) key(version int64, params book.ListParams) string {
	shape := fmt.Sprintf("%s|%s|%s|%d|%d",
		params.Search, params.SortBy, params.SortOrder, params.Page, params.PerPage)
	sum := sha1.Sum([]byte(shape))
	return fmt.Sprintf("books:list:v%d:%s", version, hex.EncodeToString(sum[:]))
}

// version 读取当前版本号，key不存在时视为0
func (c *BookListCache) version(ctx context.Context) (int64, error) {
	v, err := c.client.Get(ctx, "books:list:version").Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, apperrors.Wrap(err, "读取列表缓存版本失败")
	}
	return v, nil
}

// Get 按查询形状读取缓存页
// 未命中返回(nil, version, nil)，调用方回源数据库后用同一个version
// 回填（见Set）
func (c *BookListCache) Get(ctx context.Context, params book.ListParams) ([]byte, int64, error) {
	version, err := c.version(ctx)
	if err != nil {
		return nil, 0, err
	}

	data, err := c.client.Get(ctx, c.key(version, params)).Bytes()
	if err == redis.Nil {
		return nil, version, nil
	}
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "读取列表缓存失败")
	}

	return data, version, nil
}

// Set 把回源结果写到version对应的key下
// version必须是本次读取Get时拿到的那个，绝不能在这里重新读当前版本：
// 回源期间发生的写入会Bump版本号，旧数据如果落到新版本的key下，
// 读者就会拿到比缓存声称的更旧的页面。落在旧版本key下的数据
// 没有人再读，等TTL过期即可
func (c *BookListCache) Set(ctx context.Context, params book.ListParams, data []byte, version int64) error {
	if err := c.client.Set(ctx, c.key(version, params), data, c.ttl).Err(); err != nil {
		return apperrors.Wrap(err, "写入列表缓存失败")
	}

	return nil
}

// Invalidate 使全部列表缓存失效（评论/图书写入后调用）
// INCR版本号即可，旧key等TTL自然过期
func (c *BookListCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, "books:list:version").Err(); err != nil {
		return apperrors.Wrap(err, "列表缓存失效失败")
	}
	return nil
}
