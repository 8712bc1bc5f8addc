package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Muhol/Olabs-sub000/internal/dto"
	"github.com/Muhol/Olabs-sub000/pkg/redis"
)

const weekCachePrefix = "timetable:week:"

// WeekViewCache 分流周视图缓存
// 任何时段变更都必须使对应分流失效；缓存故障只记日志，不影响主流程。
// 分流、科目由外部模块修改或删除时不会触发失效，缓存最长滞后 week_cache_ttl。
type WeekViewCache interface {
	Get(ctx context.Context, streamID string) (*dto.WeekViewResponse, bool)
	Set(ctx context.Context, streamID string, view *dto.WeekViewResponse)
	Invalidate(ctx context.Context, streamIDs ...string)
	InvalidateAll(ctx context.Context)
}

// NewWeekViewCache rdb 为 nil（Redis 未启用或连接失败）时返回空实现
func NewWeekViewCache(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) WeekViewCache {
	if rdb == nil || ttl <= 0 {
		return noopWeekViewCache{}
	}
	return &redisWeekViewCache{rdb: rdb, ttl: ttl, logger: logger}
}

type redisWeekViewCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func (c *redisWeekViewCache) Get(ctx context.Context, streamID string) (*dto.WeekViewResponse, bool) {
	var view dto.WeekViewResponse
	if err := c.rdb.GetJSON(ctx, weekCachePrefix+streamID, &view); err != nil {
		if !errors.Is(err, redis.ErrCacheMiss) {
			c.logger.Warn("读取周视图缓存失败", zap.String("stream_id", streamID), zap.Error(err))
		}
		return nil, false
	}
	return &view, true
}

func (c *redisWeekViewCache) Set(ctx context.Context, streamID string, view *dto.WeekViewResponse) {
	if err := c.rdb.SetJSON(ctx, weekCachePrefix+streamID, view, c.ttl); err != nil {
		c.logger.Warn("写入周视图缓存失败", zap.String("stream_id", streamID), zap.Error(err))
	}
}

func (c *redisWeekViewCache) Invalidate(ctx context.Context, streamIDs ...string) {
	keys := make([]string, 0, len(streamIDs))
	for _, id := range streamIDs {
		keys = append(keys, weekCachePrefix+id)
	}
	if err := c.rdb.Delete(ctx, keys...); err != nil {
		c.logger.Warn("周视图缓存失效失败", zap.Strings("stream_ids", streamIDs), zap.Error(err))
	}
}

func (c *redisWeekViewCache) InvalidateAll(ctx context.Context) {
	if _, err := c.rdb.DeleteByPattern(ctx, weekCachePrefix+"*"); err != nil {
		c.logger.Warn("清空周视图缓存失败", zap.Error(err))
	}
}

type noopWeekViewCache struct{}

func (noopWeekViewCache) Get(context.Context, string) (*dto.WeekViewResponse, bool) { return nil, false }
func (noopWeekViewCache) Set(context.Context, string, *dto.WeekViewResponse)       {}
func (noopWeekViewCache) Invalidate(context.Context, ...string)                    {}
func (noopWeekViewCache) InvalidateAll(context.Context)                            {}

// ────────────────────── 批量失效 ──────────────────────

type invalidationBatchKey struct{}

// invalidationBatch 批量操作期间收集待失效的分流，结束时统一失效一次
type invalidationBatch struct {
	cache WeekViewCache
	ids   []string
	seen  map[string]struct{}
}

// withInvalidationBatch 返回挂载了收集器的 ctx，调用方负责在结束时 flush
func withInvalidationBatch(ctx context.Context) (context.Context, *invalidationBatch) {
	b := &invalidationBatch{seen: make(map[string]struct{})}
	return context.WithValue(ctx, invalidationBatchKey{}, b), b
}

// invalidateStream ctx 上有收集器时只登记，否则立即失效
func invalidateStream(ctx context.Context, cache WeekViewCache, streamID string) {
	b, ok := ctx.Value(invalidationBatchKey{}).(*invalidationBatch)
	if !ok {
		cache.Invalidate(ctx, streamID)
		return
	}
	b.cache = cache
	if _, dup := b.seen[streamID]; dup {
		return
	}
	b.seen[streamID] = struct{}{}
	b.ids = append(b.ids, streamID)
}

func (b *invalidationBatch) flush(ctx context.Context) {
	if b.cache == nil || len(b.ids) == 0 {
		return
	}
	b.cache.Invalidate(ctx, b.ids...)
}
