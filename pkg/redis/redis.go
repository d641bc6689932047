package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Riya-jhankda/FitDotDodge/config"
)

// Client Redis 客户端封装
// 当前用于扫码接口限流与 QR 令牌解析缓存；后续可扩展分布式锁等场景
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── 限流 ──

// CheckRateLimit 固定窗口限流
// 窗口内首次请求创建计数键并设置过期，超过 limit 返回 false
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	n, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return n <= int64(limit), nil
}

// ── QR 令牌解析缓存 ──

const qrCachePrefix = "qr:resolve:"

// qrCacheKey 缓存键按学校隔离，跨租户查询命中不了他校条目
func qrCacheKey(schoolID, token string) string {
	return qrCachePrefix + schoolID + ":" + token
}

// CacheQRResolution 缓存 (学校, 令牌) → 用户 的解析结果
func (c *Client) CacheQRResolution(ctx context.Context, schoolID, token, userID string, ttl time.Duration) error {
	return c.rdb.Set(ctx, qrCacheKey(schoolID, token), userID, ttl).Err()
}

// GetQRResolution 查询缓存的解析结果，未命中返回空串
func (c *Client) GetQRResolution(ctx context.Context, schoolID, token string) (string, error) {
	v, err := c.rdb.Get(ctx, qrCacheKey(schoolID, token)).Result()
	if err == goredis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
