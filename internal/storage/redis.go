package storage

import (
	"context"
	"fmt"
	"time"

	"resume-assist-go/internal/config"
	"resume-assist-go/internal/constants"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrNotFound key不存在时返回，包装底层的redis.Nil
var ErrNotFound = redis.Nil

var redisTracer = otel.Tracer("resume-assist-go/storage/redis")

// Redis 包装Redis客户端，提供去重、缓存和限额计数能力
type Redis struct {
	Client *redis.Client
	config *config.RedisConfig
}

// NewRedisAdapter 创建Redis客户端连接
func NewRedisAdapter(cfg *config.RedisConfig) (*Redis, error) {
	if cfg == nil {
		return nil, fmt.Errorf("Redis配置不能为空")
	}
	if cfg.Address == "" {
		return nil, fmt.Errorf("Redis地址不能为空")
	}

	opt := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,

		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	}
	if cfg.DialTimeoutSeconds > 0 {
		opt.DialTimeout = time.Duration(cfg.DialTimeoutSeconds) * time.Second
	}
	if cfg.ReadTimeoutSeconds > 0 {
		opt.ReadTimeout = time.Duration(cfg.ReadTimeoutSeconds) * time.Second
	}
	if cfg.WriteTimeoutSeconds > 0 {
		opt.WriteTimeout = time.Duration(cfg.WriteTimeoutSeconds) * time.Second
	}

	client := redis.NewClient(opt)

	// 注册OpenTelemetry追踪钩子
	if err := redisotel.InstrumentTracing(client); err != nil {
		return nil, fmt.Errorf("注册Redis追踪钩子失败: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("连接Redis失败: %w", err)
	}

	return &Redis{Client: client, config: cfg}, nil
}

// Close 关闭Redis连接
func (r *Redis) Close() error {
	return r.Client.Close()
}

//
// 上传去重
//

// RegisterFileMD5 将上传文件的MD5加入集合，返回是否为首次出现
func (r *Redis) RegisterFileMD5(ctx context.Context, md5sum string) (bool, error) {
	ctx, span := redisTracer.Start(ctx, "Redis.RegisterFileMD5",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("file.md5", md5sum)))
	defer span.End()

	added, err := r.Client.SAdd(ctx, constants.KeyFileMD5Set, md5sum).Result()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, fmt.Errorf("记录文件MD5失败: %w", err)
	}

	expireDays := r.config.MD5RecordExpireDays
	if expireDays <= 0 {
		expireDays = constants.UploadMD5ExpireDays
	}
	// 整个集合统一续期，单条记录不单独过期
	r.Client.Expire(ctx, constants.KeyFileMD5Set, time.Duration(expireDays)*24*time.Hour)

	span.SetStatus(codes.Ok, "")
	return added == 1, nil
}

// HasFileMD5 判断MD5是否已记录过
func (r *Redis) HasFileMD5(ctx context.Context, md5sum string) (bool, error) {
	exists, err := r.Client.SIsMember(ctx, constants.KeyFileMD5Set, md5sum).Result()
	if err != nil {
		return false, fmt.Errorf("查询文件MD5失败: %w", err)
	}
	return exists, nil
}

//
// 分析结果缓存
//

// GetCachedAnalysis 按结果类型和输入摘要读取缓存，未命中返回ErrNotFound
func (r *Redis) GetCachedAnalysis(ctx context.Context, resultType, digest string) ([]byte, error) {
	key := fmt.Sprintf(constants.KeyAnalysisCache, resultType, digest)
	data, err := r.Client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("读取分析缓存失败: %w", err)
	}
	return data, nil
}

// SetCachedAnalysis 写入分析结果缓存
func (r *Redis) SetCachedAnalysis(ctx context.Context, resultType, digest string, data []byte) error {
	key := fmt.Sprintf(constants.KeyAnalysisCache, resultType, digest)
	if err := r.Client.Set(ctx, key, data, constants.AnalysisCacheDuration).Err(); err != nil {
		return fmt.Errorf("写入分析缓存失败: %w", err)
	}
	return nil
}

//
// 每日用量计数
//

// IncrDailyUsage 累加用户当天用量并返回累加后的值，key在次日零点过期
func (r *Redis) IncrDailyUsage(ctx context.Context, userID, date string) (int64, error) {
	key := fmt.Sprintf(constants.KeyDailyUsage, userID, date)

	count, err := r.Client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("累加每日用量失败: %w", err)
	}
	if count == 1 {
		// 首次计数时设置过期时间到次日零点
		now := time.Now()
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).Add(24 * time.Hour)
		r.Client.ExpireAt(ctx, key, midnight)
	}
	return count, nil
}

// GetDailyUsage 查询用户当天用量，无记录返回0
func (r *Redis) GetDailyUsage(ctx context.Context, userID, date string) (int64, error) {
	key := fmt.Sprintf(constants.KeyDailyUsage, userID, date)
	count, err := r.Client.Get(ctx, key).Int64()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, fmt.Errorf("查询每日用量失败: %w", err)
	}
	return count, nil
}
