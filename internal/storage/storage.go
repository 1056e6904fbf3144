package storage

import (
	"context"
	"fmt"

	"resume-assist-go/internal/config"
	"resume-assist-go/internal/logger"
)

// Storage 存储管理器，聚合所有存储相关依赖。
// SQLite是必选项，Redis和MinIO均为可选加速/归档组件，初始化失败只降级不中断。
type Storage struct {
	// 关系型数据库
	SQLite *SQLite

	// 键值存储（可选）
	Redis *Redis

	// 对象存储（可选）
	MinIO *MinIO
}

// NewStorage 创建存储管理器
func NewStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	if cfg == nil {
		return nil, fmt.Errorf("配置不能为空")
	}

	storage := &Storage{}
	var err error

	// SQLite必须初始化成功
	storage.SQLite, err = NewSQLite(&cfg.SQLite)
	if err != nil {
		return nil, fmt.Errorf("初始化SQLite失败: %w", err)
	}
	logger.Info().Str("path", cfg.SQLite.Path).Msg("SQLite初始化成功")

	// Redis可选
	if cfg.Redis.Address != "" {
		storage.Redis, err = NewRedisAdapter(&cfg.Redis)
		if err != nil {
			logger.Warn().Err(err).Msg("初始化Redis失败，去重和缓存将退化到SQLite")
			storage.Redis = nil
		} else {
			logger.Info().Str("address", cfg.Redis.Address).Msg("Redis初始化成功")
		}
	}

	// MinIO可选
	if cfg.MinIO.Endpoint != "" {
		storage.MinIO, err = NewMinIO(&cfg.MinIO)
		if err != nil {
			logger.Warn().Err(err).Msg("初始化MinIO失败，原始文件归档不可用")
			storage.MinIO = nil
		} else {
			logger.Info().Str("endpoint", cfg.MinIO.Endpoint).Msg("MinIO初始化成功")
		}
	}

	return storage, nil
}

// HasRedis Redis是否可用
func (s *Storage) HasRedis() bool {
	return s != nil && s.Redis != nil
}

// HasMinIO MinIO是否可用
func (s *Storage) HasMinIO() bool {
	return s != nil && s.MinIO != nil
}

// Close 关闭所有连接
func (s *Storage) Close() {
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			logger.Warn().Err(err).Msg("关闭Redis连接失败")
		}
	}
	if s.SQLite != nil {
		if err := s.SQLite.Close(); err != nil {
			logger.Warn().Err(err).Msg("关闭SQLite连接失败")
		}
	}
}
