package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gastroguide/internal/infrastructure/config"
	"gastroguide/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const redisKeyPrefix = "gastroguide:session:"

// RedisStore 以 Redis 保存會話
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore 創建 Redis 會話儲存並測試連線
func NewRedisStore(ctx context.Context, cfg *config.SessionConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("會話儲存已初始化",
		zap.String("backend", config.SessionBackendRedis),
		zap.String("addr", cfg.Redis.Addr),
		zap.Duration("存活時間", cfg.TTL),
	)

	return NewRedisStoreWithClient(client, cfg.TTL), nil
}

// NewRedisStoreWithClient 以既有連線建立會話儲存
func NewRedisStoreWithClient(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Get 取得會話
func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := s.client.Get(ctx, redisKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var sess Session
	if err := common.ParseJSONBytes(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &sess, nil
}

// Save 覆寫會話並重設 TTL
func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	if sess.UpdatedAt.IsZero() {
		sess.UpdatedAt = time.Now()
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.client.Set(ctx, redisKey(sess.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Close 關閉 Redis 連線
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func redisKey(id string) string {
	return redisKeyPrefix + id
}
