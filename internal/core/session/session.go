package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gastroguide/internal/core/recipe"
	"gastroguide/internal/infrastructure/config"
)

// ErrNotFound 會話不存在或已過期
var ErrNotFound = errors.New("session not found")

// Session 保存使用者最後一次生成的食譜
type Session struct {
	ID         string           `json:"id"`
	LastRecipe string           `json:"last_recipe"`
	Analysis   *recipe.Analysis `json:"analysis,omitempty"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// Store 會話儲存介面
type Store interface {
	// Get 取得會話，不存在時回傳 ErrNotFound
	Get(ctx context.Context, id string) (*Session, error)

	// Save 覆寫會話內容
	Save(ctx context.Context, s *Session) error

	// Close 釋放資源
	Close() error
}

// NewStore 依設定建立會話儲存
func NewStore(ctx context.Context, cfg *config.SessionConfig) (Store, error) {
	switch cfg.Backend {
	case config.SessionBackendMemory:
		return NewMemoryStore(cfg), nil
	case config.SessionBackendRedis:
		return NewRedisStore(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown session backend: %s", cfg.Backend)
	}
}
