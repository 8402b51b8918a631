package session

import (
	"context"
	"sync"
	"time"

	"gastroguide/internal/infrastructure/config"
	"gastroguide/internal/pkg/common"

	"go.uber.org/zap"
)

// MemoryStore 記憶體會話儲存，支援 TTL 與 LRU 淘汰
type MemoryStore struct {
	ttl     time.Duration
	maxSize int

	mu    sync.Mutex
	store map[string]memoryEntry
	stats memoryStats

	stop      chan struct{}
	closeOnce sync.Once
}

// memoryEntry 會話條目
type memoryEntry struct {
	session    Session
	expiresAt  time.Time
	lastAccess time.Time
}

// memoryStats 會話統計
type memoryStats struct {
	hits      int64
	misses    int64
	evictions int64
}

// Stats 會話統計快照
type Stats struct {
	Size      int   `json:"size"`
	MaxSize   int   `json:"max_size"`
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
}

// NewMemoryStore 創建記憶體會話儲存並啟動清理協程
func NewMemoryStore(cfg *config.SessionConfig) *MemoryStore {
	m := &MemoryStore{
		ttl:     cfg.TTL,
		maxSize: cfg.MaxSize,
		store:   make(map[string]memoryEntry),
		stop:    make(chan struct{}),
	}

	if cfg.CleanupInterval > 0 {
		go m.startCleanup(cfg.CleanupInterval)
	}

	common.LogInfo("會話儲存已初始化",
		zap.String("backend", config.SessionBackendMemory),
		zap.Int("最大容量", cfg.MaxSize),
		zap.Duration("存活時間", cfg.TTL),
		zap.Duration("清理間隔", cfg.CleanupInterval),
	)

	return m
}

// Get 取得會話
func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.store[id]
	if !ok {
		m.stats.misses++
		return nil, ErrNotFound
	}

	now := time.Now()
	if m.ttl > 0 && now.After(entry.expiresAt) {
		delete(m.store, id)
		m.stats.evictions++
		m.stats.misses++
		return nil, ErrNotFound
	}

	entry.lastAccess = now
	m.store[id] = entry
	m.stats.hits++

	s := entry.session
	return &s, nil
}

// Save 儲存會話；容量已滿時先清理過期項目，再淘汰最久未使用的項目
func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.store[s.ID]; !exists && m.maxSize > 0 {
		for len(m.store) >= m.maxSize {
			if m.cleanup() == 0 {
				m.evictLRU()
			}
		}
	}

	now := time.Now()
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = now
	}
	m.store[s.ID] = memoryEntry{
		session:    *s,
		expiresAt:  now.Add(m.ttl),
		lastAccess: now,
	}

	return nil
}

// startCleanup 定期清理過期會話，直到 Close
func (m *MemoryStore) startCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.mu.Lock()
			m.cleanup()
			m.mu.Unlock()
		case <-m.stop:
			return
		}
	}
}

// cleanup 清理過期會話，呼叫者需持有鎖
func (m *MemoryStore) cleanup() int {
	if m.ttl <= 0 {
		return 0
	}

	now := time.Now()
	count := 0
	for id, entry := range m.store {
		if now.After(entry.expiresAt) {
			delete(m.store, id)
			count++
			m.stats.evictions++
		}
	}

	if count > 0 {
		common.LogDebug("Cleaned up expired sessions",
			zap.Int("count", count),
			zap.Int64("total_evictions", m.stats.evictions),
			zap.Int("remaining_size", len(m.store)),
		)
	}

	return count
}

// evictLRU 淘汰最久未使用的會話，呼叫者需持有鎖
func (m *MemoryStore) evictLRU() {
	var oldestID string
	var oldestAccess time.Time

	for id, entry := range m.store {
		if oldestID == "" || entry.lastAccess.Before(oldestAccess) {
			oldestID = id
			oldestAccess = entry.lastAccess
		}
	}

	if oldestID != "" {
		delete(m.store, oldestID)
		m.stats.evictions++
		common.LogDebug("會話已淘汰(LRU)", zap.String("session_id", oldestID))
	}
}

// Stats 取得統計資訊
func (m *MemoryStore) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Stats{
		Size:      len(m.store),
		MaxSize:   m.maxSize,
		Hits:      m.stats.hits,
		Misses:    m.stats.misses,
		Evictions: m.stats.evictions,
	}
}

// Close 停止清理協程並清空會話
func (m *MemoryStore) Close() error {
	m.closeOnce.Do(func() {
		close(m.stop)
	})

	m.mu.Lock()
	defer m.mu.Unlock()

	common.LogInfo("會話儲存已關閉",
		zap.Int64("命中次數", m.stats.hits),
		zap.Int64("未命中次數", m.stats.misses),
		zap.Int64("淘汰次數", m.stats.evictions),
	)
	m.store = make(map[string]memoryEntry)
	return nil
}
