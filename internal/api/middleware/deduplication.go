package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gastroguide/internal/pkg/common"
)

const defaultDedupWindow = time.Second

// Deduplicator 拒絕在時間窗內重複送出的相同 POST 請求
type Deduplicator struct {
	window time.Duration

	mu       sync.Mutex
	requests map[string]time.Time

	stop      chan struct{}
	closeOnce sync.Once
}

// NewDeduplicator 創建去重器並啟動清理協程
func NewDeduplicator(window time.Duration) *Deduplicator {
	if window <= 0 {
		window = defaultDedupWindow
	}
	d := &Deduplicator{
		window:   window,
		requests: make(map[string]time.Time),
		stop:     make(chan struct{}),
	}
	go d.startCleanup(10 * window)
	return d
}

// startCleanup 定期移除過舊的指紋
func (d *Deduplicator) startCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			now := time.Now()
			d.mu.Lock()
			for k, t := range d.requests {
				if now.Sub(t) > d.window {
					delete(d.requests, k)
				}
			}
			d.mu.Unlock()
		case <-d.stop:
			return
		}
	}
}

// seen 記錄指紋；時間窗內已出現過時回傳 true
func (d *Deduplicator) seen(fingerprint string, now time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if last, ok := d.requests[fingerprint]; ok && now.Sub(last) <= d.window {
		return true
	}
	d.requests[fingerprint] = now
	return false
}

// forget 移除指紋；只在紀錄仍是同一次請求時才刪除
func (d *Deduplicator) forget(fingerprint string, at time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if last, ok := d.requests[fingerprint]; ok && last.Equal(at) {
		delete(d.requests, fingerprint)
	}
}

// Middleware 請求去重中間件，只處理 POST
func (d *Deduplicator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		bodyHash := ""
		if c.Request.Body != nil {
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				common.LogWarn("Failed to read request body", zap.Error(err))
				common.AbortWithError(c, common.ErrRequestTooLarge, false)
				return
			}
			hash := sha256.Sum256(body)
			bodyHash = hex.EncodeToString(hash[:])

			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}

		// 同一會話的相同請求才視為重複
		fingerprint := c.GetString(SessionContextKey) + ":" + c.Request.URL.Path + ":" + bodyHash

		now := time.Now()
		if d.seen(fingerprint, now) {
			common.LogInfo("重複請求已拒絕",
				zap.String("path", c.Request.URL.Path),
				zap.String("ip", c.ClientIP()),
			)
			common.AbortWithError(c, common.ErrTooManyRequests, false)
			return
		}

		c.Next()

		// 失敗的請求不佔用時間窗，使用者可立即重試
		if c.Writer.Status() >= http.StatusBadRequest {
			d.forget(fingerprint, now)
		}
	}
}

// Close 停止清理協程
func (d *Deduplicator) Close() {
	d.closeOnce.Do(func() { close(d.stop) })
}
