package health

import (
	"context"
	"errors"
	"net/http"
	"runtime"
	"time"

	"gastroguide/internal/core/session"
	"gastroguide/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const readinessCheckID = "readiness-check"

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Model     string                 `json:"model"`
	Runtime   map[string]interface{} `json:"runtime"`
	Sessions  *session.Stats         `json:"sessions,omitempty"`
}

// Handler 健康檢查處理器
type Handler struct {
	version  string
	model    string
	sessions session.Store
}

// NewHandler 創建健康檢查處理器
func NewHandler(version, model string, sessions session.Store) *Handler {
	return &Handler{version: version, model: model, sessions: sessions}
}

// HealthCheck 健康檢查
func (h *Handler) HealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.version,
		Model:     h.model,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}

	if mem, ok := h.sessions.(*session.MemoryStore); ok {
		stats := mem.Stats()
		response.Sessions = &stats
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查：會話儲存必須可讀
func (h *Handler) ReadinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if _, err := h.sessions.Get(ctx, readinessCheckID); err != nil && !errors.Is(err, session.ErrNotFound) {
		common.LogWarn("會話儲存無法使用", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not_ready",
			"reason": "session store unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
