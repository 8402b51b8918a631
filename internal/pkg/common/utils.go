package common

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// AbortWithError 以統一格式回傳錯誤並中止請求
func AbortWithError(c *gin.Context, e *CustomError, withDetails bool) {
	if e.Err != nil {
		_ = c.Error(e.Err)
	}
	c.AbortWithStatusJSON(e.Status, e.Response(withDetails))
}
