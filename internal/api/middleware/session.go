package middleware

import (
	"net/http"
	"regexp"

	"gastroguide/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

const (
	// SessionHeader 會話識別標頭
	SessionHeader = "X-Session-ID"
	// SessionCookie 會話識別 cookie
	SessionCookie = "gg_session"
	// SessionContextKey gin.Context 中的會話 ID
	SessionContextKey = "session_id"
)

var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// Session 解析會話 ID：標頭優先，其次 cookie，都沒有時發新的 UUID
func Session(maxAge int) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if !sessionIDPattern.MatchString(id) {
			id, _ = c.Cookie(SessionCookie)
		}
		if !sessionIDPattern.MatchString(id) {
			id = common.GenerateUUID()
		}

		c.Set(SessionContextKey, id)
		c.Header(SessionHeader, id)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, id, maxAge, "/", "", false, true)

		c.Next()
	}
}

// SessionID 取得目前請求的會話 ID
func SessionID(c *gin.Context) string {
	return c.GetString(SessionContextKey)
}
