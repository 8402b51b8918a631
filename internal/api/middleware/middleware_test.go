package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gastroguide/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, SessionID(c)) })
	r.POST("/echo", func(c *gin.Context) {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		c.JSON(http.StatusOK, body)
	})
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	r.GET("/deadline", func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		c.JSON(http.StatusOK, gin.H{"deadline": ok})
	})
	return r
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) common.ErrorResponse {
	t.Helper()
	var resp common.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestSession(t *testing.T) {
	r := newEngine(Session(3600))

	t.Run("should issue a new id", func(t *testing.T) {
		w := do(r, httptest.NewRequest(http.MethodGet, "/ping", nil))

		id := w.Body.String()
		assert.Len(t, id, 36)
		assert.Equal(t, id, w.Header().Get(SessionHeader))
		assert.Contains(t, w.Header().Get("Set-Cookie"), SessionCookie+"="+id)
	})

	t.Run("should prefer the header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(SessionHeader, "from-header")
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "from-cookie"})

		assert.Equal(t, "from-header", do(r, req).Body.String())
	})

	t.Run("should fall back to the cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "from-cookie"})

		assert.Equal(t, "from-cookie", do(r, req).Body.String())
	})

	t.Run("should ignore malformed ids", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(SessionHeader, "../../etc/passwd")

		id := do(r, req).Body.String()
		assert.NotEqual(t, "../../etc/passwd", id)
		assert.Len(t, id, 36)
	})
}

func TestRateLimit(t *testing.T) {
	r := newEngine(RateLimit(2, time.Minute))

	assert.Equal(t, http.StatusOK, do(r, httptest.NewRequest(http.MethodGet, "/ping", nil)).Code)
	assert.Equal(t, http.StatusOK, do(r, httptest.NewRequest(http.MethodGet, "/ping", nil)).Code)

	w := do(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Equal(t, common.ErrCodeTooManyRequests, decodeError(t, w).Code)
}

func TestNewRateLimiterUnlimited(t *testing.T) {
	l := NewRateLimiter(0, time.Minute)
	for i := 0; i < 100; i++ {
		require.True(t, l.Allow())
	}
}

func TestDeduplication(t *testing.T) {
	d := NewDeduplicator(time.Minute)
	t.Cleanup(d.Close)
	r := newEngine(Session(0), d.Middleware())

	post := func(session, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(SessionHeader, session)
		return do(r, req)
	}

	first := post("s1", `{"ingredients":"rice"}`)
	require.Equal(t, http.StatusOK, first.Code)
	assert.JSONEq(t, `{"ingredients":"rice"}`, first.Body.String())

	dup := post("s1", `{"ingredients":"rice"}`)
	assert.Equal(t, http.StatusTooManyRequests, dup.Code)

	assert.Equal(t, http.StatusOK, post("s1", `{"ingredients":"eggs"}`).Code)
	assert.Equal(t, http.StatusOK, post("s2", `{"ingredients":"rice"}`).Code)

	// 失敗的請求可立即重試
	assert.Equal(t, http.StatusBadRequest, post("s3", `not json`).Code)
	assert.Equal(t, http.StatusBadRequest, post("s3", `not json`).Code)

	// GET 不受影響
	assert.Equal(t, http.StatusOK, do(r, httptest.NewRequest(http.MethodGet, "/ping", nil)).Code)
	assert.Equal(t, http.StatusOK, do(r, httptest.NewRequest(http.MethodGet, "/ping", nil)).Code)
}

func TestDeduplicatorWindow(t *testing.T) {
	d := NewDeduplicator(10 * time.Millisecond)
	t.Cleanup(d.Close)

	now := time.Now()
	assert.False(t, d.seen("k", now))
	assert.True(t, d.seen("k", now.Add(5*time.Millisecond)))
	assert.False(t, d.seen("k", now.Add(50*time.Millisecond)))
}

func TestBodySizeLimit(t *testing.T) {
	r := newEngine(BodySizeLimit(16))

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"ingredients":"chicken, rice, broccoli"}`))
	w := do(r, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, common.ErrCodeRequestTooLarge, decodeError(t, w).Code)

	req = httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"a":"b"}`))
	assert.Equal(t, http.StatusOK, do(r, req).Code)
}

func TestRecovery(t *testing.T) {
	r := newEngine(Recovery())

	w := do(r, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, common.ErrCodeInternalError, decodeError(t, w).Code)
}

func TestTimeout(t *testing.T) {
	r := newEngine(Timeout(time.Second))
	assert.JSONEq(t, `{"deadline":true}`, do(r, httptest.NewRequest(http.MethodGet, "/deadline", nil)).Body.String())

	r = newEngine(Timeout(0))
	assert.JSONEq(t, `{"deadline":false}`, do(r, httptest.NewRequest(http.MethodGet, "/deadline", nil)).Body.String())
}

func TestLogger(t *testing.T) {
	r := newEngine(Logger(), Session(0))

	w := do(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
