package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newCSRFTestRouter(cfg CSRFConfig) *gin.Engine {
	engine := gin.New()
	engine.Use(CSRFWithConfig(cfg))
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	engine.GET("/api/v1/reports/merchandise", ok)
	engine.GET("/api/v1/reports/merchandise/export", ok)
	engine.POST("/api/v1/reports/merchandise", ok)
	return engine
}

func TestCSRFWithConfig(t *testing.T) {
	cfg := DefaultCSRFConfig()
	cfg.ExemptPaths = []string{"/api/v1/reports/merchandise/export"}

	t.Run("safe methods pass without tokens", func(t *testing.T) {
		engine := newCSRFTestRouter(cfg)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/merchandise", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("exempt path passes any method", func(t *testing.T) {
		engine := newCSRFTestRouter(cfg)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/merchandise/export", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unsafe method without tokens is forbidden", func(t *testing.T) {
		engine := newCSRFTestRouter(cfg)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/merchandise", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("matching cookie and header pass", func(t *testing.T) {
		engine := newCSRFTestRouter(cfg)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/merchandise", nil)
		req.AddCookie(&http.Cookie{Name: cfg.CookieName, Value: "tok-123"})
		req.Header.Set(cfg.HeaderName, "tok-123")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("mismatched tokens are forbidden", func(t *testing.T) {
		engine := newCSRFTestRouter(cfg)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/merchandise", nil)
		req.AddCookie(&http.Cookie{Name: cfg.CookieName, Value: "tok-123"})
		req.Header.Set(cfg.HeaderName, "tok-456")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
