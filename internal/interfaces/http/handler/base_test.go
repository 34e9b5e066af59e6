package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/merchreport/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestGetRequestID(t *testing.T) {
	t.Run("from context", func(t *testing.T) {
		c, _ := newTestContext()
		c.Set("request_id", "ctx-id")

		assert.Equal(t, "ctx-id", getRequestID(c))
	})

	t.Run("from header when context empty", func(t *testing.T) {
		c, _ := newTestContext()
		c.Request.Header.Set("X-Request-ID", "header-id")

		assert.Equal(t, "header-id", getRequestID(c))
	})

	t.Run("empty when not set", func(t *testing.T) {
		c, _ := newTestContext()

		assert.Equal(t, "", getRequestID(c))
	})
}

func TestBaseHandlerError(t *testing.T) {
	t.Run("status derives from the error code", func(t *testing.T) {
		h := &BaseHandler{}
		c, w := newTestContext()
		c.Set("request_id", "req-1")

		h.Error(c, dto.ErrCodeCSRF, "rejected")

		assert.Equal(t, http.StatusForbidden, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeCSRF, resp.Error.Code)
		assert.Equal(t, "req-1", resp.Error.RequestID)
	})

	t.Run("unknown codes default to 500", func(t *testing.T) {
		h := &BaseHandler{}
		c, w := newTestContext()

		h.Error(c, "ERR_UNKNOWN", "boom")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("InternalError responds 500", func(t *testing.T) {
		h := &BaseHandler{}
		c, w := newTestContext()

		h.InternalError(c, "boom")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
