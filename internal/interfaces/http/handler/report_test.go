package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	reportapp "github.com/merchreport/backend/internal/application/report"
	"github.com/merchreport/backend/internal/domain/report"
	"github.com/merchreport/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// stubMerchandiseRepo is a canned-response repository for handler tests.
type stubMerchandiseRepo struct {
	rows      []report.MerchandiseRow
	names     map[string]string
	lastQuery report.AggregateQuery
}

func (s *stubMerchandiseRepo) AggregateSales(ctx context.Context, q report.AggregateQuery) ([]report.MerchandiseRow, error) {
	s.lastQuery = q
	return s.rows, nil
}

func (s *stubMerchandiseRepo) ProductNameBySKU(ctx context.Context, sku string) (string, error) {
	return s.names[sku], nil
}

func newReportTestRouter(repo report.MerchandiseRepository) *gin.Engine {
	svc := reportapp.NewMerchandiseReportService(repo, nil)
	h := NewMerchandiseReportHandler(svc)

	engine := gin.New()
	api := engine.Group("/api/v1")
	h.RegisterRoutes(api)
	return engine
}

func gridURL(params map[string][]string) string {
	q := url.Values{}
	for key, values := range params {
		for _, v := range values {
			q.Add(key, v)
		}
	}
	return "/api/v1/reports/merchandise?" + q.Encode()
}

func TestMerchandiseReportHandlerGridData(t *testing.T) {
	first := time.Date(2025, 1, 3, 9, 0, 0, 0, time.UTC)
	last := time.Date(2025, 1, 20, 17, 30, 0, 0, time.UTC)

	t.Run("returns the grid envelope", func(t *testing.T) {
		repo := &stubMerchandiseRepo{
			rows: []report.MerchandiseRow{
				{SKU: "SKU-1", ProductName: "Widget", UnitsSold: 5, UnitsRefunded: 1,
					StaffMembers: "Alice", FirstSaleAt: &first, LastSaleAt: &last},
			},
		}
		engine := newReportTestRouter(repo)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, gridURL(map[string][]string{
			"filters[created_at][from]": {"2025-01-01"},
			"filters[created_at][to]":   {"2025-01-31"},
			"filters[skus]":             {"SKU-1"},
		}), nil)
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp reportapp.GridDataResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.TotalRecords)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, 1, resp.Items[0].RowID)
		assert.Equal(t, "SKU-1", resp.Items[0].SKU)
		assert.Equal(t, int64(5), resp.Items[0].Sales)
		assert.Equal(t, "2025-01-03 09:00:00", resp.Items[0].FirstSaleDate)
	})

	t.Run("incomplete filters yield an empty grid, not an error", func(t *testing.T) {
		repo := &stubMerchandiseRepo{}
		engine := newReportTestRouter(repo)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, gridURL(map[string][]string{
			"filters[created_at][from]": {"2025-01-01"},
		}), nil)
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp reportapp.GridDataResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Zero(t, resp.TotalRecords)
		assert.Empty(t, resp.Items)
	})

	t.Run("date too short to be a date degrades to an empty grid", func(t *testing.T) {
		repo := &stubMerchandiseRepo{}
		engine := newReportTestRouter(repo)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, gridURL(map[string][]string{
			"filters[created_at][from]": {"garbage"},
			"filters[created_at][to]":   {"2025-01-31"},
			"filters[skus]":             {"SKU-1"},
		}), nil)
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp reportapp.GridDataResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Zero(t, resp.TotalRecords)
		assert.Empty(t, resp.Items)
	})

	t.Run("huge page number yields an empty page, not an error", func(t *testing.T) {
		repo := &stubMerchandiseRepo{}
		engine := newReportTestRouter(repo)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, gridURL(map[string][]string{
			"filters[created_at][from]": {"2025-01-01"},
			"filters[created_at][to]":   {"2025-01-31"},
			"filters[skus]":             {"SKU-1"},
			"paging[current]":           {"4611686018427387904"},
		}), nil)
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp reportapp.GridDataResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.TotalRecords)
		assert.Empty(t, resp.Items)
	})

	t.Run("repeated sku params are all collected", func(t *testing.T) {
		repo := &stubMerchandiseRepo{}
		engine := newReportTestRouter(repo)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, gridURL(map[string][]string{
			"filters[created_at][from]": {"2025-01-01"},
			"filters[created_at][to]":   {"2025-01-31"},
			"filters[skus]":             {"%A%", "B"},
		}), nil)
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"A", "B"}, repo.lastQuery.SKUs)
	})

	t.Run("staff filter and paging are forwarded", func(t *testing.T) {
		repo := &stubMerchandiseRepo{}
		engine := newReportTestRouter(repo)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, gridURL(map[string][]string{
			"filters[created_at][from]": {"2025-01-01"},
			"filters[created_at][to]":   {"2025-01-31"},
			"filters[skus]":             {"A,B,C"},
			"filters[staff_member]":     {"Dana"},
			"paging[pageSize]":          {"2"},
			"paging[current]":           {"2"},
		}), nil)
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Dana", repo.lastQuery.StaffMember)

		var resp reportapp.GridDataResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		// Three backfilled SKUs, page 2 of size 2 holds the last one.
		assert.Equal(t, 3, resp.TotalRecords)
		assert.Len(t, resp.Items, 1)
	})

	t.Run("dotted paging keys are accepted", func(t *testing.T) {
		repo := &stubMerchandiseRepo{}
		engine := newReportTestRouter(repo)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, gridURL(map[string][]string{
			"filters[created_at][from]": {"2025-01-01"},
			"filters[created_at][to]":   {"2025-01-31"},
			"filters[skus]":             {"A,B,C"},
			"paging.pageSize":           {"2"},
			"paging.current":            {"1"},
		}), nil)
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp reportapp.GridDataResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Items, 2)
	})
}

func TestMerchandiseReportHandlerExportCSV(t *testing.T) {
	t.Run("serves a CSV attachment", func(t *testing.T) {
		repo := &stubMerchandiseRepo{
			rows: []report.MerchandiseRow{
				{SKU: "SKU-1", ProductName: "Widget", UnitsSold: 5},
			},
		}
		engine := newReportTestRouter(repo)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/merchandise/export?"+
			"filters[created_at][from]=2025-01-01&filters[created_at][to]=2025-01-31&filters[skus]=SKU-1", nil)
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
		assert.Regexp(t, `attachment; filename=merchandise_report_\d{8}_\d{6}\.csv`,
			w.Header().Get("Content-Disposition"))
		assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte{0xEF, 0xBB, 0xBF}))
		assert.Contains(t, w.Body.String(), "SKU-1,Widget,5,0")
	})

	t.Run("incomplete filters export a header-only file", func(t *testing.T) {
		repo := &stubMerchandiseRepo{}
		engine := newReportTestRouter(repo)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/merchandise/export", nil)
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "SKU,Name,Sales,Refunds")
		assert.NotContains(t, w.Body.String(), "SKU-1")
	})
}
