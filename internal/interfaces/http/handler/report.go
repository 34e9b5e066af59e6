package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	reportapp "github.com/merchreport/backend/internal/application/report"
	"github.com/merchreport/backend/internal/domain/report"
)

// MerchandiseReportHandler exposes the merchandise-by-sales report: the grid
// data API and the CSV export download.
type MerchandiseReportHandler struct {
	BaseHandler
	service *reportapp.MerchandiseReportService
}

// NewMerchandiseReportHandler creates a new MerchandiseReportHandler
func NewMerchandiseReportHandler(service *reportapp.MerchandiseReportService) *MerchandiseReportHandler {
	return &MerchandiseReportHandler{service: service}
}

// reportQuery is the grid's query-string shape. The skus value may be a
// single comma-separated string or repeated params; the grid sends paging
// keys in bracket form, older grid builds in dotted form.
type reportQuery struct {
	DateFrom    string   `form:"filters[created_at][from]" binding:"omitempty,reportdate"`
	DateTo      string   `form:"filters[created_at][to]" binding:"omitempty,reportdate"`
	SKUs        []string `form:"filters[skus]"`
	StaffMember string   `form:"filters[staff_member]"`
	PageSize    int      `form:"paging[pageSize]"`
	Current     int      `form:"paging[current]"`
	PageSizeAlt int      `form:"paging.pageSize"`
	CurrentAlt  int      `form:"paging.current"`
}

// parseReportQuery binds the query string. A binding failure degrades to the
// incomplete-filter state, which renders as an empty result downstream.
func parseReportQuery(c *gin.Context) reportQuery {
	var q reportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return reportQuery{}
	}
	return q
}

func (q reportQuery) filter() report.Filter {
	return report.NewFilter(q.DateFrom, q.DateTo, q.SKUs, q.StaffMember)
}

func (q reportQuery) paging() (pageSize, current int) {
	pageSize = q.PageSize
	if pageSize == 0 {
		pageSize = q.PageSizeAlt
	}
	current = q.Current
	if current == 0 {
		current = q.CurrentAlt
	}
	return pageSize, current
}

// GridData returns one page of the aggregated report in the shape the grid
// component consumes: {totalRecords, items}. Incomplete filters and storage
// failures both yield an empty grid, never an error page.
func (h *MerchandiseReportHandler) GridData(c *gin.Context) {
	q := parseReportQuery(c)
	pageSize, current := q.paging()

	result := h.service.GridData(c.Request.Context(), q.filter(), pageSize, current)
	c.JSON(http.StatusOK, result)
}

// ExportCSV streams the full unpaginated report as a CSV download.
func (h *MerchandiseReportHandler) ExportCSV(c *gin.Context) {
	q := parseReportQuery(c)

	data, filename, err := h.service.ExportCSV(c.Request.Context(), q.filter())
	if err != nil {
		h.InternalError(c, "Failed to render export")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv", data)
}

// RegisterRoutes registers the report routes
func (h *MerchandiseReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/merchandise", h.GridData)
		reports.GET("/merchandise/export", h.ExportCSV)
	}
}
