package report

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/merchreport/backend/internal/domain/report"
	"github.com/merchreport/backend/internal/infrastructure/export"
	"go.uber.org/zap"
)

// csvHeader is the export column order: it must stay aligned with
// export.RowValues.
var csvHeader = []string{"SKU", "Name", "Sales", "Refunds", "Staff Member", "First Sale Date", "Last Sale Date"}

// MerchandiseReportService runs the merchandise-by-sales report: aggregation,
// backfill, pagination for the grid and full-set rendering for CSV export.
//
// Data-layer failures are absorbed here and converted to an empty result so
// the admin grid always renders; they are logged for operator visibility.
type MerchandiseReportService struct {
	repo   report.MerchandiseRepository
	logger *zap.Logger
}

// NewMerchandiseReportService creates a new MerchandiseReportService
func NewMerchandiseReportService(repo report.MerchandiseRepository, logger *zap.Logger) *MerchandiseReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MerchandiseReportService{
		repo:   repo,
		logger: logger,
	}
}

// GridItem is one row of the grid data API response.
type GridItem struct {
	RowID         int    `json:"row_id"`
	SKU           string `json:"sku"`
	ProductName   string `json:"product_name"`
	Sales         int64  `json:"sales"`
	Refunds       int64  `json:"refunds"`
	StaffMember   string `json:"staff_member"`
	FirstSaleDate string `json:"first_sale_date"`
	LastSaleDate  string `json:"last_sale_date"`
}

// GridDataResponse is the envelope the grid component consumes.
type GridDataResponse struct {
	TotalRecords int        `json:"totalRecords"`
	Items        []GridItem `json:"items"`
}

// Query materializes the full aggregated result for the filter: widened date
// window, per-SKU aggregation, zero-row backfill for SKUs without sales,
// sorted ascending by SKU. An incomplete filter and any storage or metadata
// failure both yield an empty result.
func (s *MerchandiseReportService) Query(ctx context.Context, filter report.Filter) []report.MerchandiseRow {
	if !filter.Complete() {
		s.logger.Debug("merchandise report filters incomplete, skipping query",
			zap.String("from", filter.DateFrom),
			zap.String("to", filter.DateTo),
			zap.Int("sku_count", len(filter.SKUs)),
		)
		return nil
	}

	from, to := filter.Window()
	s.logger.Debug("merchandise report query start",
		zap.String("from", from),
		zap.String("to", to),
		zap.Strings("skus", filter.SKUs),
		zap.String("staff_member", filter.StaffMember),
	)

	rows, err := s.repo.AggregateSales(ctx, report.AggregateQuery{
		From:        from,
		To:          to,
		SKUs:        filter.SKUs,
		StaffMember: filter.StaffMember,
	})
	if err != nil {
		if errors.Is(err, report.ErrNameAttributeUnresolved) {
			s.logger.Warn("merchandise report attribute resolution failed", zap.Error(err))
		} else {
			s.logger.Warn("merchandise report aggregation failed", zap.Error(err))
		}
		return nil
	}

	rows = s.backfillMissing(ctx, filter.SKUs, rows)

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].SKU < rows[j].SKU
	})

	s.logger.Debug("merchandise report query done", zap.Int("row_count", len(rows)))
	return rows
}

// backfillMissing appends a zero-activity row for every requested SKU absent
// from the aggregate, so each SKU appears in output even with no sales in
// range. Name lookup failures degrade to an empty name.
func (s *MerchandiseReportService) backfillMissing(ctx context.Context, skus []string, rows []report.MerchandiseRow) []report.MerchandiseRow {
	present := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		present[row.SKU] = struct{}{}
	}

	for _, sku := range skus {
		if _, ok := present[sku]; ok {
			continue
		}
		name, err := s.repo.ProductNameBySKU(ctx, sku)
		if err != nil {
			s.logger.Warn("backfill product name lookup failed",
				zap.String("sku", sku),
				zap.Error(err),
			)
			name = ""
		}
		rows = append(rows, report.ZeroRow(sku, name))
	}

	return rows
}

// GridData runs the report and slices it for the grid. TotalRecords is the
// full result size on every page.
func (s *MerchandiseReportService) GridData(ctx context.Context, filter report.Filter, pageSize, pageNumber int) GridDataResponse {
	rows := s.Query(ctx, filter)
	page := report.Paginate(rows, pageSize, pageNumber)

	items := make([]GridItem, len(page.Rows))
	for i, row := range page.Rows {
		items[i] = GridItem{
			RowID:         i + 1,
			SKU:           row.SKU,
			ProductName:   row.ProductName,
			Sales:         row.UnitsSold,
			Refunds:       row.UnitsRefunded,
			StaffMember:   row.StaffMembers,
			FirstSaleDate: export.FormatSaleTime(row.FirstSaleAt),
			LastSaleDate:  export.FormatSaleTime(row.LastSaleAt),
		}
	}

	return GridDataResponse{
		TotalRecords: page.TotalCount,
		Items:        items,
	}
}

// ExportCSV runs the report over the full unpaginated set and renders it as
// a BOM-prefixed CSV. It returns the file body and a timestamped filename.
func (s *MerchandiseReportService) ExportCSV(ctx context.Context, filter report.Filter) ([]byte, string, error) {
	rows := s.Query(ctx, filter)

	data, err := export.Render(csvHeader, rows)
	if err != nil {
		return nil, "", fmt.Errorf("csv render failed: %w", err)
	}

	filename := fmt.Sprintf("merchandise_report_%s.csv", time.Now().Format("20060102_150405"))
	s.logger.Info("merchandise report exported",
		zap.String("filename", filename),
		zap.Int("row_count", len(rows)),
		zap.Int("byte_count", len(data)),
	)

	return data, filename, nil
}
