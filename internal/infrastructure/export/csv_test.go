package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/merchreport/backend/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSaleTime(t *testing.T) {
	t.Run("nil renders empty", func(t *testing.T) {
		assert.Equal(t, "", FormatSaleTime(nil))
	})

	t.Run("timestamps use the grid layout", func(t *testing.T) {
		ts := time.Date(2025, 1, 3, 9, 5, 0, 0, time.UTC)
		assert.Equal(t, "2025-01-03 09:05:00", FormatSaleTime(&ts))
	})
}

func TestRender(t *testing.T) {
	header := []string{"SKU", "Name", "Sales", "Refunds", "Staff Member", "First Sale Date", "Last Sale Date"}

	t.Run("output starts with a UTF-8 BOM", func(t *testing.T) {
		data, err := Render(header, nil)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
	})

	t.Run("fields containing commas survive a round trip", func(t *testing.T) {
		first := time.Date(2025, 1, 3, 9, 0, 0, 0, time.UTC)
		rows := []report.MerchandiseRow{
			{SKU: "SKU,1", ProductName: `Widget "Deluxe"`, UnitsSold: 5,
				StaffMembers: "Alice, Bob", FirstSaleAt: &first},
		}

		data, err := Render(header, rows)
		require.NoError(t, err)

		r := csv.NewReader(bytes.NewReader(data[3:]))
		records, err := r.ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "SKU,1", records[1][0])
		assert.Equal(t, `Widget "Deluxe"`, records[1][1])
		assert.Equal(t, "Alice, Bob", records[1][4])
		assert.Equal(t, "2025-01-03 09:00:00", records[1][5])
		assert.Equal(t, "", records[1][6])
	})

	t.Run("row order is preserved", func(t *testing.T) {
		rows := []report.MerchandiseRow{
			{SKU: "B"}, {SKU: "A"}, {SKU: "C"},
		}

		data, err := Render(header, rows)
		require.NoError(t, err)

		r := csv.NewReader(bytes.NewReader(data[3:]))
		records, err := r.ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 4)
		assert.Equal(t, "B", records[1][0])
		assert.Equal(t, "A", records[2][0])
		assert.Equal(t, "C", records[3][0])
	})
}
