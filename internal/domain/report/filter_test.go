package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	t.Run("parses slash dates as day/month/year", func(t *testing.T) {
		assert.Equal(t, "2025-01-31", NormalizeDate("31/01/2025"))
		assert.Equal(t, "2025-02-01", NormalizeDate("01/02/2025"))
	})

	t.Run("falls back to generic layouts for other slash forms", func(t *testing.T) {
		assert.Equal(t, "2025-03-15", NormalizeDate("2025/03/15"))
		// Day 25 is impossible as a month, so the US layout catches it.
		assert.Equal(t, "2025-12-25", NormalizeDate("12/25/2025"))
	})

	t.Run("truncates a time component", func(t *testing.T) {
		assert.Equal(t, "2025-01-31", NormalizeDate("2025-01-31 10:00:00"))
	})

	t.Run("passes already normalized dates through", func(t *testing.T) {
		assert.Equal(t, "2025-01-31", NormalizeDate("2025-01-31"))
	})

	t.Run("passes unparseable input through unchanged", func(t *testing.T) {
		assert.Equal(t, "not/a/date", NormalizeDate("not/a/date"))
		assert.Equal(t, "garbage", NormalizeDate("garbage"))
	})

	t.Run("empty stays empty", func(t *testing.T) {
		assert.Equal(t, "", NormalizeDate(""))
	})
}

func TestSanitizeSKUs(t *testing.T) {
	t.Run("splits a comma separated string and trims wildcards", func(t *testing.T) {
		assert.Equal(t, []string{"ABC", "DEF"}, SanitizeSKUs("%ABC%, DEF ,"))
	})

	t.Run("accepts a string slice", func(t *testing.T) {
		assert.Equal(t, []string{"X", "Y"}, SanitizeSKUs([]string{"%X%", "Y"}))
	})

	t.Run("slice elements are comma split too", func(t *testing.T) {
		assert.Equal(t, []string{"A", "B", "C"}, SanitizeSKUs([]string{"A,B", "C"}))
	})

	t.Run("deduplicates preserving first occurrence order", func(t *testing.T) {
		assert.Equal(t, []string{"A", "B"}, SanitizeSKUs("A,B,%A%"))
	})

	t.Run("returns nil for empty or unusable input", func(t *testing.T) {
		assert.Nil(t, SanitizeSKUs(""))
		assert.Nil(t, SanitizeSKUs(" , ,%%"))
		assert.Nil(t, SanitizeSKUs(42))
		assert.Nil(t, SanitizeSKUs(nil))
	})
}

func TestFilter(t *testing.T) {
	t.Run("NewFilter normalizes every field", func(t *testing.T) {
		f := NewFilter("01/01/2025", "31/01/2025", "%SKU-1%,SKU-2", "  Dana  ")

		assert.Equal(t, "2025-01-01", f.DateFrom)
		assert.Equal(t, "2025-01-31", f.DateTo)
		assert.Equal(t, []string{"SKU-1", "SKU-2"}, f.SKUs)
		assert.Equal(t, "Dana", f.StaffMember)
	})

	t.Run("Complete requires both dates and at least one SKU", func(t *testing.T) {
		assert.True(t, NewFilter("2025-01-01", "2025-01-31", "A", "").Complete())
		assert.False(t, NewFilter("", "2025-01-31", "A", "").Complete())
		assert.False(t, NewFilter("2025-01-01", "", "A", "").Complete())
		assert.False(t, NewFilter("2025-01-01", "2025-01-31", "", "").Complete())
	})

	t.Run("staff member is optional", func(t *testing.T) {
		assert.True(t, NewFilter("2025-01-01", "2025-01-31", "A", "").Complete())
	})

	t.Run("Window widens to full day bounds", func(t *testing.T) {
		f := NewFilter("2025-01-01", "2025-01-31", "A", "")
		from, to := f.Window()
		assert.Equal(t, "2025-01-01 00:00:00", from)
		assert.Equal(t, "2025-01-31 23:59:59", to)
	})
}
