package report

import (
	"strings"
	"time"
)

// Filter is the closed, validated filter value for one report request.
// Dates are normalized to Y-m-d on construction; SKUs are sanitized and
// deduplicated. A query only executes when Complete() is true.
type Filter struct {
	DateFrom    string
	DateTo      string
	SKUs        []string
	StaffMember string
}

// NewFilter builds a Filter from raw request input. rawSKUs may be a
// comma-separated string or a string slice; anything else yields no SKUs.
func NewFilter(rawFrom, rawTo string, rawSKUs any, staffMember string) Filter {
	return Filter{
		DateFrom:    NormalizeDate(rawFrom),
		DateTo:      NormalizeDate(rawTo),
		SKUs:        SanitizeSKUs(rawSKUs),
		StaffMember: strings.TrimSpace(staffMember),
	}
}

// Complete reports whether the filter carries everything a query needs.
// An incomplete filter is a defined empty-result state, not an error.
func (f Filter) Complete() bool {
	return f.DateFrom != "" && f.DateTo != "" && len(f.SKUs) > 0
}

// Window widens the date range to a full-day window: start of day on the
// from date, 23:59:59 on the to date.
func (f Filter) Window() (from, to string) {
	return f.DateFrom + " 00:00:00", f.DateTo + " 23:59:59"
}

// genericDateLayouts are tried, in order, when a slash date fails the
// primary day/month/year parse.
var genericDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"January 2, 2006",
}

// NormalizeDate parses heterogeneous date-string input into Y-m-d form.
// Slash dates are read as day/month/year (the grid's native format), with a
// best-effort fallback; an unparseable value is returned unchanged so the
// query degrades to zero matches instead of failing.
func NormalizeDate(raw string) string {
	if raw == "" {
		return raw
	}

	if strings.Contains(raw, "/") {
		if t, err := time.Parse("02/01/2006", raw); err == nil {
			return t.Format("2006-01-02")
		}
		for _, layout := range genericDateLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t.Format("2006-01-02")
			}
		}
		return raw
	}

	// Already Y-m-d, possibly with a time component to truncate.
	if strings.Contains(raw, " ") {
		if len(raw) > 10 {
			return raw[:10]
		}
	}

	return raw
}

// SanitizeSKUs normalizes a raw SKU filter value into a deduplicated list of
// exact SKU strings. The grid's fulltext control wraps values in %...%, so
// leading and trailing wildcards are stripped.
func SanitizeSKUs(raw any) []string {
	var candidates []string

	switch v := raw.(type) {
	case string:
		candidates = strings.Split(v, ",")
	case []string:
		for _, item := range v {
			candidates = append(candidates, strings.Split(item, ",")...)
		}
	default:
		return nil
	}

	seen := make(map[string]struct{}, len(candidates))
	skus := make([]string, 0, len(candidates))
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		c = strings.Trim(c, "%")
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		skus = append(skus, c)
	}

	if len(skus) == 0 {
		return nil
	}
	return skus
}
