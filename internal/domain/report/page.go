package report

// Page is one pageSize-window slice of a materialized result set.
type Page struct {
	Rows       []MerchandiseRow
	TotalCount int
	PageNumber int
	PageSize   int
}

// Paginate slices rows to the requested page. TotalCount is always the full
// unsliced length, so every page of the same result reports the same total.
// Non-positive pageSize/pageNumber fall back to the defaults the grid uses.
func Paginate(rows []MerchandiseRow, pageSize, pageNumber int) Page {
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageNumber <= 0 {
		pageNumber = 1
	}

	total := len(rows)

	// Check against the last page before multiplying, so huge pageNumber or
	// pageSize values cannot overflow the offset arithmetic.
	if pageNumber-1 > (total-1)/pageSize {
		return Page{
			Rows:       rows[total:total],
			TotalCount: total,
			PageNumber: pageNumber,
			PageSize:   pageSize,
		}
	}

	offset := (pageNumber - 1) * pageSize
	end := total
	if total-offset > pageSize {
		end = offset + pageSize
	}

	return Page{
		Rows:       rows[offset:end],
		TotalCount: total,
		PageNumber: pageNumber,
		PageSize:   pageSize,
	}
}
