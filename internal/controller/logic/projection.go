package logic

import "ticketlist/internal/domain"

// Project turns a lookahead page of up to pageSize+1 records into what the
// view shows. The extra record only signals that another page exists.
func Project(raw []domain.Record, pageSize int) domain.DisplayResult {
	n := len(raw)
	if n > pageSize {
		n = pageSize
	}
	items := make([]domain.Record, n)
	copy(items, raw[:n])
	return domain.DisplayResult{
		Items:   items,
		HasMore: len(raw) > pageSize,
	}
}

// ProjectCapped keeps at most limit records and never reports more pages
func ProjectCapped(raw []domain.Record, limit int) domain.DisplayResult {
	r := Project(raw, limit)
	r.HasMore = false
	return r
}
