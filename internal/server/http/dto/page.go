package dto

import "github.com/polkiloo/marketpanel/internal/domain/model"

// Pagination is the cursor state shown under a paginated table.
type Pagination struct {
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	Total   int  `json:"total"`
	Pages   int  `json:"pages"`
	HasPrev bool `json:"hasPrev"`
	HasNext bool `json:"hasNext"`
}

// PageResponse is one window of a listing.
type PageResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

func NewPagination(c model.Cursor) Pagination {
	return Pagination{
		Page:    c.Page,
		Limit:   c.Limit,
		Total:   c.Total,
		Pages:   c.TotalPages(),
		HasPrev: c.HasPrev(),
		HasNext: c.HasNext(),
	}
}

// NewPageResponse never returns a nil Data slice.
func NewPageResponse[T any](p model.Page[T]) PageResponse[T] {
	data := p.Data
	if data == nil {
		data = []T{}
	}
	return PageResponse[T]{Data: data, Pagination: NewPagination(p.Cursor)}
}
