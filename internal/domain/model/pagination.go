package model

import (
	"net/url"
	"strconv"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// PageParams selects a window of a server-side collection.
type PageParams struct {
	Page  int
	Limit int
}

// Normalize clamps page to >= 1 and limit to 1..MaxPageLimit.
func (p PageParams) Normalize() PageParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

// Query encodes the params as page/limit query parameters.
func (p PageParams) Query() url.Values {
	p = p.Normalize()
	q := url.Values{}
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("limit", strconv.Itoa(p.Limit))
	return q
}

// PaginationInfo mirrors the pagination block of list responses.
type PaginationInfo struct {
	Total int `json:"total"`
	Page  int `json:"page,omitempty"`
	Limit int `json:"limit,omitempty"`
	Pages int `json:"pages,omitempty"`
}

// Cursor describes the current window; Total is taken from the last server response.
type Cursor struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// TotalPages returns ceil(Total / Limit).
func (c Cursor) TotalPages() int {
	if c.Limit <= 0 || c.Total <= 0 {
		return 0
	}
	return (c.Total + c.Limit - 1) / c.Limit
}

func (c Cursor) HasPrev() bool {
	return c.Page > 1
}

func (c Cursor) HasNext() bool {
	return c.Page < c.TotalPages()
}

// Goto moves to page. Pages outside 1..TotalPages leave the cursor unchanged and report false.
func (c Cursor) Goto(page int) (Cursor, bool) {
	if page < 1 || page > c.TotalPages() {
		return c, false
	}
	c.Page = page
	return c, true
}

// Params returns the request parameters for the cursor's window.
func (c Cursor) Params() PageParams {
	return PageParams{Page: c.Page, Limit: c.Limit}.Normalize()
}

// Page is one window of a listing plus its cursor.
type Page[T any] struct {
	Data   []T    `json:"data"`
	Cursor Cursor `json:"pagination"`
}

// Summary holds collection totals shown on the analytics panel.
type Summary struct {
	Admins         int `json:"admins"`
	Sellers        int `json:"sellers"`
	PendingSellers int `json:"pendingSellers"`
	Couriers       int `json:"couriers"`
	Buyers         int `json:"buyers"`
	Products       int `json:"products"`
	Orders         int `json:"orders"`
}
