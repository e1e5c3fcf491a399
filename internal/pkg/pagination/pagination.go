package pagination

import (
	"math"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params selects one page. Page is 1-based.
type Params struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Page is one slice of a larger ordered result.
type Page[T any] struct {
	Items []T
	Total int64
}

// Meta is the pagination block returned to clients.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// Normalize fills unset fields with defaults.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	return p
}

// Offset returns the number of rows to skip and false when the offset
// does not fit in an int, meaning the page is past any possible result.
func (p Params) Offset() (int, bool) {
	p = p.Normalize()
	if p.Page-1 > math.MaxInt/p.Limit {
		return 0, false
	}
	return (p.Page - 1) * p.Limit, true
}

// MetaFor builds the client meta block; TotalPages = ceil(total/limit).
func (p Params) MetaFor(total int64) Meta {
	p = p.Normalize()
	limit := int64(p.Limit)
	return Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: (total + limit - 1) / limit,
	}
}

// ParseError describes a query parameter that is not a valid page or limit.
type ParseError struct {
	Field   string
	Message string
}

func (e *ParseError) Error() string {
	return e.Field + ": " + e.Message
}

// Parse reads raw page/limit query values; empty strings take the defaults.
// A limit above MaxLimit is clamped to it.
func Parse(rawPage, rawLimit string) (Params, error) {
	p := Params{Page: DefaultPage, Limit: DefaultLimit}
	if rawPage != "" {
		n, err := strconv.Atoi(rawPage)
		if err != nil || n < 1 {
			return Params{}, &ParseError{Field: "page", Message: "must be a positive integer"}
		}
		p.Page = n
	}
	if rawLimit != "" {
		n, err := strconv.Atoi(rawLimit)
		if err != nil || n < 1 {
			return Params{}, &ParseError{Field: "limit", Message: "must be a positive integer"}
		}
		p.Limit = min(n, MaxLimit)
	}
	return p, nil
}
