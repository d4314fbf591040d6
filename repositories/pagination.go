package repositories

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 20
)

// Page is a paginated query result.
type Page struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalPages int         `json:"totalPages"`
}

// NewPage builds a Page, deriving totalPages from the total row count.
func NewPage(data interface{}, total int64, page, limit int) *Page {
	return &Page{
		Data:       data,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}
}

// NormalizePaging clamps page and limit to sane values.
func NormalizePaging(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	return page, limit
}
