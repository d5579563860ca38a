package domain

import "math"

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// MaxPage bounds page numbers so offsets stay well inside int64.
const MaxPage = 1_000_000

type PageRequest struct {
	Page     int
	PageSize int
}

// Normalize fills defaults and caps the page size at max (when max > 0).
func (p PageRequest) Normalize(defaultSize, max int) PageRequest {
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.PageSize < 1 {
		p.PageSize = defaultSize
	}
	if max > 0 && p.PageSize > max {
		p.PageSize = max
	}
	return p
}

// Offset saturates at math.MaxInt instead of overflowing.
func (p PageRequest) Offset() int {
	if p.Page <= 1 || p.PageSize <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.PageSize {
		return math.MaxInt
	}
	return (p.Page - 1) * p.PageSize
}

type JobPage struct {
	Items      []JobView `json:"items"`
	TotalCount int       `json:"totalCount"`
	Page       int       `json:"page"`
	PageSize   int       `json:"pageSize"`
	TotalPages int       `json:"totalPages"`
}

func NewJobPage(items []JobView, total int, p PageRequest) JobPage {
	if items == nil {
		items = []JobView{}
	}
	pages := 0
	if p.PageSize > 0 {
		pages = (total + p.PageSize - 1) / p.PageSize
	}
	return JobPage{
		Items:      items,
		TotalCount: total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: pages,
	}
}
