package dto

import "time"

const (
	DefaultLimit = 7
	MaxLimit     = 100
)

type Order string

const (
	OrderAsc  Order = "ASC"
	OrderDesc Order = "DESC"
)

func ParseOrder(raw string) Order {
	if Order(raw) == OrderAsc || raw == "asc" {
		return OrderAsc
	}
	return OrderDesc
}

// ListQuery carries the pagination, filter and sort parameters shared by
// every list endpoint.
type ListQuery struct {
	Page  int
	Limit int
	Query string
	Date  *time.Time
	Order Order
}

func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

func (q ListQuery) Normalize() ListQuery {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	if q.Order != OrderAsc {
		q.Order = OrderDesc
	}
	return q
}

type Page[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	TotalPages int   `json:"totalPages"`
}

func NewPage[T any](data []T, total int64, q ListQuery) Page[T] {
	pages := 1
	if q.Limit > 0 && total > 0 {
		pages = int((total + int64(q.Limit) - 1) / int64(q.Limit))
	}
	return Page[T]{
		Data:       data,
		Total:      total,
		Page:       q.Page,
		TotalPages: pages,
	}
}
