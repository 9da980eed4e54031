package dto

// ListResponse is one page of a collection
type ListResponse[T any] struct {
	Data  []T   `json:"data"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// NewListResponse converts each item with conv
func NewListResponse[M any, T any](items []M, page, limit int, total int64, conv func(M) T) ListResponse[T] {
	data := make([]T, len(items))
	for i, item := range items {
		data[i] = conv(item)
	}
	return ListResponse[T]{Data: data, Page: page, Limit: limit, Total: total}
}
