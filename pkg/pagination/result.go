package pagination

// PageResult is one page of a listing with the counts a client needs to
// request the others.
type PageResult[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// NewPageResult wraps data as page of a listing holding total rows. A nil
// data slice is replaced by an empty one so it encodes as [].
func NewPageResult[T any](data []T, total, page, pageSize int) PageResult[T] {
	if data == nil {
		data = make([]T, 0)
	}
	return PageResult[T]{
		Data:       data,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: pageCount(total, pageSize),
	}
}

// pageCount never reports fewer than one page.
func pageCount(total, pageSize int) int {
	if pageSize < 1 || total <= pageSize {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}
