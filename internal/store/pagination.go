package store

// Audit listings return at most MaxPageSize rows per page.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageRequest selects one 1-indexed page of a listing.
type PageRequest struct {
	Page     int
	PageSize int
}

// NewPageRequest clamps page to >= 1 and pageSize to [1, MaxPageSize],
// substituting DefaultPageSize for non-positive sizes.
func NewPageRequest(page, pageSize int) PageRequest {
	switch {
	case pageSize < 1:
		pageSize = DefaultPageSize
	case pageSize > MaxPageSize:
		pageSize = MaxPageSize
	}
	return PageRequest{Page: max(page, 1), PageSize: pageSize}
}

func (p PageRequest) offset() int {
	return (p.Page - 1) * p.PageSize
}

// PageInfo describes where a returned page sits in the full result.
type PageInfo struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// NewPageInfo reports the requested page as-is even past the last page, so
// clients can tell an overshoot from an empty result.
func NewPageInfo(total int64, req PageRequest) PageInfo {
	size := int64(max(req.PageSize, 1))
	pages := int((total + size - 1) / size)
	return PageInfo{
		Total:      total,
		Page:       req.Page,
		PageSize:   int(size),
		TotalPages: pages,
		HasNext:    req.Page < pages,
	}
}
