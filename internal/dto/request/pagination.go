package request

type PaginatedRequest struct {
	Page    int `json:"page" validate:"min=1"`
	PerPage int `json:"per_page" validate:"min=1,max=100"`
}

// NewPaginatedRequest applies defaults for missing query values.
func NewPaginatedRequest(page, perPage int) PaginatedRequest {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	return PaginatedRequest{Page: page, PerPage: perPage}
}

func (p PaginatedRequest) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit()
}

func (p PaginatedRequest) Limit() int {
	if p.PerPage < 1 {
		return 10
	}
	if p.PerPage > 100 {
		return 100
	}
	return p.PerPage
}
