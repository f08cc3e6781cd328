package query

// Pagination describes a paginated result's position and size.
type Pagination struct {
	Current int   `json:"current"`
	Limit   int   `json:"limit"`
	Records int64 `json:"records"`
	Pages   int64 `json:"pages"`
}

// Page is the standard list response envelope.
type Page[T any] struct {
	Pagination Pagination `json:"pagination"`
	Data       []T        `json:"data"`
}

// NewPagination assembles page metadata. Pages is ceil(records/limit), so it
// is zero exactly when records is zero. Metadata is produced even for empty
// results; an empty page is not an error.
func NewPagination(records int64, page, limit int) Pagination {
	pages := int64(0)
	if records > 0 {
		pages = (records + int64(limit) - 1) / int64(limit)
	}
	return Pagination{
		Current: page,
		Limit:   limit,
		Records: records,
		Pages:   pages,
	}
}
