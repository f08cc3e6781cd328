// Package query is the shared list/search kit: pagination normalization,
// conjunctive predicate building, allow-listed sort resolution, and page
// metadata assembly. Every list endpoint goes through it so paging and
// filtering behave the same everywhere.
package query

const (
	// DefaultLimit applies when the client sends no usable limit.
	DefaultLimit = 20
	// MaxLimit caps the page size regardless of client input.
	MaxLimit = 100
)

// Params carries raw, untrusted paging input as bound from the query string.
type Params struct {
	Page  int    `form:"page" json:"page"`
	Limit int    `form:"limit" json:"limit"`
	Sort  string `form:"sort" json:"sort"`
}

// Normalize silently corrects invalid paging input instead of rejecting it:
// page < 1 becomes 1, limit < 1 becomes DefaultLimit, limit above MaxLimit
// is capped. Offset is (page-1)*limit.
func (p Params) Normalize() (page, limit, offset int) {
	page = p.Page
	if page < 1 {
		page = 1
	}
	limit = p.Limit
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit, (page - 1) * limit
}
