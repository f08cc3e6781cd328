package query

import (
	"strings"
	"time"
)

// Builder accumulates an AND'ed WHERE clause. Optional filters are passed as
// pointers; a nil pointer contributes nothing, so "filter not specified" and
// "filter matches null" stay distinct.
type Builder struct {
	conds []string
	args  []any
}

func NewBuilder() *Builder {
	return &Builder{}
}

// NotDeleted excludes soft-deleted rows. Every non-audit query adds it.
func (b *Builder) NotDeleted() *Builder {
	return b.Raw("deleted_at IS NULL")
}

// EqInt64 adds col = *v when v is set.
func (b *Builder) EqInt64(col string, v *int64) *Builder {
	if v == nil {
		return b
	}
	return b.Raw(col+" = ?", *v)
}

// EqString adds col = *v when v is set and non-blank.
func (b *Builder) EqString(col string, v *string) *Builder {
	if v == nil || strings.TrimSpace(*v) == "" {
		return b
	}
	return b.Raw(col+" = ?", strings.TrimSpace(*v))
}

// EqBool adds col = *v when v is set.
func (b *Builder) EqBool(col string, v *bool) *Builder {
	if v == nil {
		return b
	}
	return b.Raw(col+" = ?", *v)
}

// Search adds a substring match OR'ed over cols. Case sensitivity follows
// the column collation.
func (b *Builder) Search(term *string, cols ...string) *Builder {
	if term == nil || len(cols) == 0 {
		return b
	}
	t := strings.TrimSpace(*term)
	if t == "" {
		return b
	}
	like := "%" + t + "%"
	parts := make([]string, 0, len(cols))
	for _, col := range cols {
		parts = append(parts, col+" LIKE ?")
		b.args = append(b.args, like)
	}
	b.conds = append(b.conds, "("+strings.Join(parts, " OR ")+")")
	return b
}

// From adds col >= *t when t is set. Paired From/To bounds are independent;
// an inverted range is passed through and simply matches nothing.
func (b *Builder) From(col string, t *time.Time) *Builder {
	if t == nil {
		return b
	}
	return b.Raw(col+" >= ?", *t)
}

// To adds col <= *t when t is set.
func (b *Builder) To(col string, t *time.Time) *Builder {
	if t == nil {
		return b
	}
	return b.Raw(col+" <= ?", *t)
}

// Raw appends a hand-written condition.
func (b *Builder) Raw(cond string, args ...any) *Builder {
	b.conds = append(b.conds, cond)
	b.args = append(b.args, args...)
	return b
}

// Where renders the clause with a leading " WHERE ", or "" when no
// condition was added.
func (b *Builder) Where() (string, []any) {
	if len(b.conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(b.conds, " AND "), b.args
}
