package query

import (
	"context"
	"database/sql"

	"golang.org/x/sync/errgroup"
)

// Spec configures one paginated list query. Entities provide their SELECT
// list, FROM clause (joins allowed), predicate, and resolved ORDER BY;
// List does the rest. This replaces hand-duplicated list handlers.
type Spec struct {
	Select string
	From   string
	Where  *Builder
	Order  string
	Params Params
}

// List runs the COUNT and the page fetch concurrently and joins them into a
// Page. The two reads are independent snapshots; a slight skew between
// records and data under concurrent writes is accepted.
func List[T any](ctx context.Context, db *sql.DB, spec Spec, scan func(*sql.Rows) (T, error)) (Page[T], error) {
	page, limit, offset := spec.Params.Normalize()

	where := ""
	var args []any
	if spec.Where != nil {
		where, args = spec.Where.Where()
	}
	order := spec.Order
	if order == "" {
		order = DefaultSort
	}

	var (
		records int64
		data    = []T{}
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		countFrom := spec.From
		return db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM "+countFrom+where, args...,
		).Scan(&records)
	})

	g.Go(func() error {
		fetchArgs := append(append([]any{}, args...), limit, offset)
		rows, err := db.QueryContext(ctx,
			"SELECT "+spec.Select+" FROM "+spec.From+where+
				" ORDER BY "+order+" LIMIT ? OFFSET ?",
			fetchArgs...,
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			item, err := scan(rows)
			if err != nil {
				return err
			}
			data = append(data, item)
		}
		return rows.Err()
	})

	if err := g.Wait(); err != nil {
		return Page[T]{}, err
	}

	return Page[T]{
		Pagination: NewPagination(records, page, limit),
		Data:       data,
	}, nil
}
