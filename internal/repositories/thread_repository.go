package repositories

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"boardapi/internal/domain"
	"boardapi/internal/domain/models"
	"boardapi/internal/query"
)

type ThreadRepository struct {
	DB *sql.DB
}

// ThreadFilter carries the optional list filters for threads. Nil fields are
// excluded from the predicate. IncludeDeleted switches to the audit view;
// Deleted then narrows it to deleted-only or live-only rows.
type ThreadFilter struct {
	query.Params
	CategoryID     *int64
	AuthorID       *int64
	Status         *string
	Pinned         *bool
	Q              *string
	CreatedFrom    *time.Time
	CreatedTo      *time.Time
	IncludeDeleted bool
	Deleted        *bool
}

const threadSelect = `t.id, t.category_id, t.author_id, t.title, t.body, t.status, t.pinned,
		COALESCE(u.name,''), COALESCE(c.name,''), t.created_at, t.updated_at, t.deleted_at`

const threadFrom = `threads t
		JOIN users u ON u.id = t.author_id
		JOIN categories c ON c.id = t.category_id`

func scanThreadRows(rows *sql.Rows) (models.Thread, error) {
	var (
		t       models.Thread
		deleted sql.NullTime
	)
	err := rows.Scan(&t.ID, &t.CategoryID, &t.AuthorID, &t.Title, &t.Body, &t.Status, &t.Pinned,
		&t.AuthorName, &t.CategoryName, &t.CreatedAt, &t.UpdatedAt, &deleted)
	t.DeletedAt = nullTimeToPtr(deleted)
	return t, err
}

func (r ThreadRepository) List(ctx context.Context, f ThreadFilter) (query.Page[models.Thread], error) {
	where := query.NewBuilder()
	if !f.IncludeDeleted {
		where.Raw("t.deleted_at IS NULL")
	} else if f.Deleted != nil {
		if *f.Deleted {
			where.Raw("t.deleted_at IS NOT NULL")
		} else {
			where.Raw("t.deleted_at IS NULL")
		}
	}
	where.
		EqInt64("t.category_id", f.CategoryID).
		EqInt64("t.author_id", f.AuthorID).
		EqString("t.status", f.Status).
		EqBool("t.pinned", f.Pinned).
		Search(f.Q, "t.title", "t.body").
		From("t.created_at", f.CreatedFrom).
		To("t.created_at", f.CreatedTo)

	order := query.ResolveSort(f.Sort, "created_at", "updated_at", "title")
	// sort columns belong to the threads table in the joined query
	order = "t." + order

	page, err := query.List(ctx, r.DB, query.Spec{
		Select: threadSelect,
		From:   threadFrom,
		Where:  where,
		Order:  order,
		Params: f.Params,
	}, scanThreadRows)
	if err != nil {
		return page, translateDBError("threads", err)
	}
	return page, nil
}

func (r ThreadRepository) GetByID(ctx context.Context, id int64, includeDeleted bool) (models.Thread, error) {
	cond := " AND t.deleted_at IS NULL"
	if includeDeleted {
		cond = ""
	}

	var (
		t       models.Thread
		deleted sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx, `
		SELECT `+threadSelect+`
		FROM `+threadFrom+`
		WHERE t.id = ?`+cond+`
		LIMIT 1`, id).Scan(
		&t.ID, &t.CategoryID, &t.AuthorID, &t.Title, &t.Body, &t.Status, &t.Pinned,
		&t.AuthorName, &t.CategoryName, &t.CreatedAt, &t.UpdatedAt, &deleted)
	if err != nil {
		return models.Thread{}, translateDBError("thread", err)
	}
	t.DeletedAt = nullTimeToPtr(deleted)
	return t, nil
}

func (r ThreadRepository) Create(ctx context.Context, t models.Thread) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO threads (category_id, author_id, title, body, status, pinned, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())`,
		t.CategoryID, t.AuthorID, strings.TrimSpace(t.Title), t.Body, t.Status, t.Pinned)
	if err != nil {
		return 0, translateDBError("thread", err)
	}
	id, _ := res.LastInsertId()
	return id, nil
}

// ThreadPatch updates only the fields that are present.
type ThreadPatch struct {
	Title      *string
	Body       *string
	CategoryID *int64
	Status     *string
	Pinned     *bool
}

func (r ThreadRepository) Update(ctx context.Context, id int64, p ThreadPatch) error {
	set := []string{}
	args := []any{}

	if p.Title != nil {
		set = append(set, "title = ?")
		args = append(args, strings.TrimSpace(*p.Title))
	}
	if p.Body != nil {
		set = append(set, "body = ?")
		args = append(args, *p.Body)
	}
	if p.CategoryID != nil {
		set = append(set, "category_id = ?")
		args = append(args, *p.CategoryID)
	}
	if p.Status != nil {
		set = append(set, "status = ?")
		args = append(args, *p.Status)
	}
	if p.Pinned != nil {
		set = append(set, "pinned = ?")
		args = append(args, *p.Pinned)
	}
	if len(set) == 0 {
		return domain.ValidationError{Msg: "no fields to update"}
	}

	set = append(set, "updated_at = NOW()")
	args = append(args, id)

	res, err := r.DB.ExecContext(ctx,
		`UPDATE threads SET `+strings.Join(set, ", ")+` WHERE id = ? AND deleted_at IS NULL`,
		args...)
	if err != nil {
		return translateDBError("thread", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		if _, err := r.GetByID(ctx, id, false); err != nil {
			return err
		}
	}
	return nil
}

func (r ThreadRepository) SoftDelete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE threads SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = ? AND deleted_at IS NULL`, id)
	if err != nil {
		return translateDBError("thread", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return domain.NotFoundError{Resource: "thread"}
	}
	return nil
}
