package repositories

import (
	"context"
	"database/sql"
	"strings"

	"boardapi/internal/domain"
	"boardapi/internal/domain/models"
	"boardapi/internal/query"
)

type CommentRepository struct {
	DB *sql.DB
}

const commentSelect = `cm.id, cm.thread_id, cm.author_id, cm.parent_id, cm.body,
		COALESCE(u.name,''), cm.created_at, cm.updated_at, cm.deleted_at`

const commentFrom = `comments cm
		JOIN users u ON u.id = cm.author_id`

func scanCommentRows(rows *sql.Rows) (models.Comment, error) {
	var (
		c       models.Comment
		parent  sql.NullInt64
		deleted sql.NullTime
	)
	err := rows.Scan(&c.ID, &c.ThreadID, &c.AuthorID, &parent, &c.Body,
		&c.AuthorName, &c.CreatedAt, &c.UpdatedAt, &deleted)
	if parent.Valid {
		v := parent.Int64
		c.ParentID = &v
	}
	c.DeletedAt = nullTimeToPtr(deleted)
	return c, err
}

func (r CommentRepository) ListByThread(ctx context.Context, threadID int64, p query.Params) (query.Page[models.Comment], error) {
	where := query.NewBuilder().
		Raw("cm.deleted_at IS NULL").
		Raw("cm.thread_id = ?", threadID)

	page, err := query.List(ctx, r.DB, query.Spec{
		Select: commentSelect,
		From:   commentFrom,
		Where:  where,
		Order:  "cm." + query.ResolveSort(p.Sort, "created_at"),
		Params: p,
	}, scanCommentRows)
	if err != nil {
		return page, translateDBError("comments", err)
	}
	return page, nil
}

func (r CommentRepository) GetByID(ctx context.Context, id int64) (models.Comment, error) {
	var (
		c       models.Comment
		parent  sql.NullInt64
		deleted sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx, `
		SELECT `+commentSelect+`
		FROM `+commentFrom+`
		WHERE cm.id = ? AND cm.deleted_at IS NULL
		LIMIT 1`, id).Scan(
		&c.ID, &c.ThreadID, &c.AuthorID, &parent, &c.Body,
		&c.AuthorName, &c.CreatedAt, &c.UpdatedAt, &deleted)
	if err != nil {
		return models.Comment{}, translateDBError("comment", err)
	}
	if parent.Valid {
		v := parent.Int64
		c.ParentID = &v
	}
	c.DeletedAt = nullTimeToPtr(deleted)
	return c, nil
}

func (r CommentRepository) Create(ctx context.Context, c models.Comment) (int64, error) {
	var parent any
	if c.ParentID != nil {
		parent = *c.ParentID
	}
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO comments (thread_id, author_id, parent_id, body, created_at, updated_at)
		VALUES (?, ?, ?, ?, NOW(), NOW())`,
		c.ThreadID, c.AuthorID, parent, c.Body)
	if err != nil {
		return 0, translateDBError("comment", err)
	}
	id, _ := res.LastInsertId()
	return id, nil
}

func (r CommentRepository) UpdateBody(ctx context.Context, id int64, body string) error {
	if strings.TrimSpace(body) == "" {
		return domain.ValidationError{Field: "body", Msg: "must not be empty"}
	}
	res, err := r.DB.ExecContext(ctx, `
		UPDATE comments SET body = ?, updated_at = NOW()
		WHERE id = ? AND deleted_at IS NULL`, body, id)
	if err != nil {
		return translateDBError("comment", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (r CommentRepository) SoftDelete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE comments SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = ? AND deleted_at IS NULL`, id)
	if err != nil {
		return translateDBError("comment", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return domain.NotFoundError{Resource: "comment"}
	}
	return nil
}
