package repositories

import (
	"context"
	"database/sql"
	"strings"

	"boardapi/internal/domain"
	"boardapi/internal/domain/models"
	"boardapi/internal/query"
)

type CategoryRepository struct {
	DB *sql.DB
}

type CategoryFilter struct {
	query.Params
	Q *string
}

const categoryColumns = `id, name, slug, COALESCE(description,''), created_at, updated_at, deleted_at`

func scanCategoryRows(rows *sql.Rows) (models.Category, error) {
	var (
		c       models.Category
		deleted sql.NullTime
	)
	err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description,
		&c.CreatedAt, &c.UpdatedAt, &deleted)
	c.DeletedAt = nullTimeToPtr(deleted)
	return c, err
}

func (r CategoryRepository) List(ctx context.Context, f CategoryFilter) (query.Page[models.Category], error) {
	where := query.NewBuilder().NotDeleted().
		Search(f.Q, "name", "description")

	page, err := query.List(ctx, r.DB, query.Spec{
		Select: categoryColumns,
		From:   "categories",
		Where:  where,
		Order:  query.ResolveSort(f.Sort, "created_at", "name"),
		Params: f.Params,
	}, scanCategoryRows)
	if err != nil {
		return page, translateDBError("categories", err)
	}
	return page, nil
}

func (r CategoryRepository) getOne(ctx context.Context, cond string, arg any) (models.Category, error) {
	var (
		c       models.Category
		deleted sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE `+cond+` AND deleted_at IS NULL
		LIMIT 1`, arg).Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description,
		&c.CreatedAt, &c.UpdatedAt, &deleted)
	if err != nil {
		return models.Category{}, translateDBError("category", err)
	}
	c.DeletedAt = nullTimeToPtr(deleted)
	return c, nil
}

func (r CategoryRepository) GetByID(ctx context.Context, id int64) (models.Category, error) {
	return r.getOne(ctx, "id = ?", id)
}

func (r CategoryRepository) GetBySlug(ctx context.Context, slug string) (models.Category, error) {
	return r.getOne(ctx, "slug = ?", strings.TrimSpace(slug))
}

func (r CategoryRepository) Create(ctx context.Context, c models.Category) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO categories (name, slug, description, created_at, updated_at)
		VALUES (?, ?, ?, NOW(), NOW())`,
		strings.TrimSpace(c.Name), strings.TrimSpace(c.Slug), strings.TrimSpace(c.Description))
	if err != nil {
		return 0, translateDBError("category", err)
	}
	id, _ := res.LastInsertId()
	return id, nil
}

func (r CategoryRepository) Update(ctx context.Context, id int64, name, description string) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE categories SET name = ?, description = ?, updated_at = NOW()
		WHERE id = ? AND deleted_at IS NULL`,
		strings.TrimSpace(name), strings.TrimSpace(description), id)
	if err != nil {
		return translateDBError("category", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// SoftDelete refuses to remove a category that still has live threads.
func (r CategoryRepository) SoftDelete(ctx context.Context, id int64) error {
	var threads int
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM threads
		WHERE category_id = ? AND deleted_at IS NULL`, id).Scan(&threads)
	if err != nil {
		return translateDBError("category", err)
	}
	if threads > 0 {
		return domain.ConflictError{Resource: "category", Msg: "threads still reference this category"}
	}

	res, err := r.DB.ExecContext(ctx, `
		UPDATE categories SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = ? AND deleted_at IS NULL`, id)
	if err != nil {
		return translateDBError("category", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return domain.NotFoundError{Resource: "category"}
	}
	return nil
}
