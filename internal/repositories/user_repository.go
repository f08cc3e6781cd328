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

type UserRepository struct {
	DB *sql.DB
}

// UserFilter carries the optional list filters for users. Nil fields are
// excluded from the predicate entirely.
type UserFilter struct {
	query.Params
	Q           *string
	Role        *string
	Status      *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

const userColumns = `id, name, username, email, role, status, created_at, updated_at, deleted_at`

func scanUserRows(rows *sql.Rows) (models.User, error) {
	var (
		u       models.User
		deleted sql.NullTime
	)
	err := rows.Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.Role, &u.Status,
		&u.CreatedAt, &u.UpdatedAt, &deleted)
	u.DeletedAt = nullTimeToPtr(deleted)
	return u, err
}

func (r UserRepository) List(ctx context.Context, f UserFilter) (query.Page[models.User], error) {
	where := query.NewBuilder().NotDeleted().
		EqString("role", f.Role).
		EqString("status", f.Status).
		Search(f.Q, "name", "username", "email").
		From("created_at", f.CreatedFrom).
		To("created_at", f.CreatedTo)

	page, err := query.List(ctx, r.DB, query.Spec{
		Select: userColumns,
		From:   "users",
		Where:  where,
		Order:  query.ResolveSort(f.Sort, "created_at", "username", "name"),
		Params: f.Params,
	}, scanUserRows)
	if err != nil {
		return page, translateDBError("users", err)
	}
	return page, nil
}

func (r UserRepository) GetByID(ctx context.Context, id int64) (models.User, error) {
	var (
		u       models.User
		deleted sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = ? AND deleted_at IS NULL
		LIMIT 1`, id).Scan(
		&u.ID, &u.Name, &u.Username, &u.Email, &u.Role, &u.Status,
		&u.CreatedAt, &u.UpdatedAt, &deleted)
	if err != nil {
		return models.User{}, translateDBError("user", err)
	}
	u.DeletedAt = nullTimeToPtr(deleted)
	return u, nil
}

// GetCredentials looks up a non-deleted account by email or username and
// returns the stored password hash alongside the profile.
func (r UserRepository) GetCredentials(ctx context.Context, login string) (models.User, string, error) {
	var (
		u       models.User
		hash    string
		deleted sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, username, email, password_hash, role, status, created_at, updated_at, deleted_at
		FROM users
		WHERE (email = ? OR username = ?) AND deleted_at IS NULL
		LIMIT 1`, login, login).Scan(
		&u.ID, &u.Name, &u.Username, &u.Email, &hash, &u.Role, &u.Status,
		&u.CreatedAt, &u.UpdatedAt, &deleted)
	if err != nil {
		return models.User{}, "", translateDBError("user", err)
	}
	u.DeletedAt = nullTimeToPtr(deleted)
	return u, hash, nil
}

// Exists is an advisory duplicate pre-check; the unique indexes on email and
// username remain the authority.
func (r UserRepository) Exists(ctx context.Context, email, username string) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM users
		WHERE (email = ? OR username = ?) AND deleted_at IS NULL`,
		email, username).Scan(&n)
	if err != nil {
		return false, translateDBError("users", err)
	}
	return n > 0, nil
}

func (r UserRepository) Create(ctx context.Context, u models.User, passwordHash string) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (name, username, email, password_hash, role, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())`,
		strings.TrimSpace(u.Name), strings.TrimSpace(u.Username),
		strings.TrimSpace(u.Email), passwordHash, u.Role, u.Status)
	if err != nil {
		return 0, translateDBError("user", err)
	}
	id, _ := res.LastInsertId()
	return id, nil
}

// UserPatch updates only the fields that are present.
type UserPatch struct {
	Name   *string
	Role   *string
	Status *string
}

func (r UserRepository) Update(ctx context.Context, id int64, p UserPatch) error {
	set := []string{}
	args := []any{}

	if p.Name != nil {
		set = append(set, "name = ?")
		args = append(args, strings.TrimSpace(*p.Name))
	}
	if p.Role != nil {
		set = append(set, "role = ?")
		args = append(args, *p.Role)
	}
	if p.Status != nil {
		set = append(set, "status = ?")
		args = append(args, *p.Status)
	}
	if len(set) == 0 {
		return domain.ValidationError{Msg: "no fields to update"}
	}

	set = append(set, "updated_at = NOW()")
	args = append(args, id)

	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET `+strings.Join(set, ", ")+` WHERE id = ? AND deleted_at IS NULL`,
		args...)
	if err != nil {
		return translateDBError("user", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		// distinguish "missing" from "nothing changed"
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// SoftDelete marks the account deleted. Deleting an already-deleted account
// matches no row and reports not found.
func (r UserRepository) SoftDelete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE users SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = ? AND deleted_at IS NULL`, id)
	if err != nil {
		return translateDBError("user", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}
