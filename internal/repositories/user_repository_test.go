package repositories

import (
	"context"
	"testing"

	"boardapi/internal/domain"
	"boardapi/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func TestUserCreateDuplicateKeyIsConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// the unique index is the authority, regardless of any advisory pre-check
	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	_, err = UserRepository{DB: db}.Create(context.Background(), models.User{
		Name:     "Dup",
		Username: "dup",
		Email:    "dup@example.com",
		Role:     models.RoleMember,
		Status:   models.UserStatusActive,
	}, "hash")
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserSoftDeleteTwiceNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE users SET deleted_at").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE users SET deleted_at").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := UserRepository{DB: db}
	if err := repo.SoftDelete(context.Background(), 3); err != nil {
		t.Fatalf("first delete should succeed: %v", err)
	}
	if err := repo.SoftDelete(context.Background(), 3); !domain.IsNotFound(err) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserUpdateNoFields(t *testing.T) {
	err := UserRepository{}.Update(context.Background(), 1, UserPatch{})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUserGetByIDMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT id, name, username").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = UserRepository{DB: db}.GetByID(context.Background(), 404)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
