package repositories

import (
	"context"
	"testing"
	"time"

	"boardapi/internal/domain"
	"boardapi/internal/query"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestThreadSoftDeleteIdempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	repo := ThreadRepository{DB: db}

	// first delete hits the live row
	mock.ExpectExec("UPDATE threads SET deleted_at").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// second delete matches nothing
	mock.ExpectExec("UPDATE threads SET deleted_at").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.SoftDelete(context.Background(), 5); err != nil {
		t.Fatalf("first delete should succeed: %v", err)
	}

	err = repo.SoftDelete(context.Background(), 5)
	if err == nil {
		t.Fatalf("second delete should fail, not silently succeed")
	}
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestThreadListScopedToAuthor(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	author := int64(42)

	// both queries must carry the author predicate so the count cannot leak
	// other principals' rows through pagination metadata
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM threads t").
		WithArgs(author).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	now := time.Now()
	mock.ExpectQuery("SELECT t\\.id, t\\.category_id").
		WithArgs(author, 20, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "category_id", "author_id", "title", "body", "status", "pinned",
			"author_name", "category_name", "created_at", "updated_at", "deleted_at",
		}).AddRow(int64(1), int64(2), author, "mine", "body", "open", false,
			"Me", "General", now, now, nil))

	page, err := ThreadRepository{DB: db}.List(context.Background(), ThreadFilter{
		AuthorID: &author,
	})
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(page.Data) != 1 || page.Data[0].AuthorID != author {
		t.Fatalf("unexpected rows: %+v", page.Data)
	}
	if page.Pagination.Records != 1 {
		t.Fatalf("records got %d want 1", page.Pagination.Records)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestThreadListAuditViewDeletedOnly(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM threads t").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("t\\.deleted_at IS NOT NULL ORDER BY").
		WithArgs(20, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "category_id", "author_id", "title", "body", "status", "pinned",
			"author_name", "category_name", "created_at", "updated_at", "deleted_at",
		}))

	deleted := true
	page, err := ThreadRepository{DB: db}.List(context.Background(), ThreadFilter{
		Params:         query.Params{},
		IncludeDeleted: true,
		Deleted:        &deleted,
	})
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if page.Pagination.Pages != 0 || len(page.Data) != 0 {
		t.Fatalf("expected empty audit page, got %+v", page)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
