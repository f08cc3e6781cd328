package query

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

type titled struct {
	ID    int64
	Title string
}

func scanTitled(rows *sql.Rows) (titled, error) {
	var v titled
	err := rows.Scan(&v.ID, &v.Title)
	return v, err
}

func TestListLastPartialPage(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	// count and fetch race; accept either order
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM threads").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))

	fetched := sqlmock.NewRows([]string{"id", "title"})
	for i := 21; i <= 25; i++ {
		fetched.AddRow(int64(i), "thread")
	}
	mock.ExpectQuery("SELECT id, title FROM threads").
		WithArgs(10, 20).
		WillReturnRows(fetched)

	page, err := List(context.Background(), db, Spec{
		Select: "id, title",
		From:   "threads",
		Where:  NewBuilder().NotDeleted(),
		Order:  DefaultSort,
		Params: Params{Page: 3, Limit: 10},
	}, scanTitled)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}

	if len(page.Data) != 5 {
		t.Fatalf("data length got %d want 5", len(page.Data))
	}
	if page.Pagination.Pages != 3 {
		t.Fatalf("pages got %d want 3", page.Pagination.Pages)
	}
	if page.Pagination.Current != 3 || page.Pagination.Limit != 10 || page.Pagination.Records != 25 {
		t.Fatalf("unexpected pagination: %+v", page.Pagination)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListEmptyResult(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM threads").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("SELECT id, title FROM threads").
		WithArgs(20, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}))

	page, err := List(context.Background(), db, Spec{
		Select: "id, title",
		From:   "threads",
		Params: Params{Page: 1, Limit: 20},
	}, scanTitled)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}

	if page.Data == nil || len(page.Data) != 0 {
		t.Fatalf("data should be an empty slice, got %#v", page.Data)
	}
	want := Pagination{Current: 1, Limit: 20, Records: 0, Pages: 0}
	if page.Pagination != want {
		t.Fatalf("pagination got %+v want %+v", page.Pagination, want)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
