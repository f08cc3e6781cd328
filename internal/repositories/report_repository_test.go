package repositories

import (
	"context"
	"testing"
	"time"

	"boardapi/internal/domain"
	"boardapi/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestReportCreateDuplicatePendingConflicts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\)").
		WithArgs(int64(7), "thread", int64(3), models.ReportStatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err = ReportRepository{DB: db}.Create(context.Background(), models.Report{
		ReporterID: 7,
		TargetKind: models.ReportTargetThread,
		TargetID:   3,
		Reason:     "spam",
	})
	if err == nil {
		t.Fatalf("duplicate pending report should conflict")
	}
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReportCloseOnlyFromPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// update matches no row because the report was already dismissed
	mock.ExpectExec("UPDATE reports").
		WithArgs(models.ReportStatusResolved, int64(9), "dealt with", int64(4), models.ReportStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))

	now := time.Now()
	mock.ExpectQuery("SELECT id, reporter_id").
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "reporter_id", "target_kind", "target_id", "reason", "status",
			"resolved_by", "resolution_note", "created_at", "updated_at", "deleted_at",
		}).AddRow(int64(4), int64(7), "thread", int64(3), "spam",
			models.ReportStatusDismissed, int64(2), "", now, now, nil))

	err = ReportRepository{DB: db}.Close(context.Background(), 4, 9, models.ReportStatusResolved, "dealt with")
	if err == nil {
		t.Fatalf("closing a non-pending report should fail")
	}
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReportCloseMissingReportNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE reports").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT id, reporter_id").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err = ReportRepository{DB: db}.Close(context.Background(), 99, 9, models.ReportStatusDismissed, "")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReportCloseRejectsUnknownStatus(t *testing.T) {
	err := ReportRepository{}.Close(context.Background(), 1, 1, "escalated", "")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
