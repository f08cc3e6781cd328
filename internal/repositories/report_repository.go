package repositories

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"boardapi/internal/db"
	"boardapi/internal/domain"
	"boardapi/internal/domain/models"
	"boardapi/internal/query"
)

type ReportRepository struct {
	DB *sql.DB
}

type ReportFilter struct {
	query.Params
	Status      *string
	Kind        *string
	ReporterID  *int64
	TargetID    *int64
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

const reportColumns = `id, reporter_id, target_kind, target_id, reason, status,
		resolved_by, COALESCE(resolution_note,''), created_at, updated_at, deleted_at`

func scanReportRows(rows *sql.Rows) (models.Report, error) {
	var (
		rep      models.Report
		resolved sql.NullInt64
		deleted  sql.NullTime
	)
	err := rows.Scan(&rep.ID, &rep.ReporterID, &rep.TargetKind, &rep.TargetID,
		&rep.Reason, &rep.Status, &resolved, &rep.ResolutionNote,
		&rep.CreatedAt, &rep.UpdatedAt, &deleted)
	if resolved.Valid {
		v := resolved.Int64
		rep.ResolvedBy = &v
	}
	rep.DeletedAt = nullTimeToPtr(deleted)
	return rep, err
}

func (r ReportRepository) List(ctx context.Context, f ReportFilter) (query.Page[models.Report], error) {
	where := query.NewBuilder().NotDeleted().
		EqString("status", f.Status).
		EqString("target_kind", f.Kind).
		EqInt64("reporter_id", f.ReporterID).
		EqInt64("target_id", f.TargetID).
		From("created_at", f.CreatedFrom).
		To("created_at", f.CreatedTo)

	page, err := query.List(ctx, r.DB, query.Spec{
		Select: reportColumns,
		From:   "reports",
		Where:  where,
		Order:  query.ResolveSort(f.Sort, "created_at", "updated_at", "status"),
		Params: f.Params,
	}, scanReportRows)
	if err != nil {
		return page, translateDBError("reports", err)
	}
	return page, nil
}

func (r ReportRepository) GetByID(ctx context.Context, id int64) (models.Report, error) {
	var (
		rep      models.Report
		resolved sql.NullInt64
		deleted  sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx, `
		SELECT `+reportColumns+`
		FROM reports
		WHERE id = ? AND deleted_at IS NULL
		LIMIT 1`, id).Scan(
		&rep.ID, &rep.ReporterID, &rep.TargetKind, &rep.TargetID,
		&rep.Reason, &rep.Status, &resolved, &rep.ResolutionNote,
		&rep.CreatedAt, &rep.UpdatedAt, &deleted)
	if err != nil {
		return models.Report{}, translateDBError("report", err)
	}
	if resolved.Valid {
		v := resolved.Int64
		rep.ResolvedBy = &v
	}
	rep.DeletedAt = nullTimeToPtr(deleted)
	return rep, nil
}

// Create files a report. A still-pending report by the same reporter on the
// same target is a conflict.
func (r ReportRepository) Create(ctx context.Context, rep models.Report) (int64, error) {
	var pending int
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM reports
		WHERE reporter_id = ? AND target_kind = ? AND target_id = ?
		  AND status = ? AND deleted_at IS NULL`,
		rep.ReporterID, rep.TargetKind, rep.TargetID, models.ReportStatusPending).Scan(&pending)
	if err != nil {
		return 0, translateDBError("report", err)
	}
	if pending > 0 {
		return 0, domain.ConflictError{Resource: "report", Msg: "already reported and pending review"}
	}

	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO reports (reporter_id, target_kind, target_id, reason, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, NOW(), NOW())`,
		rep.ReporterID, rep.TargetKind, rep.TargetID,
		strings.TrimSpace(rep.Reason), models.ReportStatusPending)
	if err != nil {
		return 0, translateDBError("report", err)
	}
	id, _ := res.LastInsertId()
	return id, nil
}

// Close moves a pending report to resolved or dismissed. The WHERE guard on
// the pending status makes concurrent closes race-safe: the second attempt
// matches no row and is reported as a state conflict.
func (r ReportRepository) Close(ctx context.Context, id, resolverID int64, status, note string) error {
	if status != models.ReportStatusResolved && status != models.ReportStatusDismissed {
		return domain.ValidationError{Field: "status", Msg: "must be resolved or dismissed"}
	}

	res, err := r.DB.ExecContext(ctx, `
		UPDATE reports
		SET status = ?, resolved_by = ?, resolution_note = ?, updated_at = NOW()
		WHERE id = ? AND status = ? AND deleted_at IS NULL`,
		status, resolverID, db.NullIfEmpty(strings.TrimSpace(note)), id, models.ReportStatusPending)
	if err != nil {
		return translateDBError("report", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return domain.ConflictError{Resource: "report", Msg: "not in pending state"}
	}
	return nil
}
