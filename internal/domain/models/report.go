package models

import "time"

const (
	ReportStatusPending   = "pending"
	ReportStatusResolved  = "resolved"
	ReportStatusDismissed = "dismissed"
)

const (
	ReportTargetThread  = "thread"
	ReportTargetComment = "comment"
)

type Report struct {
	ID             int64      `json:"id"`
	ReporterID     int64      `json:"reporter_id"`
	TargetKind     string     `json:"target_kind"`
	TargetID       int64      `json:"target_id"`
	Reason         string     `json:"reason"`
	Status         string     `json:"status"`
	ResolvedBy     *int64     `json:"resolved_by,omitempty"`
	ResolutionNote string     `json:"resolution_note,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
}

// ValidReportTarget reports whether s names a reportable entity.
func ValidReportTarget(s string) bool {
	return s == ReportTargetThread || s == ReportTargetComment
}

// ValidReportStatus reports whether s is a known report state.
func ValidReportStatus(s string) bool {
	return s == ReportStatusPending || s == ReportStatusResolved || s == ReportStatusDismissed
}
