package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"boardapi/internal/domain/models"
	"boardapi/internal/query"
	"boardapi/internal/repositories"
	"boardapi/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ExportService renders threads and moderation data as PDF documents.
type ExportService struct {
	Threads  repositories.ThreadRepository
	Comments repositories.CommentRepository
	Reports  repositories.ReportRepository
}

// ThreadTranscript renders a thread and all of its comments.
func (s ExportService) ThreadTranscript(ctx context.Context, threadID int64) ([]byte, string, error) {
	thread, err := s.Threads.GetByID(ctx, threadID, false)
	if err != nil {
		return nil, "", err
	}

	comments, err := s.allComments(ctx, threadID)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Thread Transcript", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 8, thread.Title, "", "", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.Cell(0, 6, fmt.Sprintf("%s in %s, %s",
		safe(thread.AuthorName, "unknown"),
		safe(thread.CategoryName, "uncategorized"),
		thread.CreatedAt.Format("2006-01-02 15:04")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, thread.Body, "", "", false)
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Comments (%d)", len(comments)))
	pdf.Ln(9)

	for _, c := range comments {
		pdf.SetFont("Helvetica", "B", 10)
		header := fmt.Sprintf("%s, %s", safe(c.AuthorName, "unknown"), c.CreatedAt.Format("2006-01-02 15:04"))
		if c.ParentID != nil {
			header += fmt.Sprintf(" (reply to #%d)", *c.ParentID)
		}
		pdf.Cell(0, 6, header)
		pdf.Ln(6)

		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, c.Body, "", "", false)
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("thread_%d_transcript.pdf", thread.ID)
	return buf.Bytes(), filename, nil
}

// ModerationSummary renders the report queue, optionally narrowed to one
// status.
func (s ExportService) ModerationSummary(ctx context.Context, status *string) ([]byte, string, error) {
	reports, err := s.allReports(ctx, status)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Moderation Summary", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "MODERATION SUMMARY")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	scope := "all statuses"
	if status != nil && strings.TrimSpace(*status) != "" {
		scope = "status: " + strings.TrimSpace(*status)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s, %s, %d reports",
		time.Now().Format("2006-01-02 15:04"), scope, len(reports)))
	pdf.Ln(10)

	for _, r := range reports {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Cell(0, 6, fmt.Sprintf("#%d %s %d [%s]", r.ID, r.TargetKind, r.TargetID, r.Status))
		pdf.Ln(6)

		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, "Reason: "+safe(r.Reason, "-"), "", "", false)
		if r.ResolutionNote != "" {
			pdf.MultiCell(0, 5, "Resolution: "+r.ResolutionNote, "", "", false)
		}
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("moderation_summary_%s.pdf", utils.FormatDate(time.Now()))
	return buf.Bytes(), filename, nil
}

func (s ExportService) allComments(ctx context.Context, threadID int64) ([]models.Comment, error) {
	out := []models.Comment{}
	for page := 1; ; page++ {
		res, err := s.Comments.ListByThread(ctx, threadID, query.Params{
			Page:  page,
			Limit: query.MaxLimit,
			Sort:  "created_at_asc",
		})
		if err != nil {
			return nil, err
		}
		out = append(out, res.Data...)
		if int64(page) >= res.Pagination.Pages {
			return out, nil
		}
	}
}

func (s ExportService) allReports(ctx context.Context, status *string) ([]models.Report, error) {
	out := []models.Report{}
	for page := 1; ; page++ {
		res, err := s.Reports.List(ctx, repositories.ReportFilter{
			Params: query.Params{Page: page, Limit: query.MaxLimit, Sort: "created_at_asc"},
			Status: status,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, res.Data...)
		if int64(page) >= res.Pagination.Pages {
			return out, nil
		}
	}
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
