package models

import "time"

const (
	ThreadStatusOpen   = "open"
	ThreadStatusClosed = "closed"
)

type Thread struct {
	ID           int64      `json:"id"`
	CategoryID   int64      `json:"category_id"`
	AuthorID     int64      `json:"author_id"`
	Title        string     `json:"title"`
	Body         string     `json:"body"`
	Status       string     `json:"status"`
	Pinned       bool       `json:"pinned"`
	AuthorName   string     `json:"author_name,omitempty"`
	CategoryName string     `json:"category_name,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

// ValidThreadStatus reports whether s is a known thread state.
func ValidThreadStatus(s string) bool {
	return s == ThreadStatusOpen || s == ThreadStatusClosed
}
