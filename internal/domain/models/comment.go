package models

import "time"

type Comment struct {
	ID         int64      `json:"id"`
	ThreadID   int64      `json:"thread_id"`
	AuthorID   int64      `json:"author_id"`
	ParentID   *int64     `json:"parent_id,omitempty"`
	Body       string     `json:"body"`
	AuthorName string     `json:"author_name,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
}
