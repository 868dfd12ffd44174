package models

import (
	"time"
)

// Post represents a blog post. PV and ReplyCount are engagement
// counters maintained outside this service; they start at zero and are
// never touched by the admin flows.
type Post struct {
	ID         int       `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CategoryID int       `json:"category_id"`
	PV         int       `json:"pv"`
	ReplyCount int       `json:"reply_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreatePostRequest carries the admin form fields for a new post.
type CreatePostRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	CategoryID int    `json:"category_id"`
}

// UpdatePostRequest carries the admin form fields for editing a post.
// Only title, content and category are mutable.
type UpdatePostRequest struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	CategoryID int    `json:"category_id"`
}
