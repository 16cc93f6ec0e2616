package models

import (
	"time"
)

// Post represents a blog post. The same struct maps the relational `posts`
// table (GORM) and the `posts` collection (MongoDB).
type Post struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement" bson:"_id"`
	Title     string    `json:"title" gorm:"type:text;not null;uniqueIndex" bson:"title"`
	Content   string    `json:"content" gorm:"type:text;not null" bson:"content"`
	CreatedAt time.Time `json:"createdAt" gorm:"not null;index" bson:"created_at"`
}

// TableName implements the GORM tabler interface.
func (Post) TableName() string { return "posts" }

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// UpdatePostRequest defines the request body for updating an existing post.
// Both fields are replaced, so both are required.
type UpdatePostRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// APIResponse is the envelope used for mutations and errors.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    *Post  `json:"data,omitempty"`
}
