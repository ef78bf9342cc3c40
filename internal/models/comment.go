package models

import "time"

// Comments denormalize the author's username at write time so listing a
// thread needs no join against accounts.

// PostComment represents a comment on a post.
type PostComment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"size:24;index"`
	UserID    string    `json:"user_id" gorm:"size:7;index"`
	Username  string    `json:"username" gorm:"size:50"`
	Content   string    `json:"content" gorm:"size:500"`
	CreatedAt time.Time `json:"created_at"`
}

// ServiceComment represents a comment on a catalog service.
type ServiceComment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ServiceID string    `json:"service_id" gorm:"size:24;index"`
	UserID    string    `json:"user_id" gorm:"size:7;index"`
	Username  string    `json:"username" gorm:"size:50"`
	Content   string    `json:"content" gorm:"size:500"`
	CreatedAt time.Time `json:"created_at"`
}

// ContentComment represents a comment on a storefront content item.
type ContentComment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ContentID string    `json:"content_id" gorm:"size:24;index"`
	UserID    string    `json:"user_id" gorm:"size:7;index"`
	Username  string    `json:"username" gorm:"size:50"`
	Content   string    `json:"content" gorm:"size:500"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCommentRequest defines the request body for commenting on any item.
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}
