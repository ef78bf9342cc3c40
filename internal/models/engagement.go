package models

import "time"

// Like/save join tables. Each pair is unique; existence of a like row is the
// source of truth that the denormalized counter on the parent item tracks.

// PostLike represents a like on a post.
type PostLike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"size:24;index;uniqueIndex:idx_post_user_like"`
	UserID    string    `json:"user_id" gorm:"size:7;index;uniqueIndex:idx_post_user_like"`
	CreatedAt time.Time `json:"created_at"`
}

// ServiceLike represents a like on a catalog service.
type ServiceLike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ServiceID string    `json:"service_id" gorm:"size:24;index;uniqueIndex:idx_service_user_like"`
	UserID    string    `json:"user_id" gorm:"size:7;index;uniqueIndex:idx_service_user_like"`
	CreatedAt time.Time `json:"created_at"`
}

// ContentLike represents a like on a storefront content item.
type ContentLike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ContentID string    `json:"content_id" gorm:"size:24;index;uniqueIndex:idx_content_user_like"`
	UserID    string    `json:"user_id" gorm:"size:7;index;uniqueIndex:idx_content_user_like"`
	CreatedAt time.Time `json:"created_at"`
}

// SavedPost is a pure bookmark with no counter side effects.
type SavedPost struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"size:24;index;uniqueIndex:idx_post_user_save"`
	UserID    string    `json:"user_id" gorm:"size:7;index;uniqueIndex:idx_post_user_save"`
	CreatedAt time.Time `json:"created_at"`
}

// SavedService bookmarks a catalog service.
type SavedService struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ServiceID string    `json:"service_id" gorm:"size:24;index;uniqueIndex:idx_service_user_save"`
	UserID    string    `json:"user_id" gorm:"size:7;index;uniqueIndex:idx_service_user_save"`
	CreatedAt time.Time `json:"created_at"`
}

// SavedContent bookmarks a storefront content item.
type SavedContent struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ContentID string    `json:"content_id" gorm:"size:24;index;uniqueIndex:idx_content_user_save"`
	UserID    string    `json:"user_id" gorm:"size:7;index;uniqueIndex:idx_content_user_save"`
	CreatedAt time.Time `json:"created_at"`
}
