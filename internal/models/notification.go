package models

import "time"

// Notification kinds.
const (
	NotificationLike    = "like"
	NotificationComment = "comment"
	NotificationFollow  = "follow"
	NotificationMessage = "message"
)

// Notification represents a fan-out record created as a side effect of
// likes, comments, follows and messages (PostgreSQL). Purely additive; a
// notification is never emitted when the recipient is the actor.
type Notification struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     string    `json:"user_id" gorm:"size:7;index"` // recipient
	Type       string    `json:"type" gorm:"size:10;index"`
	FromUserID string    `json:"from_user_id" gorm:"size:7;index"`
	PostID     string    `json:"post_id,omitempty" gorm:"size:24"` // target item id, when relevant
	IsRead     bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
}
