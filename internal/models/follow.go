package models

import "time"

// Follow represents a follow edge between two accounts. The pair is unique
// and self-follows are rejected before insert.
type Follow struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	FollowerUserID  string    `json:"follower_user_id" gorm:"size:7;index;uniqueIndex:idx_follower_following"`
	FollowingUserID string    `json:"following_user_id" gorm:"size:7;index;uniqueIndex:idx_follower_following"`
	CreatedAt       time.Time `json:"created_at"`
}
