package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Storefront content types.
const (
	ContentTypeVideo = "video"
	ContentTypeAudio = "audio"
	ContentTypeImage = "image"
)

// Storefront represents a user-owned independent service page (PostgreSQL).
// The uniqueIndex on OwnerUserID enforces at most one storefront per user.
type Storefront struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	OwnerUserID    string    `json:"user_id" gorm:"size:7;uniqueIndex"`
	Name           string    `json:"name" gorm:"size:100"`
	Description    string    `json:"description" gorm:"size:1000"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
	CoverURL       string    `json:"cover_url,omitempty"`
	FollowersCount int64     `json:"followers_count" gorm:"default:0"`
	ContentCount   int64     `json:"content_count" gorm:"default:0"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"-"`
}

// StorefrontFollow is a one-sided follow edge scoped to a storefront; only
// the storefront's followers_count moves, never the follower's counts.
type StorefrontFollow struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	StorefrontID   uint      `json:"storefront_id" gorm:"index;uniqueIndex:idx_storefront_follower"`
	FollowerUserID string    `json:"follower_user_id" gorm:"size:7;index;uniqueIndex:idx_storefront_follower"`
	CreatedAt      time.Time `json:"created_at"`
}

// StorefrontContent represents a content item owned by a storefront (MongoDB).
type StorefrontContent struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	StorefrontID  uint               `json:"storefront_id" bson:"storefront_id"`
	Title         string             `json:"title" bson:"title"`
	Description   string             `json:"description,omitempty" bson:"description,omitempty"`
	ContentType   string             `json:"content_type" bson:"content_type"`
	FileURL       string             `json:"file_url" bson:"file_url"`
	ThumbnailURL  string             `json:"thumbnail_url,omitempty" bson:"thumbnail_url,omitempty"`
	LikesCount    int64              `json:"likes_count" bson:"likes_count"`
	CommentsCount int64              `json:"comments_count" bson:"comments_count"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
}

// CreateStorefrontRequest defines the request body for opening a storefront.
type CreateStorefrontRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"required,min=1,max=1000"`
	AvatarURL   string `json:"avatar_url,omitempty" validate:"omitempty,url"`
	CoverURL    string `json:"cover_url,omitempty" validate:"omitempty,url"`
}

// AddContentRequest defines the multipart form fields for adding a content
// item to a storefront. The file part is read separately by the handler.
type AddContentRequest struct {
	Title       string `form:"title" validate:"required,min=1,max=100"`
	Description string `form:"description" validate:"omitempty,max=1000"`
	ContentType string `form:"content_type" validate:"required,oneof=video audio image"`
}
