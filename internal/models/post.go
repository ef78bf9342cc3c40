package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a feed post stored in MongoDB. The engagement counters are
// denormalized and only ever mutated with $inc.
type Post struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorUserID  string             `json:"author_user_id" bson:"author_user_id"`
	Content       string             `json:"content" bson:"content"`
	ImageURL      string             `json:"image_url,omitempty" bson:"image_url,omitempty"`
	LikesCount    int64              `json:"likes_count" bson:"likes_count"`
	CommentsCount int64              `json:"comments_count" bson:"comments_count"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
}

// CreatePostRequest defines the request body for creating a new post.
type CreatePostRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=500"`
	ImageURL string `json:"image_url,omitempty" validate:"omitempty,url"`
}
