package models

import (
	"path"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Catalog categories. Zaffat/sheilat services carry the has_music flag,
// invitations/greetings carry the is_3d flag; the other one stays null.
const (
	CategoryZaffat      = "zaffat"
	CategorySheilat     = "sheilat"
	CategoryInvitations = "invitations"
	CategoryGreetings   = "greetings"
)

// File types derived from the uploaded file's extension.
const (
	FileTypeAudio = "audio"
	FileTypeVideo = "video"
)

// Service represents a published catalog item stored in MongoDB.
type Service struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Category        string             `json:"category" bson:"category"`
	Occasion        string             `json:"occasion" bson:"occasion"`
	Title           string             `json:"title" bson:"title"`
	Description     string             `json:"description" bson:"description"`
	FileURL         string             `json:"file_url,omitempty" bson:"file_url,omitempty"`
	FileType        string             `json:"file_type" bson:"file_type"`
	HasMusic        *bool              `json:"has_music" bson:"has_music"`
	Is3D            *bool              `json:"is_3d" bson:"is_3d"`
	PublisherUserID string             `json:"publisher_user_id" bson:"publisher_user_id"`
	LikesCount      int64              `json:"likes_count" bson:"likes_count"`
	CommentsCount   int64              `json:"comments_count" bson:"comments_count"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
}

// PublishServiceRequest defines the multipart form fields for publishing a
// catalog service. The file part is read separately by the handler.
type PublishServiceRequest struct {
	Category    string `form:"category" validate:"required,oneof=zaffat sheilat invitations greetings"`
	Occasion    string `form:"occasion" validate:"required,max=50"`
	Title       string `form:"title" validate:"required,min=1,max=100"`
	Description string `form:"description" validate:"required,min=1,max=1000"`
	HasMusic    *bool  `form:"has_music"`
	Is3D        *bool  `form:"is_3d"`
}

// MusicCategory reports whether the category uses the has_music flag.
func MusicCategory(category string) bool {
	return category == CategoryZaffat || category == CategorySheilat
}

// DesignCategory reports whether the category uses the is_3d flag.
func DesignCategory(category string) bool {
	return category == CategoryInvitations || category == CategoryGreetings
}

// FileTypeFromName sniffs audio vs video from a file name's extension.
func FileTypeFromName(name string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	switch ext {
	case "mp4", "webm", "mov", "avi":
		return FileTypeVideo
	default:
		return FileTypeAudio
	}
}
