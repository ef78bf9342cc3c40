package repositories

import (
	"gorm.io/gorm"

	"github.com/munasbate/backend/internal/models"
)

// CommentRepository owns the comment tables for posts, catalog services and
// storefront content.
type CommentRepository interface {
	CreatePostComment(comment *models.PostComment) error
	ListPostComments(postID string) ([]models.PostComment, error)
	DeleteByPost(postID string) error

	CreateServiceComment(comment *models.ServiceComment) error
	ListServiceComments(serviceID string) ([]models.ServiceComment, error)

	CreateContentComment(comment *models.ContentComment) error
	ListContentComments(contentID string) ([]models.ContentComment, error)
	DeleteByContent(contentID string) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

func (r *PostgresCommentRepository) CreatePostComment(comment *models.PostComment) error {
	return r.db.Create(comment).Error
}

func (r *PostgresCommentRepository) ListPostComments(postID string) ([]models.PostComment, error) {
	var comments []models.PostComment
	err := r.db.Where("post_id = ?", postID).Order("created_at ASC").Find(&comments).Error
	return comments, err
}

func (r *PostgresCommentRepository) DeleteByPost(postID string) error {
	return r.db.Where("post_id = ?", postID).Delete(&models.PostComment{}).Error
}

func (r *PostgresCommentRepository) CreateServiceComment(comment *models.ServiceComment) error {
	return r.db.Create(comment).Error
}

func (r *PostgresCommentRepository) ListServiceComments(serviceID string) ([]models.ServiceComment, error) {
	var comments []models.ServiceComment
	err := r.db.Where("service_id = ?", serviceID).Order("created_at ASC").Find(&comments).Error
	return comments, err
}

func (r *PostgresCommentRepository) CreateContentComment(comment *models.ContentComment) error {
	return r.db.Create(comment).Error
}

func (r *PostgresCommentRepository) ListContentComments(contentID string) ([]models.ContentComment, error) {
	var comments []models.ContentComment
	err := r.db.Where("content_id = ?", contentID).Order("created_at ASC").Find(&comments).Error
	return comments, err
}

func (r *PostgresCommentRepository) DeleteByContent(contentID string) error {
	return r.db.Where("content_id = ?", contentID).Delete(&models.ContentComment{}).Error
}
