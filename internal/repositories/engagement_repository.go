package repositories

import (
	"strings"

	"gorm.io/gorm"

	"github.com/munasbate/backend/internal/models"
)

// EngagementRepository owns the like and save join tables for posts, catalog
// services and storefront content. Toggles are delete-if-exists /
// insert-if-absent under a unique index, so two racing toggles from the same
// user converge on one state instead of double-inserting. The second return
// reports whether this call changed the row; when a concurrent toggle wins
// the insert race it is false, and callers must not move their counters.
type EngagementRepository interface {
	TogglePostLike(postID, userID string) (on, changed bool, err error)
	HasPostLike(postID, userID string) (bool, error)
	CountPostLikes(postID string) (int64, error)
	TogglePostSave(postID, userID string) (on, changed bool, err error)
	HasPostSave(postID, userID string) (bool, error)
	GetSavedPostIDs(userID string, postIDs []string) (map[string]bool, error)
	GetLikedPostIDs(userID string, postIDs []string) (map[string]bool, error)

	ToggleServiceLike(serviceID, userID string) (on, changed bool, err error)
	HasServiceLike(serviceID, userID string) (bool, error)
	CountServiceLikes(serviceID string) (int64, error)
	ToggleServiceSave(serviceID, userID string) (on, changed bool, err error)
	HasServiceSave(serviceID, userID string) (bool, error)

	ToggleContentLike(contentID, userID string) (on, changed bool, err error)
	HasContentLike(contentID, userID string) (bool, error)
	CountContentLikes(contentID string) (int64, error)
	ToggleContentSave(contentID, userID string) (on, changed bool, err error)
	HasContentSave(contentID, userID string) (bool, error)

	DeleteByPost(postID string) error
	DeleteByContent(contentID string) error
}

// PostgresEngagementRepository implements EngagementRepository for PostgreSQL
type PostgresEngagementRepository struct {
	db *gorm.DB
}

// NewPostgresEngagementRepository creates a new PostgresEngagementRepository
func NewPostgresEngagementRepository(db *gorm.DB) *PostgresEngagementRepository {
	return &PostgresEngagementRepository{db: db}
}

// toggle deletes the row matching cond if present, otherwise inserts insert.
// The first return is true when the row exists after the call. A
// duplicate-key race on insert means another toggle from the same user won:
// the row is "on" but this call changed nothing, so changed comes back false
// and the caller must leave its denormalized counter alone.
func (r *PostgresEngagementRepository) toggle(model interface{}, cond string, args []interface{}, insert interface{}) (bool, bool, error) {
	on := false
	changed := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where(cond, args...).Delete(model)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			changed = true
			return nil
		}
		if err := tx.Create(insert).Error; err != nil {
			if strings.Contains(err.Error(), "duplicate key") {
				on = true
				return nil
			}
			return err
		}
		on = true
		changed = true
		return nil
	})
	return on, changed, err
}

func (r *PostgresEngagementRepository) has(model interface{}, cond string, args ...interface{}) (bool, error) {
	var count int64
	if err := r.db.Model(model).Where(cond, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresEngagementRepository) count(model interface{}, cond string, args ...interface{}) (int64, error) {
	var count int64
	err := r.db.Model(model).Where(cond, args...).Count(&count).Error
	return count, err
}

// --- Post likes and saves ---

func (r *PostgresEngagementRepository) TogglePostLike(postID, userID string) (bool, bool, error) {
	return r.toggle(&models.PostLike{}, "post_id = ? AND user_id = ?",
		[]interface{}{postID, userID}, &models.PostLike{PostID: postID, UserID: userID})
}

func (r *PostgresEngagementRepository) HasPostLike(postID, userID string) (bool, error) {
	return r.has(&models.PostLike{}, "post_id = ? AND user_id = ?", postID, userID)
}

func (r *PostgresEngagementRepository) CountPostLikes(postID string) (int64, error) {
	return r.count(&models.PostLike{}, "post_id = ?", postID)
}

func (r *PostgresEngagementRepository) TogglePostSave(postID, userID string) (bool, bool, error) {
	return r.toggle(&models.SavedPost{}, "post_id = ? AND user_id = ?",
		[]interface{}{postID, userID}, &models.SavedPost{PostID: postID, UserID: userID})
}

func (r *PostgresEngagementRepository) HasPostSave(postID, userID string) (bool, error) {
	return r.has(&models.SavedPost{}, "post_id = ? AND user_id = ?", postID, userID)
}

// GetSavedPostIDs returns which of the given posts the user has saved
func (r *PostgresEngagementRepository) GetSavedPostIDs(userID string, postIDs []string) (map[string]bool, error) {
	saved := make(map[string]bool, len(postIDs))
	if len(postIDs) == 0 {
		return saved, nil
	}
	var ids []string
	if err := r.db.Model(&models.SavedPost{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		saved[id] = true
	}
	return saved, nil
}

// GetLikedPostIDs returns which of the given posts the user has liked
func (r *PostgresEngagementRepository) GetLikedPostIDs(userID string, postIDs []string) (map[string]bool, error) {
	liked := make(map[string]bool, len(postIDs))
	if len(postIDs) == 0 {
		return liked, nil
	}
	var ids []string
	if err := r.db.Model(&models.PostLike{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

// --- Service likes and saves ---

func (r *PostgresEngagementRepository) ToggleServiceLike(serviceID, userID string) (bool, bool, error) {
	return r.toggle(&models.ServiceLike{}, "service_id = ? AND user_id = ?",
		[]interface{}{serviceID, userID}, &models.ServiceLike{ServiceID: serviceID, UserID: userID})
}

func (r *PostgresEngagementRepository) HasServiceLike(serviceID, userID string) (bool, error) {
	return r.has(&models.ServiceLike{}, "service_id = ? AND user_id = ?", serviceID, userID)
}

func (r *PostgresEngagementRepository) CountServiceLikes(serviceID string) (int64, error) {
	return r.count(&models.ServiceLike{}, "service_id = ?", serviceID)
}

func (r *PostgresEngagementRepository) ToggleServiceSave(serviceID, userID string) (bool, bool, error) {
	return r.toggle(&models.SavedService{}, "service_id = ? AND user_id = ?",
		[]interface{}{serviceID, userID}, &models.SavedService{ServiceID: serviceID, UserID: userID})
}

func (r *PostgresEngagementRepository) HasServiceSave(serviceID, userID string) (bool, error) {
	return r.has(&models.SavedService{}, "service_id = ? AND user_id = ?", serviceID, userID)
}

// --- Storefront content likes and saves ---

func (r *PostgresEngagementRepository) ToggleContentLike(contentID, userID string) (bool, bool, error) {
	return r.toggle(&models.ContentLike{}, "content_id = ? AND user_id = ?",
		[]interface{}{contentID, userID}, &models.ContentLike{ContentID: contentID, UserID: userID})
}

func (r *PostgresEngagementRepository) HasContentLike(contentID, userID string) (bool, error) {
	return r.has(&models.ContentLike{}, "content_id = ? AND user_id = ?", contentID, userID)
}

func (r *PostgresEngagementRepository) CountContentLikes(contentID string) (int64, error) {
	return r.count(&models.ContentLike{}, "content_id = ?", contentID)
}

func (r *PostgresEngagementRepository) ToggleContentSave(contentID, userID string) (bool, bool, error) {
	return r.toggle(&models.SavedContent{}, "content_id = ? AND user_id = ?",
		[]interface{}{contentID, userID}, &models.SavedContent{ContentID: contentID, UserID: userID})
}

func (r *PostgresEngagementRepository) HasContentSave(contentID, userID string) (bool, error) {
	return r.has(&models.SavedContent{}, "content_id = ? AND user_id = ?", contentID, userID)
}

// --- Cascades ---

// DeleteByPost removes all like and save rows for a deleted post. Runs
// before the post document is removed so no orphans survive a failure.
func (r *PostgresEngagementRepository) DeleteByPost(postID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&models.PostLike{}).Error; err != nil {
			return err
		}
		return tx.Where("post_id = ?", postID).Delete(&models.SavedPost{}).Error
	})
}

// DeleteByContent removes all like and save rows for a deleted content item.
func (r *PostgresEngagementRepository) DeleteByContent(contentID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("content_id = ?", contentID).Delete(&models.ContentLike{}).Error; err != nil {
			return err
		}
		return tx.Where("content_id = ?", contentID).Delete(&models.SavedContent{}).Error
	})
}
