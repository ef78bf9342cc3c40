package repositories

import (
	"strings"

	"gorm.io/gorm"

	"github.com/munasbate/backend/internal/apperrors"
	"github.com/munasbate/backend/internal/models"
)

// FollowRepository defines the interface for follow data operations. Edge
// mutations and the denormalized counters on both accounts move in the same
// transaction; nothing else may touch those counters.
type FollowRepository interface {
	CreateFollow(followerID, followingID string) error
	DeleteFollow(followerID, followingID string) (bool, error)
	IsFollowing(followerID, followingID string) (bool, error)
	GetFollowers(userID string) ([]models.Account, error)
	GetFollowing(userID string) ([]models.Account, error)
	GetFollowingIDs(userID string) ([]string, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// CreateFollow inserts the edge and increments both accounts' counters
// atomically. The unique index on the pair turns a concurrent duplicate
// insert into a ConflictError.
func (r *PostgresFollowRepository) CreateFollow(followerID, followingID string) error {
	if followerID == followingID {
		return apperrors.Conflict("cannot follow yourself")
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		follow := &models.Follow{FollowerUserID: followerID, FollowingUserID: followingID}
		if err := tx.Create(follow).Error; err != nil {
			if strings.Contains(err.Error(), "duplicate key") {
				return apperrors.Conflict("already following this user")
			}
			return err
		}
		if err := tx.Model(&models.Account{}).Where("user_id = ?", followerID).
			UpdateColumn("following_count", gorm.Expr("following_count + 1")).Error; err != nil {
			return err
		}
		return tx.Model(&models.Account{}).Where("user_id = ?", followingID).
			UpdateColumn("followers_count", gorm.Expr("followers_count + 1")).Error
	})
}

// DeleteFollow removes the edge if present and decrements both counters,
// floored at zero. Absent edges are an idempotent no-op.
func (r *PostgresFollowRepository) DeleteFollow(followerID, followingID string) (bool, error) {
	deleted := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("follower_user_id = ? AND following_user_id = ?", followerID, followingID).
			Delete(&models.Follow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		deleted = true
		if err := tx.Model(&models.Account{}).
			Where("user_id = ? AND following_count > 0", followerID).
			UpdateColumn("following_count", gorm.Expr("following_count - 1")).Error; err != nil {
			return err
		}
		return tx.Model(&models.Account{}).
			Where("user_id = ? AND followers_count > 0", followingID).
			UpdateColumn("followers_count", gorm.Expr("followers_count - 1")).Error
	})
	return deleted, err
}

func (r *PostgresFollowRepository) IsFollowing(followerID, followingID string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Follow{}).
		Where("follower_user_id = ? AND following_user_id = ?", followerID, followingID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresFollowRepository) GetFollowers(userID string) ([]models.Account, error) {
	var accounts []models.Account
	err := r.db.Where("user_id IN (?)",
		r.db.Table("follows").Select("follower_user_id").Where("following_user_id = ?", userID),
	).Find(&accounts).Error
	return accounts, err
}

func (r *PostgresFollowRepository) GetFollowing(userID string) ([]models.Account, error) {
	var accounts []models.Account
	err := r.db.Where("user_id IN (?)",
		r.db.Table("follows").Select("following_user_id").Where("follower_user_id = ?", userID),
	).Find(&accounts).Error
	return accounts, err
}

func (r *PostgresFollowRepository) GetFollowingIDs(userID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.Follow{}).Where("follower_user_id = ?", userID).
		Pluck("following_user_id", &ids).Error
	return ids, err
}
