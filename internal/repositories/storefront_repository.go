package repositories

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/gorm"

	"github.com/munasbate/backend/internal/apperrors"
	"github.com/munasbate/backend/internal/models"
)

// StorefrontRepository owns the storefront rows and follow edges in
// PostgreSQL and the content documents in MongoDB.
type StorefrontRepository interface {
	CreateStorefront(storefront *models.Storefront) error
	GetByID(id uint) (*models.Storefront, error)
	GetByOwner(ownerUserID string) (*models.Storefront, error)
	DeleteStorefront(id uint) error

	CreateContent(ctx context.Context, content *models.StorefrontContent) error
	GetContentByID(ctx context.Context, id string) (*models.StorefrontContent, error)
	ListContent(ctx context.Context, storefrontID uint, limit int64) ([]models.StorefrontContent, error)
	ListContentIDs(ctx context.Context, storefrontID uint) ([]string, error)
	DeleteContentByStorefront(ctx context.Context, storefrontID uint) error
	IncrementContentLikes(ctx context.Context, contentID string, delta int) error
	IncrementContentComments(ctx context.Context, contentID string) error

	FollowStorefront(storefrontID uint, followerUserID string) error
	UnfollowStorefront(storefrontID uint, followerUserID string) (bool, error)
	IsFollowingStorefront(storefrontID uint, followerUserID string) (bool, error)
}

type storefrontRepository struct {
	db         *gorm.DB
	collection *mongo.Collection
}

// NewStorefrontRepository creates a new StorefrontRepository
func NewStorefrontRepository(mongoDB *mongo.Database, db *gorm.DB) StorefrontRepository {
	return &storefrontRepository{db: db, collection: mongoDB.Collection("storefront_content")}
}

// CreateStorefront inserts the row; the unique index on owner_user_id makes
// a second storefront for the same user a ConflictError.
func (r *storefrontRepository) CreateStorefront(storefront *models.Storefront) error {
	if err := r.db.Create(storefront).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return apperrors.Conflict("user already owns a storefront")
		}
		return err
	}
	return nil
}

func (r *storefrontRepository) GetByID(id uint) (*models.Storefront, error) {
	var storefront models.Storefront
	if err := r.db.First(&storefront, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("storefront not found")
		}
		return nil, err
	}
	return &storefront, nil
}

func (r *storefrontRepository) GetByOwner(ownerUserID string) (*models.Storefront, error) {
	var storefront models.Storefront
	if err := r.db.Where("owner_user_id = ?", ownerUserID).First(&storefront).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("storefront not found")
		}
		return nil, err
	}
	return &storefront, nil
}

// DeleteStorefront removes the row and its follow edges. Content documents
// and their engagement rows are cascaded by the handler first.
func (r *storefrontRepository) DeleteStorefront(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("storefront_id = ?", id).Delete(&models.StorefrontFollow{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Storefront{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.NotFound("storefront not found")
		}
		return nil
	})
}

// CreateContent inserts the document and bumps the owner's content_count.
func (r *storefrontRepository) CreateContent(ctx context.Context, content *models.StorefrontContent) error {
	content.ID = primitive.NewObjectID()
	content.CreatedAt = time.Now()
	if _, err := r.collection.InsertOne(ctx, content); err != nil {
		return err
	}
	return r.db.Model(&models.Storefront{}).Where("id = ?", content.StorefrontID).
		UpdateColumn("content_count", gorm.Expr("content_count + 1")).Error
}

func (r *storefrontRepository) GetContentByID(ctx context.Context, id string) (*models.StorefrontContent, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("invalid content ID format")
	}

	var content models.StorefrontContent
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&content)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound("content not found")
		}
		return nil, err
	}
	return &content, nil
}

func (r *storefrontRepository) ListContent(ctx context.Context, storefrontID uint, limit int64) ([]models.StorefrontContent, error) {
	items := []models.StorefrontContent{}
	findOptions := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"storefront_id": storefrontID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *storefrontRepository) ListContentIDs(ctx context.Context, storefrontID uint) ([]string, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"storefront_id": storefrontID},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID.Hex()
	}
	return ids, nil
}

func (r *storefrontRepository) DeleteContentByStorefront(ctx context.Context, storefrontID uint) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"storefront_id": storefrontID})
	return err
}

func (r *storefrontRepository) IncrementContentLikes(ctx context.Context, contentID string, delta int) error {
	objID, err := primitive.ObjectIDFromHex(contentID)
	if err != nil {
		return apperrors.NotFound("invalid content ID format")
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"likes_count": delta}})
	return err
}

func (r *storefrontRepository) IncrementContentComments(ctx context.Context, contentID string) error {
	objID, err := primitive.ObjectIDFromHex(contentID)
	if err != nil {
		return apperrors.NotFound("invalid content ID format")
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"comments_count": 1}})
	return err
}

// FollowStorefront inserts the edge and increments followers_count in one
// transaction. One-sided: the follower's own counts never move.
func (r *storefrontRepository) FollowStorefront(storefrontID uint, followerUserID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		edge := &models.StorefrontFollow{StorefrontID: storefrontID, FollowerUserID: followerUserID}
		if err := tx.Create(edge).Error; err != nil {
			if strings.Contains(err.Error(), "duplicate key") {
				return apperrors.Conflict("already following this storefront")
			}
			return err
		}
		return tx.Model(&models.Storefront{}).Where("id = ?", storefrontID).
			UpdateColumn("followers_count", gorm.Expr("followers_count + 1")).Error
	})
}

// UnfollowStorefront removes the edge if present, decrementing floored at 0.
func (r *storefrontRepository) UnfollowStorefront(storefrontID uint, followerUserID string) (bool, error) {
	deleted := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("storefront_id = ? AND follower_user_id = ?", storefrontID, followerUserID).
			Delete(&models.StorefrontFollow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		deleted = true
		return tx.Model(&models.Storefront{}).
			Where("id = ? AND followers_count > 0", storefrontID).
			UpdateColumn("followers_count", gorm.Expr("followers_count - 1")).Error
	})
	return deleted, err
}

func (r *storefrontRepository) IsFollowingStorefront(storefrontID uint, followerUserID string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.StorefrontFollow{}).
		Where("storefront_id = ? AND follower_user_id = ?", storefrontID, followerUserID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
