package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/munasbate/backend/internal/apperrors"
	"github.com/munasbate/backend/internal/models"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetAllPosts(ctx context.Context, limit int64) ([]models.Post, error)
	GetPostsByAuthors(ctx context.Context, authorIDs []string, limit int64) ([]models.Post, error)
	GetPostsByAuthor(ctx context.Context, authorID string, limit int64) ([]models.Post, error)
	DeletePost(ctx context.Context, id string) error
	IncrementLikesCount(ctx context.Context, postID string, delta int) error
	IncrementCommentsCount(ctx context.Context, postID string) error
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// CreatePost creates a new post in MongoDB
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetPostByID retrieves a post by ID from MongoDB
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("invalid post ID format")
	}

	var post models.Post
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound("post not found")
		}
		return nil, err
	}
	return &post, nil
}

// GetAllPosts retrieves posts newest-first with a hard cap
func (r *MongoPostRepository) GetAllPosts(ctx context.Context, limit int64) ([]models.Post, error) {
	return r.find(ctx, bson.M{}, limit)
}

// GetPostsByAuthors retrieves posts by any of the given authors, newest-first
func (r *MongoPostRepository) GetPostsByAuthors(ctx context.Context, authorIDs []string, limit int64) ([]models.Post, error) {
	if len(authorIDs) == 0 {
		return []models.Post{}, nil
	}
	return r.find(ctx, bson.M{"author_user_id": bson.M{"$in": authorIDs}}, limit)
}

// GetPostsByAuthor retrieves a single author's posts, newest-first
func (r *MongoPostRepository) GetPostsByAuthor(ctx context.Context, authorID string, limit int64) ([]models.Post, error) {
	return r.find(ctx, bson.M{"author_user_id": authorID}, limit)
}

func (r *MongoPostRepository) find(ctx context.Context, filter bson.M, limit int64) ([]models.Post, error) {
	posts := []models.Post{}
	findOptions := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// DeletePost deletes a post by ID from MongoDB
func (r *MongoPostRepository) DeletePost(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.NotFound("invalid post ID format")
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperrors.NotFound("post not found")
	}
	return nil
}

// IncrementLikesCount moves the likes counter by delta (+1 or -1) with $inc
func (r *MongoPostRepository) IncrementLikesCount(ctx context.Context, postID string, delta int) error {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return apperrors.NotFound("invalid post ID format")
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"likes_count": delta}})
	return err
}

// IncrementCommentsCount increments the comments count of a post
func (r *MongoPostRepository) IncrementCommentsCount(ctx context.Context, postID string) error {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return apperrors.NotFound("invalid post ID format")
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"comments_count": 1}})
	return err
}
