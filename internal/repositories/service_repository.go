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

// ServiceFilter narrows a catalog listing. Nil boolean pointers mean
// "don't filter on that flag".
type ServiceFilter struct {
	Category string
	Occasion string
	HasMusic *bool
	Is3D     *bool
}

// ServiceRepository defines the interface for catalog service operations
type ServiceRepository interface {
	CreateService(ctx context.Context, service *models.Service) error
	GetServiceByID(ctx context.Context, id string) (*models.Service, error)
	ListServices(ctx context.Context, filter ServiceFilter, limit int64) ([]models.Service, error)
	IncrementLikesCount(ctx context.Context, serviceID string, delta int) error
	IncrementCommentsCount(ctx context.Context, serviceID string) error
}

// MongoServiceRepository implements ServiceRepository for MongoDB
type MongoServiceRepository struct {
	collection *mongo.Collection
}

// NewMongoServiceRepository creates a new MongoServiceRepository
func NewMongoServiceRepository(db *mongo.Database) *MongoServiceRepository {
	return &MongoServiceRepository{collection: db.Collection("services")}
}

// CreateService creates a new catalog service in MongoDB
func (r *MongoServiceRepository) CreateService(ctx context.Context, service *models.Service) error {
	service.ID = primitive.NewObjectID()
	service.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, service)
	return err
}

// GetServiceByID retrieves a service by ID from MongoDB
func (r *MongoServiceRepository) GetServiceByID(ctx context.Context, id string) (*models.Service, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("invalid service ID format")
	}

	var service models.Service
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&service)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound("service not found")
		}
		return nil, err
	}
	return &service, nil
}

// ListServices retrieves services matching the filter, newest-first
func (r *MongoServiceRepository) ListServices(ctx context.Context, filter ServiceFilter, limit int64) ([]models.Service, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Occasion != "" {
		query["occasion"] = filter.Occasion
	}
	if filter.HasMusic != nil {
		query["has_music"] = *filter.HasMusic
	}
	if filter.Is3D != nil {
		query["is_3d"] = *filter.Is3D
	}

	services := []models.Service{}
	findOptions := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &services); err != nil {
		return nil, err
	}
	return services, nil
}

// IncrementLikesCount moves the likes counter by delta (+1 or -1) with $inc
func (r *MongoServiceRepository) IncrementLikesCount(ctx context.Context, serviceID string, delta int) error {
	objID, err := primitive.ObjectIDFromHex(serviceID)
	if err != nil {
		return apperrors.NotFound("invalid service ID format")
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"likes_count": delta}})
	return err
}

// IncrementCommentsCount increments the comments count of a service
func (r *MongoServiceRepository) IncrementCommentsCount(ctx context.Context, serviceID string) error {
	objID, err := primitive.ObjectIDFromHex(serviceID)
	if err != nil {
		return apperrors.NotFound("invalid service ID format")
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"comments_count": 1}})
	return err
}
