package handlers

import (
	"context"
	"io"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"

	"github.com/munasbate/backend/internal/models"
	"github.com/munasbate/backend/internal/repositories"
	"github.com/munasbate/backend/validators"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validators.NewValidator()
	return e
}

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) CreateAccount(account *models.Account) error {
	args := m.Called(account)
	return args.Error(0)
}

func (m *MockAccountRepository) GetByUserID(userID string) (*models.Account, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByEmailOrPhone(email, phone string) (*models.Account, error) {
	args := m.Called(email, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) UserIDExists(userID string) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) GenerateUserID() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *MockAccountRepository) UpdateProfile(userID string, fields map[string]interface{}) error {
	args := m.Called(userID, fields)
	return args.Error(0)
}

func (m *MockAccountRepository) SearchAccounts(query string, limit int) ([]models.Account, error) {
	args := m.Called(query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Account), args.Error(1)
}

func (m *MockAccountRepository) GetCompactMap(userIDs []string) (map[string]models.AccountCompact, error) {
	args := m.Called(userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]models.AccountCompact), args.Error(1)
}

var _ repositories.AccountRepository = (*MockAccountRepository)(nil)

// MockFollowRepository is a mock implementation of FollowRepository
type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) CreateFollow(followerID, followingID string) error {
	args := m.Called(followerID, followingID)
	return args.Error(0)
}

func (m *MockFollowRepository) DeleteFollow(followerID, followingID string) (bool, error) {
	args := m.Called(followerID, followingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) IsFollowing(followerID, followingID string) (bool, error) {
	args := m.Called(followerID, followingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) GetFollowers(userID string) ([]models.Account, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Account), args.Error(1)
}

func (m *MockFollowRepository) GetFollowing(userID string) ([]models.Account, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Account), args.Error(1)
}

func (m *MockFollowRepository) GetFollowingIDs(userID string) ([]string, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

var _ repositories.FollowRepository = (*MockFollowRepository)(nil)

// MockPostRepository is a mock implementation of PostRepository
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) GetAllPosts(ctx context.Context, limit int64) ([]models.Post, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) GetPostsByAuthors(ctx context.Context, authorIDs []string, limit int64) ([]models.Post, error) {
	args := m.Called(ctx, authorIDs, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) GetPostsByAuthor(ctx context.Context, authorID string, limit int64) ([]models.Post, error) {
	args := m.Called(ctx, authorID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) DeletePost(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) IncrementLikesCount(ctx context.Context, postID string, delta int) error {
	args := m.Called(ctx, postID, delta)
	return args.Error(0)
}

func (m *MockPostRepository) IncrementCommentsCount(ctx context.Context, postID string) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

var _ repositories.PostRepository = (*MockPostRepository)(nil)

// MockServiceRepository is a mock implementation of ServiceRepository
type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) CreateService(ctx context.Context, service *models.Service) error {
	args := m.Called(ctx, service)
	return args.Error(0)
}

func (m *MockServiceRepository) GetServiceByID(ctx context.Context, id string) (*models.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}

func (m *MockServiceRepository) ListServices(ctx context.Context, filter repositories.ServiceFilter, limit int64) ([]models.Service, error) {
	args := m.Called(ctx, filter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Service), args.Error(1)
}

func (m *MockServiceRepository) IncrementLikesCount(ctx context.Context, serviceID string, delta int) error {
	args := m.Called(ctx, serviceID, delta)
	return args.Error(0)
}

func (m *MockServiceRepository) IncrementCommentsCount(ctx context.Context, serviceID string) error {
	args := m.Called(ctx, serviceID)
	return args.Error(0)
}

var _ repositories.ServiceRepository = (*MockServiceRepository)(nil)

// MockEngagementRepository is a mock implementation of EngagementRepository
type MockEngagementRepository struct {
	mock.Mock
}

func (m *MockEngagementRepository) TogglePostLike(postID, userID string) (bool, bool, error) {
	args := m.Called(postID, userID)
	return args.Bool(0), args.Bool(1), args.Error(2)
}

func (m *MockEngagementRepository) HasPostLike(postID, userID string) (bool, error) {
	args := m.Called(postID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementRepository) CountPostLikes(postID string) (int64, error) {
	args := m.Called(postID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEngagementRepository) TogglePostSave(postID, userID string) (bool, bool, error) {
	args := m.Called(postID, userID)
	return args.Bool(0), args.Bool(1), args.Error(2)
}

func (m *MockEngagementRepository) HasPostSave(postID, userID string) (bool, error) {
	args := m.Called(postID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementRepository) GetSavedPostIDs(userID string, postIDs []string) (map[string]bool, error) {
	args := m.Called(userID, postIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

func (m *MockEngagementRepository) GetLikedPostIDs(userID string, postIDs []string) (map[string]bool, error) {
	args := m.Called(userID, postIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

func (m *MockEngagementRepository) ToggleServiceLike(serviceID, userID string) (bool, bool, error) {
	args := m.Called(serviceID, userID)
	return args.Bool(0), args.Bool(1), args.Error(2)
}

func (m *MockEngagementRepository) HasServiceLike(serviceID, userID string) (bool, error) {
	args := m.Called(serviceID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementRepository) CountServiceLikes(serviceID string) (int64, error) {
	args := m.Called(serviceID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEngagementRepository) ToggleServiceSave(serviceID, userID string) (bool, bool, error) {
	args := m.Called(serviceID, userID)
	return args.Bool(0), args.Bool(1), args.Error(2)
}

func (m *MockEngagementRepository) HasServiceSave(serviceID, userID string) (bool, error) {
	args := m.Called(serviceID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementRepository) ToggleContentLike(contentID, userID string) (bool, bool, error) {
	args := m.Called(contentID, userID)
	return args.Bool(0), args.Bool(1), args.Error(2)
}

func (m *MockEngagementRepository) HasContentLike(contentID, userID string) (bool, error) {
	args := m.Called(contentID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementRepository) CountContentLikes(contentID string) (int64, error) {
	args := m.Called(contentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEngagementRepository) ToggleContentSave(contentID, userID string) (bool, bool, error) {
	args := m.Called(contentID, userID)
	return args.Bool(0), args.Bool(1), args.Error(2)
}

func (m *MockEngagementRepository) HasContentSave(contentID, userID string) (bool, error) {
	args := m.Called(contentID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementRepository) DeleteByPost(postID string) error {
	args := m.Called(postID)
	return args.Error(0)
}

func (m *MockEngagementRepository) DeleteByContent(contentID string) error {
	args := m.Called(contentID)
	return args.Error(0)
}

var _ repositories.EngagementRepository = (*MockEngagementRepository)(nil)

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) CreatePostComment(comment *models.PostComment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) ListPostComments(postID string) ([]models.PostComment, error) {
	args := m.Called(postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PostComment), args.Error(1)
}

func (m *MockCommentRepository) DeleteByPost(postID string) error {
	args := m.Called(postID)
	return args.Error(0)
}

func (m *MockCommentRepository) CreateServiceComment(comment *models.ServiceComment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) ListServiceComments(serviceID string) ([]models.ServiceComment, error) {
	args := m.Called(serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ServiceComment), args.Error(1)
}

func (m *MockCommentRepository) CreateContentComment(comment *models.ContentComment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) ListContentComments(contentID string) ([]models.ContentComment, error) {
	args := m.Called(contentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ContentComment), args.Error(1)
}

func (m *MockCommentRepository) DeleteByContent(contentID string) error {
	args := m.Called(contentID)
	return args.Error(0)
}

var _ repositories.CommentRepository = (*MockCommentRepository)(nil)

// MockNotificationRepository is a mock implementation of NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) CreateNotification(notification *models.Notification) error {
	args := m.Called(notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) GetByRecipient(userID string, limit int) ([]models.Notification, error) {
	args := m.Called(userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) GetUnreadCount(userID string) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) MarkAllAsRead(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

var _ repositories.NotificationRepository = (*MockNotificationRepository)(nil)

// MockMessageRepository is a mock implementation of MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) CreateMessage(message *models.Message) error {
	args := m.Called(message)
	return args.Error(0)
}

func (m *MockMessageRepository) ListConversation(userA, userB string) ([]models.Message, error) {
	args := m.Called(userA, userB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockMessageRepository) CountConversation(userA, userB string) (int64, error) {
	args := m.Called(userA, userB)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMessageRepository) CountFromSender(senderID, receiverID string) (int64, error) {
	args := m.Called(senderID, receiverID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMessageRepository) MarkRead(receiverID, senderID string) error {
	args := m.Called(receiverID, senderID)
	return args.Error(0)
}

func (m *MockMessageRepository) CountUnreadFrom(receiverID, senderID string) (int64, error) {
	args := m.Called(receiverID, senderID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMessageRepository) LastMessage(userA, userB string) (*models.Message, error) {
	args := m.Called(userA, userB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockMessageRepository) ListPartnerIDs(userID string) ([]string, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

var _ repositories.MessageRepository = (*MockMessageRepository)(nil)

// MockStorefrontRepository is a mock implementation of StorefrontRepository
type MockStorefrontRepository struct {
	mock.Mock
}

func (m *MockStorefrontRepository) CreateStorefront(storefront *models.Storefront) error {
	args := m.Called(storefront)
	return args.Error(0)
}

func (m *MockStorefrontRepository) GetByID(id uint) (*models.Storefront, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Storefront), args.Error(1)
}

func (m *MockStorefrontRepository) GetByOwner(ownerUserID string) (*models.Storefront, error) {
	args := m.Called(ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Storefront), args.Error(1)
}

func (m *MockStorefrontRepository) DeleteStorefront(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockStorefrontRepository) CreateContent(ctx context.Context, content *models.StorefrontContent) error {
	args := m.Called(ctx, content)
	return args.Error(0)
}

func (m *MockStorefrontRepository) GetContentByID(ctx context.Context, id string) (*models.StorefrontContent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StorefrontContent), args.Error(1)
}

func (m *MockStorefrontRepository) ListContent(ctx context.Context, storefrontID uint, limit int64) ([]models.StorefrontContent, error) {
	args := m.Called(ctx, storefrontID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StorefrontContent), args.Error(1)
}

func (m *MockStorefrontRepository) ListContentIDs(ctx context.Context, storefrontID uint) ([]string, error) {
	args := m.Called(ctx, storefrontID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStorefrontRepository) DeleteContentByStorefront(ctx context.Context, storefrontID uint) error {
	args := m.Called(ctx, storefrontID)
	return args.Error(0)
}

func (m *MockStorefrontRepository) IncrementContentLikes(ctx context.Context, contentID string, delta int) error {
	args := m.Called(ctx, contentID, delta)
	return args.Error(0)
}

func (m *MockStorefrontRepository) IncrementContentComments(ctx context.Context, contentID string) error {
	args := m.Called(ctx, contentID)
	return args.Error(0)
}

func (m *MockStorefrontRepository) FollowStorefront(storefrontID uint, followerUserID string) error {
	args := m.Called(storefrontID, followerUserID)
	return args.Error(0)
}

func (m *MockStorefrontRepository) UnfollowStorefront(storefrontID uint, followerUserID string) (bool, error) {
	args := m.Called(storefrontID, followerUserID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorefrontRepository) IsFollowingStorefront(storefrontID uint, followerUserID string) (bool, error) {
	args := m.Called(storefrontID, followerUserID)
	return args.Bool(0), args.Error(1)
}

var _ repositories.StorefrontRepository = (*MockStorefrontRepository)(nil)

// MockGateway is a mock implementation of storage.Gateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, key, r, size, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
