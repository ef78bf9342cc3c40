package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/munasbate/backend/internal/apperrors"
	"github.com/munasbate/backend/internal/models"
	"github.com/munasbate/backend/internal/repositories"
	"github.com/munasbate/backend/pkg/storage"
)

// StorefrontHandler handles storefront lifecycle, content and follows.
type StorefrontHandler struct {
	storefrontRepository   repositories.StorefrontRepository
	accountRepository      repositories.AccountRepository
	engagementRepository   repositories.EngagementRepository
	commentRepository      repositories.CommentRepository
	notificationRepository repositories.NotificationRepository
	mediaGateway           storage.Gateway
}

// NewStorefrontHandler creates a new StorefrontHandler
func NewStorefrontHandler(
	storefrontRepo repositories.StorefrontRepository,
	accountRepo repositories.AccountRepository,
	engagementRepo repositories.EngagementRepository,
	commentRepo repositories.CommentRepository,
	notifRepo repositories.NotificationRepository,
	mediaGateway storage.Gateway,
) *StorefrontHandler {
	return &StorefrontHandler{
		storefrontRepository:   storefrontRepo,
		accountRepository:      accountRepo,
		engagementRepository:   engagementRepo,
		commentRepository:      commentRepo,
		notificationRepository: notifRepo,
		mediaGateway:           mediaGateway,
	}
}

// RegisterStorefrontRoutes registers storefront routes on the protected group
func (h *StorefrontHandler) RegisterStorefrontRoutes(g *echo.Group) {
	g.POST("/storefronts", h.CreateStorefront)
	g.DELETE("/storefronts/:storefront_id", h.DeleteStorefront)
	g.POST("/storefronts/:storefront_id/content", h.AddContent)
	g.POST("/storefronts/:storefront_id/follow", h.FollowStorefront)
	g.DELETE("/storefronts/:storefront_id/follow", h.UnfollowStorefront)
	g.POST("/storefronts/content/:content_id/likes/toggle", h.ToggleContentLike)
	g.POST("/storefronts/content/:content_id/saves/toggle", h.ToggleContentSave)
	g.POST("/storefronts/content/:content_id/comments", h.AddContentComment)
}

// RegisterPublicRoutes registers browse routes on the optional-session group
func (h *StorefrontHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/storefronts/:storefront_id", h.GetStorefront)
	g.GET("/storefronts/:storefront_id/content", h.ListContent)
	g.GET("/storefronts/:storefront_id/follow/status", h.FollowStatus)
	g.GET("/users/:user_id/storefront", h.GetStorefrontByOwner)
	g.GET("/storefronts/content/:content_id", h.GetContent)
	g.GET("/storefronts/content/:content_id/comments", h.ListContentComments)
}

// CreateStorefront opens the caller's storefront. One per user.
func (h *StorefrontHandler) CreateStorefront(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	var req models.CreateStorefrontRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	storefront := &models.Storefront{
		OwnerUserID: userID,
		Name:        req.Name,
		Description: req.Description,
		AvatarURL:   req.AvatarURL,
		CoverURL:    req.CoverURL,
	}
	if err := h.storefrontRepository.CreateStorefront(storefront); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, storefront)
}

// GetStorefront returns a storefront by ID
func (h *StorefrontHandler) GetStorefront(c echo.Context) error {
	storefront, err := h.lookupStorefront(c)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, storefront)
}

// GetStorefrontByOwner returns the storefront owned by the given user
func (h *StorefrontHandler) GetStorefrontByOwner(c echo.Context) error {
	storefront, err := h.storefrontRepository.GetByOwner(c.Param("user_id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, storefront)
}

// DeleteStorefront tears down the caller's storefront and everything hanging
// off it: content docs, their likes/saves/comments, and the follow edges.
func (h *StorefrontHandler) DeleteStorefront(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	storefront, err := h.lookupStorefront(c)
	if err != nil {
		return httpError(err)
	}
	if storefront.OwnerUserID != userID {
		return httpError(apperrors.Forbidden("only the owner can delete a storefront"))
	}

	ctx := c.Request().Context()
	contentIDs, err := h.storefrontRepository.ListContentIDs(ctx, storefront.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	for _, contentID := range contentIDs {
		if err := h.engagementRepository.DeleteByContent(contentID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if err := h.commentRepository.DeleteByContent(contentID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	if err := h.storefrontRepository.DeleteContentByStorefront(ctx, storefront.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.storefrontRepository.DeleteStorefront(storefront.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Storefront deleted successfully"})
}

// AddContent uploads a content item into the caller's storefront
func (h *StorefrontHandler) AddContent(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	storefront, err := h.lookupStorefront(c)
	if err != nil {
		return httpError(err)
	}
	if storefront.OwnerUserID != userID {
		return httpError(apperrors.Forbidden("only the owner can add content"))
	}

	var req models.AddContentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Content file is required")
	}
	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to read uploaded file")
	}
	defer src.Close()

	key := storage.ObjectKey("storefronts/"+strconv.FormatUint(uint64(storefront.ID), 10), file.Filename)
	fileURL, err := h.mediaGateway.Upload(c.Request().Context(), key, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return httpError(err)
	}

	content := &models.StorefrontContent{
		StorefrontID: storefront.ID,
		Title:        req.Title,
		Description:  req.Description,
		ContentType:  req.ContentType,
		FileURL:      fileURL,
	}
	if err := h.storefrontRepository.CreateContent(c.Request().Context(), content); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, content)
}

// ListContent lists a storefront's content, newest-first
func (h *StorefrontHandler) ListContent(c echo.Context) error {
	storefront, err := h.lookupStorefront(c)
	if err != nil {
		return httpError(err)
	}
	content, err := h.storefrontRepository.ListContent(c.Request().Context(), storefront.ID, 50)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, content)
}

// GetContent returns a single content item
func (h *StorefrontHandler) GetContent(c echo.Context) error {
	content, err := h.storefrontRepository.GetContentByID(c.Request().Context(), c.Param("content_id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, content)
}

// FollowStorefront follows a storefront. One-sided: only the storefront's
// followers_count moves.
func (h *StorefrontHandler) FollowStorefront(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	storefront, err := h.lookupStorefront(c)
	if err != nil {
		return httpError(err)
	}
	if storefront.OwnerUserID == userID {
		return httpError(apperrors.Conflict("cannot follow your own storefront"))
	}
	if err := h.storefrontRepository.FollowStorefront(storefront.ID, userID); err != nil {
		return httpError(err)
	}

	if notifErr := h.notificationRepository.CreateNotification(&models.Notification{
		UserID:     storefront.OwnerUserID,
		Type:       models.NotificationFollow,
		FromUserID: userID,
	}); notifErr != nil {
		log.Printf("Failed to create storefront follow notification: %v", notifErr)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Storefront followed successfully"})
}

// UnfollowStorefront removes the caller's follow; no-op when absent
func (h *StorefrontHandler) UnfollowStorefront(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	storefront, err := h.lookupStorefront(c)
	if err != nil {
		return httpError(err)
	}
	if _, err := h.storefrontRepository.UnfollowStorefront(storefront.ID, userID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Storefront unfollowed successfully"})
}

// FollowStatus reports whether the caller follows the storefront. Guests get
// false.
func (h *StorefrontHandler) FollowStatus(c echo.Context) error {
	storefront, err := h.lookupStorefront(c)
	if err != nil {
		return httpError(err)
	}

	userID := currentUserID(c)
	if userID == "" {
		return c.JSON(http.StatusOK, echo.Map{"is_following": false})
	}
	following, err := h.storefrontRepository.IsFollowingStorefront(storefront.ID, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"is_following": following})
}

// ToggleContentLike flips the caller's like on a content item
func (h *StorefrontHandler) ToggleContentLike(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	contentID := c.Param("content_id")
	ctx := c.Request().Context()

	content, err := h.storefrontRepository.GetContentByID(ctx, contentID)
	if err != nil {
		return httpError(err)
	}

	liked, changed, err := h.engagementRepository.ToggleContentLike(contentID, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Only the toggle that flipped the row moves the counter.
	if changed {
		delta := -1
		if liked {
			delta = 1
		}
		if err := h.storefrontRepository.IncrementContentLikes(ctx, contentID, delta); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	if liked && changed {
		if owner, ownerErr := h.storefrontRepository.GetByID(content.StorefrontID); ownerErr == nil && owner.OwnerUserID != userID {
			if notifErr := h.notificationRepository.CreateNotification(&models.Notification{
				UserID:     owner.OwnerUserID,
				Type:       models.NotificationLike,
				FromUserID: userID,
				PostID:     contentID,
			}); notifErr != nil {
				log.Printf("Failed to create content like notification: %v", notifErr)
			}
		}
	}

	updated, err := h.storefrontRepository.GetContentByID(ctx, contentID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"liked": liked, "likes_count": updated.LikesCount})
}

// ToggleContentSave flips the caller's bookmark on a content item
func (h *StorefrontHandler) ToggleContentSave(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	contentID := c.Param("content_id")

	if _, err := h.storefrontRepository.GetContentByID(c.Request().Context(), contentID); err != nil {
		return httpError(err)
	}

	saved, _, err := h.engagementRepository.ToggleContentSave(contentID, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"saved": saved})
}

// AddContentComment comments on a content item
func (h *StorefrontHandler) AddContentComment(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	contentID := c.Param("content_id")
	ctx := c.Request().Context()

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	content, err := h.storefrontRepository.GetContentByID(ctx, contentID)
	if err != nil {
		return httpError(err)
	}
	account, err := h.accountRepository.GetByUserID(userID)
	if err != nil {
		return httpError(err)
	}

	comment := &models.ContentComment{
		ContentID: contentID,
		UserID:    userID,
		Username:  account.Username,
		Content:   req.Content,
	}
	if err := h.commentRepository.CreateContentComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.storefrontRepository.IncrementContentComments(ctx, contentID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if owner, ownerErr := h.storefrontRepository.GetByID(content.StorefrontID); ownerErr == nil && owner.OwnerUserID != userID {
		if notifErr := h.notificationRepository.CreateNotification(&models.Notification{
			UserID:     owner.OwnerUserID,
			Type:       models.NotificationComment,
			FromUserID: userID,
			PostID:     contentID,
		}); notifErr != nil {
			log.Printf("Failed to create content comment notification: %v", notifErr)
		}
	}

	return c.JSON(http.StatusCreated, comment)
}

// ListContentComments lists a content item's comments, oldest-first
func (h *StorefrontHandler) ListContentComments(c echo.Context) error {
	comments, err := h.commentRepository.ListContentComments(c.Param("content_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, comments)
}

func (h *StorefrontHandler) lookupStorefront(c echo.Context) (*models.Storefront, error) {
	id, err := strconv.ParseUint(c.Param("storefront_id"), 10, 32)
	if err != nil {
		return nil, apperrors.Validation("invalid storefront id")
	}
	return h.storefrontRepository.GetByID(uint(id))
}
