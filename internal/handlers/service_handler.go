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

// ServiceHandler handles the service catalog: agent publishing, category
// browsing and per-service engagement.
type ServiceHandler struct {
	serviceRepository      repositories.ServiceRepository
	accountRepository      repositories.AccountRepository
	engagementRepository   repositories.EngagementRepository
	commentRepository      repositories.CommentRepository
	notificationRepository repositories.NotificationRepository
	mediaGateway           storage.Gateway
}

// NewServiceHandler creates a new ServiceHandler
func NewServiceHandler(
	serviceRepo repositories.ServiceRepository,
	accountRepo repositories.AccountRepository,
	engagementRepo repositories.EngagementRepository,
	commentRepo repositories.CommentRepository,
	notifRepo repositories.NotificationRepository,
	mediaGateway storage.Gateway,
) *ServiceHandler {
	return &ServiceHandler{
		serviceRepository:      serviceRepo,
		accountRepository:      accountRepo,
		engagementRepository:   engagementRepo,
		commentRepository:      commentRepo,
		notificationRepository: notifRepo,
		mediaGateway:           mediaGateway,
	}
}

// RegisterServiceRoutes registers catalog routes on the protected group
func (h *ServiceHandler) RegisterServiceRoutes(g *echo.Group) {
	g.POST("/services", h.PublishService)
	g.POST("/services/:service_id/likes/toggle", h.ToggleLike)
	g.POST("/services/:service_id/saves/toggle", h.ToggleSave)
	g.POST("/services/:service_id/comments", h.AddComment)
}

// RegisterPublicRoutes registers browse routes on the optional-session group
func (h *ServiceHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/services", h.ListServices)
	g.GET("/services/:service_id", h.GetService)
	g.GET("/services/:service_id/comments", h.ListComments)
}

// PublishService publishes a catalog item. Agent accounts only. Exactly one
// of has_music/is_3d must be supplied, matching the category.
func (h *ServiceHandler) PublishService(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	if currentAccountType(c) != models.AccountTypeAgent {
		return httpError(apperrors.Forbidden("only agent accounts can publish services"))
	}

	var req models.PublishServiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := validateCategoryFlags(&req); err != nil {
		return httpError(err)
	}

	fileType := models.FileTypeAudio
	if models.DesignCategory(req.Category) {
		fileType = models.FileTypeVideo
	}
	fileURL := ""

	if file, err := c.FormFile("file"); err == nil && file != nil {
		src, err := file.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Failed to read uploaded file")
		}
		defer src.Close()

		key := storage.ObjectKey("services/"+req.Category, file.Filename)
		fileURL, err = h.mediaGateway.Upload(c.Request().Context(), key, src, file.Size, file.Header.Get("Content-Type"))
		if err != nil {
			return httpError(err)
		}
		fileType = models.FileTypeFromName(file.Filename)
	}

	service := &models.Service{
		Category:        req.Category,
		Occasion:        req.Occasion,
		Title:           req.Title,
		Description:     req.Description,
		FileURL:         fileURL,
		FileType:        fileType,
		HasMusic:        req.HasMusic,
		Is3D:            req.Is3D,
		PublisherUserID: userID,
	}
	if err := h.serviceRepository.CreateService(c.Request().Context(), service); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, service)
}

// validateCategoryFlags enforces the category/flag pairing: zaffat and
// sheilat carry has_music, invitations and greetings carry is_3d; the other
// flag must stay unset.
func validateCategoryFlags(req *models.PublishServiceRequest) error {
	if models.MusicCategory(req.Category) {
		if req.HasMusic == nil {
			return apperrors.Validation("%s services require has_music", req.Category)
		}
		if req.Is3D != nil {
			return apperrors.Validation("is_3d is not valid for %s services", req.Category)
		}
		return nil
	}
	if req.Is3D == nil {
		return apperrors.Validation("%s services require is_3d", req.Category)
	}
	if req.HasMusic != nil {
		return apperrors.Validation("has_music is not valid for %s services", req.Category)
	}
	return nil
}

// ListServices lists catalog items by category/occasion, newest-first, with
// optional has_music / is_3d value filters.
func (h *ServiceHandler) ListServices(c echo.Context) error {
	filter := repositories.ServiceFilter{
		Category: c.QueryParam("category"),
		Occasion: c.QueryParam("occasion"),
	}
	if v := c.QueryParam("has_music"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid has_music value")
		}
		filter.HasMusic = &b
	}
	if v := c.QueryParam("is_3d"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid is_3d value")
		}
		filter.Is3D = &b
	}

	services, err := h.serviceRepository.ListServices(c.Request().Context(), filter, 50)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, services)
}

// GetService returns a single catalog item
func (h *ServiceHandler) GetService(c echo.Context) error {
	service, err := h.serviceRepository.GetServiceByID(c.Request().Context(), c.Param("service_id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, service)
}

// ToggleLike flips the caller's like on a service
func (h *ServiceHandler) ToggleLike(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	serviceID := c.Param("service_id")

	service, err := h.serviceRepository.GetServiceByID(c.Request().Context(), serviceID)
	if err != nil {
		return httpError(err)
	}

	liked, changed, err := h.engagementRepository.ToggleServiceLike(serviceID, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Only the toggle that flipped the row moves the counter.
	if changed {
		delta := -1
		if liked {
			delta = 1
		}
		if err := h.serviceRepository.IncrementLikesCount(c.Request().Context(), serviceID, delta); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	if liked && changed && userID != service.PublisherUserID {
		notification := &models.Notification{
			UserID:     service.PublisherUserID,
			Type:       models.NotificationLike,
			FromUserID: userID,
			PostID:     serviceID,
		}
		if err := h.notificationRepository.CreateNotification(notification); err != nil {
			log.Printf("Failed to create service like notification: %v", err)
		}
	}

	updated, err := h.serviceRepository.GetServiceByID(c.Request().Context(), serviceID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"liked": liked, "likes_count": updated.LikesCount})
}

// ToggleSave flips the caller's bookmark on a service
func (h *ServiceHandler) ToggleSave(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	serviceID := c.Param("service_id")

	if _, err := h.serviceRepository.GetServiceByID(c.Request().Context(), serviceID); err != nil {
		return httpError(err)
	}

	saved, _, err := h.engagementRepository.ToggleServiceSave(serviceID, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"saved": saved})
}

// AddComment comments on a service
func (h *ServiceHandler) AddComment(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	serviceID := c.Param("service_id")

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	service, err := h.serviceRepository.GetServiceByID(c.Request().Context(), serviceID)
	if err != nil {
		return httpError(err)
	}
	account, err := h.accountRepository.GetByUserID(userID)
	if err != nil {
		return httpError(err)
	}

	comment := &models.ServiceComment{
		ServiceID: serviceID,
		UserID:    userID,
		Username:  account.Username,
		Content:   req.Content,
	}
	if err := h.commentRepository.CreateServiceComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.serviceRepository.IncrementCommentsCount(c.Request().Context(), serviceID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if userID != service.PublisherUserID {
		notification := &models.Notification{
			UserID:     service.PublisherUserID,
			Type:       models.NotificationComment,
			FromUserID: userID,
			PostID:     serviceID,
		}
		if err := h.notificationRepository.CreateNotification(notification); err != nil {
			log.Printf("Failed to create service comment notification: %v", err)
		}
	}

	return c.JSON(http.StatusCreated, comment)
}

// ListComments lists a service's comments, oldest-first
func (h *ServiceHandler) ListComments(c echo.Context) error {
	comments, err := h.commentRepository.ListServiceComments(c.Param("service_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, comments)
}
