package handlers

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/munasbate/backend/internal/models"
	"github.com/munasbate/backend/internal/repositories"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followRepository       repositories.FollowRepository
	accountRepository      repositories.AccountRepository
	notificationRepository repositories.NotificationRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, accountRepo repositories.AccountRepository, notifRepo repositories.NotificationRepository) *FollowHandler {
	return &FollowHandler{
		followRepository:       followRepo,
		accountRepository:      accountRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterFollowRoutes registers follow routes on the protected group
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:user_id/follow", h.FollowAccount)
	g.DELETE("/users/:user_id/follow", h.UnfollowAccount)
	g.GET("/users/:user_id/follow/status", h.GetFollowStatus)
}

// RegisterPublicRoutes registers follower listings on the optional-session group
func (h *FollowHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/users/:user_id/followers", h.GetFollowers)
	g.GET("/users/:user_id/following", h.GetFollowing)
}

// FollowAccount follows a user and notifies them
func (h *FollowHandler) FollowAccount(c echo.Context) error {
	currentID, err := requireUser(c)
	if err != nil {
		return err
	}
	targetID := c.Param("user_id")

	if _, err := h.accountRepository.GetByUserID(targetID); err != nil {
		return httpError(err)
	}

	if err := h.followRepository.CreateFollow(currentID, targetID); err != nil {
		return httpError(err)
	}

	notification := &models.Notification{
		UserID:     targetID,
		Type:       models.NotificationFollow,
		FromUserID: currentID,
	}
	if err := h.notificationRepository.CreateNotification(notification); err != nil {
		log.Printf("Failed to create follow notification: %v", err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"following": true})
}

// UnfollowAccount removes the follow edge; absent edges are a no-op
func (h *FollowHandler) UnfollowAccount(c echo.Context) error {
	currentID, err := requireUser(c)
	if err != nil {
		return err
	}
	targetID := c.Param("user_id")

	if _, err := h.followRepository.DeleteFollow(currentID, targetID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"following": false})
}

// GetFollowStatus reports whether the caller follows the target
func (h *FollowHandler) GetFollowStatus(c echo.Context) error {
	currentID, err := requireUser(c)
	if err != nil {
		return err
	}
	targetID := c.Param("user_id")

	isFollowing, err := h.followRepository.IsFollowing(currentID, targetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"user_id": targetID, "is_following": isFollowing})
}

// GetFollowers lists accounts following the target user
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	accounts, err := h.followRepository.GetFollowers(c.Param("user_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, toCompactList(accounts))
}

// GetFollowing lists accounts the target user follows
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	accounts, err := h.followRepository.GetFollowing(c.Param("user_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, toCompactList(accounts))
}

func toCompactList(accounts []models.Account) []models.AccountCompact {
	compact := make([]models.AccountCompact, len(accounts))
	for i := range accounts {
		compact[i] = accounts[i].ToCompact()
	}
	return compact
}
