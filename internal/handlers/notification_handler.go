package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/munasbate/backend/internal/repositories"
)

const notificationLimit = 50

// NotificationHandler serves the caller's notification feed.
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifRepo repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notificationRepository: notifRepo}
}

// RegisterNotificationRoutes registers notification routes on the protected group
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.POST("/notifications/read", h.MarkAllRead)
}

// GetNotifications returns the caller's recent notifications, newest-first,
// with the unread count.
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	notifications, err := h.notificationRepository.GetByRecipient(userID, notificationLimit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	unread, err := h.notificationRepository.GetUnreadCount(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"notifications": notifications,
		"unread_count":  unread,
	})
}

// MarkAllRead marks every notification of the caller as read
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	if err := h.notificationRepository.MarkAllAsRead(userID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Notifications marked as read"})
}
