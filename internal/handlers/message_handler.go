package handlers

import (
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/munasbate/backend/internal/apperrors"
	"github.com/munasbate/backend/internal/middleware"
	"github.com/munasbate/backend/internal/models"
	"github.com/munasbate/backend/internal/realtime"
	"github.com/munasbate/backend/internal/repositories"
)

// autoReplyDelay spaces the canned agent reply out from the triggering
// message so the two rows never share a timestamp.
const autoReplyDelay = time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// MessageHandler handles direct messaging, conversation listing and the
// websocket subscription.
type MessageHandler struct {
	messageRepository      repositories.MessageRepository
	accountRepository      repositories.AccountRepository
	notificationRepository repositories.NotificationRepository
	hub                    *realtime.Hub
	supportPhone           string

	// Serializes auto-reply delivery so two first messages racing past the
	// priorCount check cannot both store a reply.
	autoReplyMu sync.Mutex
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(
	messageRepo repositories.MessageRepository,
	accountRepo repositories.AccountRepository,
	notifRepo repositories.NotificationRepository,
	hub *realtime.Hub,
	supportPhone string,
) *MessageHandler {
	return &MessageHandler{
		messageRepository:      messageRepo,
		accountRepository:      accountRepo,
		notificationRepository: notifRepo,
		hub:                    hub,
		supportPhone:           supportPhone,
	}
}

// RegisterMessageRoutes registers messaging routes on the protected group
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.POST("/messages", h.SendMessage)
	g.GET("/messages", h.ListConversations)
	g.GET("/messages/:user_id", h.GetConversation)
}

// RegisterWebsocketRoute registers the subscription endpoint. The token rides
// in the query string because browsers cannot set headers on websocket
// upgrades.
func (h *MessageHandler) RegisterWebsocketRoute(e *echo.Echo) {
	e.GET("/ws", h.Subscribe)
}

// SendMessage inserts a direct message and pushes it to both participants.
// The first message ever sent to an agent account triggers a one-shot
// automatic reply.
func (h *MessageHandler) SendMessage(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.ReceiverUserID == userID {
		return httpError(apperrors.Validation("cannot message yourself"))
	}

	receiver, err := h.accountRepository.GetByUserID(req.ReceiverUserID)
	if err != nil {
		return httpError(err)
	}

	// Counted before the insert: the trigger is the very first message of
	// the conversation, in either direction.
	priorCount, err := h.messageRepository.CountConversation(userID, req.ReceiverUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	message := &models.Message{
		SenderUserID:   userID,
		ReceiverUserID: req.ReceiverUserID,
		Content:        req.Content,
	}
	if err := h.messageRepository.CreateMessage(message); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	h.hub.PushMessage(message)

	if notifErr := h.notificationRepository.CreateNotification(&models.Notification{
		UserID:     req.ReceiverUserID,
		Type:       models.NotificationMessage,
		FromUserID: userID,
	}); notifErr != nil {
		log.Printf("Failed to create message notification: %v", notifErr)
	}

	if priorCount == 0 && receiver.AccountType == models.AccountTypeAgent {
		go h.sendAutoReply(receiver.UserID, userID)
	}

	return c.JSON(http.StatusCreated, message)
}

// sendAutoReply inserts the agent's canned greeting after a short delay and
// pushes it. Runs off the request goroutine; failures are logged only. The
// agent replies at most once per conversation: the re-count under the lock
// catches concurrent first messages that each scheduled a reply.
func (h *MessageHandler) sendAutoReply(agentUserID, userID string) {
	time.Sleep(autoReplyDelay)

	h.autoReplyMu.Lock()
	defer h.autoReplyMu.Unlock()

	sent, err := h.messageRepository.CountFromSender(agentUserID, userID)
	if err != nil {
		log.Printf("Failed to check auto-reply state for %s: %v", agentUserID, err)
		return
	}
	if sent > 0 {
		return
	}

	reply := &models.Message{
		SenderUserID:   agentUserID,
		ReceiverUserID: userID,
		Content: fmt.Sprintf(
			"Thank you for reaching out! Our team will get back to you shortly. For urgent requests call us at %s.",
			h.supportPhone,
		),
	}
	if err := h.messageRepository.CreateMessage(reply); err != nil {
		log.Printf("Failed to store auto-reply from %s: %v", agentUserID, err)
		return
	}
	h.hub.PushMessage(reply)
}

// GetConversation returns the full conversation with the given user,
// oldest-first, and marks their messages to the caller as read.
func (h *MessageHandler) GetConversation(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	partnerID := c.Param("user_id")

	if _, err := h.accountRepository.GetByUserID(partnerID); err != nil {
		return httpError(err)
	}

	messages, err := h.messageRepository.ListConversation(userID, partnerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.messageRepository.MarkRead(userID, partnerID); err != nil {
		log.Printf("Failed to mark conversation read for %s: %v", userID, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"messages": messages})
}

// ListConversations returns the caller's conversation list: everyone they
// have exchanged messages with, plus the fixed support accounts, each with
// the last message and unread count.
func (h *MessageHandler) ListConversations(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	partnerIDs, err := h.messageRepository.ListPartnerIDs(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	seen := make(map[string]bool, len(partnerIDs))
	for _, id := range partnerIDs {
		seen[id] = true
	}
	for _, id := range models.SupportAccountIDs {
		if id != userID && !seen[id] {
			partnerIDs = append(partnerIDs, id)
		}
	}

	accounts, err := h.accountRepository.GetCompactMap(partnerIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	conversations := make([]models.ConversationPartner, 0, len(partnerIDs))
	for _, partnerID := range partnerIDs {
		account, ok := accounts[partnerID]
		if !ok {
			continue
		}
		last, err := h.messageRepository.LastMessage(userID, partnerID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		unread, err := h.messageRepository.CountUnreadFrom(userID, partnerID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		conversations = append(conversations, models.ConversationPartner{
			User:        account,
			LastMessage: last,
			UnreadCount: unread,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"conversations": conversations})
}

// Subscribe upgrades the request to a websocket and registers it with the
// hub until the client disconnects.
func (h *MessageHandler) Subscribe(c echo.Context) error {
	claims, err := middleware.ParseToken(c.QueryParam("token"))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	h.hub.Add(claims.UserID, conn)

	go func() {
		defer h.hub.Remove(claims.UserID, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	return nil
}
