package models

import "time"

// SupportAccountIDs are the fixed service/support accounts that always appear
// in the conversation list regardless of message history.
var SupportAccountIDs = []string{"1111111", "2222222", "3333333", "4444444", "5555555"}

// Message represents a direct message (PostgreSQL). A conversation is the
// unordered pair of the two user ids; no separate thread entity exists.
type Message struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	SenderUserID   string    `json:"sender_user_id" gorm:"size:7;index:idx_msg_pair"`
	ReceiverUserID string    `json:"receiver_user_id" gorm:"size:7;index:idx_msg_pair"`
	Content        string    `json:"content" gorm:"size:4000"`
	IsRead         bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt      time.Time `json:"created_at" gorm:"index"`
}

// SendMessageRequest defines the request body for sending a direct message.
type SendMessageRequest struct {
	ReceiverUserID string `json:"receiver_user_id" validate:"required,len=7,numeric"`
	Content        string `json:"content" validate:"required,min=1,max=4000"`
}

// ConversationPartner summarizes one entry in the conversation list.
type ConversationPartner struct {
	User        AccountCompact `json:"user"`
	LastMessage *Message       `json:"last_message,omitempty"`
	UnreadCount int64          `json:"unread_count"`
}
