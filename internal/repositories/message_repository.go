package repositories

import (
	"gorm.io/gorm"

	"github.com/munasbate/backend/internal/models"
)

// MessageRepository defines the interface for direct-message operations. A
// conversation is derived from the unordered participant pair; there is no
// thread entity.
type MessageRepository interface {
	CreateMessage(message *models.Message) error
	ListConversation(userA, userB string) ([]models.Message, error)
	CountConversation(userA, userB string) (int64, error)
	CountFromSender(senderID, receiverID string) (int64, error)
	MarkRead(receiverID, senderID string) error
	CountUnreadFrom(receiverID, senderID string) (int64, error)
	LastMessage(userA, userB string) (*models.Message, error)
	ListPartnerIDs(userID string) ([]string, error)
}

// PostgresMessageRepository implements MessageRepository for PostgreSQL
type PostgresMessageRepository struct {
	db *gorm.DB
}

// NewPostgresMessageRepository creates a new PostgresMessageRepository
func NewPostgresMessageRepository(db *gorm.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) CreateMessage(message *models.Message) error {
	return r.db.Create(message).Error
}

func pairCondition(db *gorm.DB, userA, userB string) *gorm.DB {
	return db.Where(
		"(sender_user_id = ? AND receiver_user_id = ?) OR (sender_user_id = ? AND receiver_user_id = ?)",
		userA, userB, userB, userA,
	)
}

// ListConversation returns both orderings of the pair, oldest-first.
func (r *PostgresMessageRepository) ListConversation(userA, userB string) ([]models.Message, error) {
	var messages []models.Message
	err := pairCondition(r.db, userA, userB).Order("created_at ASC").Find(&messages).Error
	return messages, err
}

func (r *PostgresMessageRepository) CountConversation(userA, userB string) (int64, error) {
	var count int64
	err := pairCondition(r.db.Model(&models.Message{}), userA, userB).Count(&count).Error
	return count, err
}

// CountFromSender counts one direction of the pair only.
func (r *PostgresMessageRepository) CountFromSender(senderID, receiverID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Where("sender_user_id = ? AND receiver_user_id = ?", senderID, receiverID).
		Count(&count).Error
	return count, err
}

// MarkRead bulk-sets is_read for everything the sender has sent the receiver.
func (r *PostgresMessageRepository) MarkRead(receiverID, senderID string) error {
	return r.db.Model(&models.Message{}).
		Where("receiver_user_id = ? AND sender_user_id = ? AND is_read = false", receiverID, senderID).
		Update("is_read", true).Error
}

func (r *PostgresMessageRepository) CountUnreadFrom(receiverID, senderID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Where("receiver_user_id = ? AND sender_user_id = ? AND is_read = false", receiverID, senderID).
		Count(&count).Error
	return count, err
}

func (r *PostgresMessageRepository) LastMessage(userA, userB string) (*models.Message, error) {
	var message models.Message
	err := pairCondition(r.db, userA, userB).Order("created_at DESC").First(&message).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

// ListPartnerIDs returns the distinct other party across all messages
// involving the user.
func (r *PostgresMessageRepository) ListPartnerIDs(userID string) ([]string, error) {
	var sent, received []string
	if err := r.db.Model(&models.Message{}).Where("sender_user_id = ?", userID).
		Distinct().Pluck("receiver_user_id", &sent).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Message{}).Where("receiver_user_id = ?", userID).
		Distinct().Pluck("sender_user_id", &received).Error; err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(sent)+len(received))
	partners := make([]string, 0, len(sent)+len(received))
	for _, id := range append(sent, received...) {
		if id == userID || seen[id] {
			continue
		}
		seen[id] = true
		partners = append(partners, id)
	}
	return partners, nil
}
