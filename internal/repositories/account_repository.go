package repositories

import (
	"fmt"
	"math/rand"

	"gorm.io/gorm"

	"github.com/munasbate/backend/internal/apperrors"
	"github.com/munasbate/backend/internal/models"
)

// maxUserIDDraws bounds the collision-retry loop; with 9 million candidate
// ids this only trips when the id space is nearly exhausted.
const maxUserIDDraws = 100

// AccountRepository defines the interface for account data operations
type AccountRepository interface {
	CreateAccount(account *models.Account) error
	GetByUserID(userID string) (*models.Account, error)
	GetByEmailOrPhone(email, phone string) (*models.Account, error)
	UserIDExists(userID string) (bool, error)
	GenerateUserID() (string, error)
	UpdateProfile(userID string, fields map[string]interface{}) error
	SearchAccounts(query string, limit int) ([]models.Account, error)
	GetCompactMap(userIDs []string) (map[string]models.AccountCompact, error)
}

// PostgresAccountRepository implements AccountRepository for PostgreSQL
type PostgresAccountRepository struct {
	db *gorm.DB
}

// NewPostgresAccountRepository creates a new PostgresAccountRepository
func NewPostgresAccountRepository(db *gorm.DB) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

func (r *PostgresAccountRepository) CreateAccount(account *models.Account) error {
	return r.db.Create(account).Error
}

func (r *PostgresAccountRepository) GetByUserID(userID string) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where("user_id = ?", userID).First(&account).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("account %s not found", userID)
		}
		return nil, err
	}
	return &account, nil
}

func (r *PostgresAccountRepository) GetByEmailOrPhone(email, phone string) (*models.Account, error) {
	var account models.Account
	q := r.db
	switch {
	case email != "" && phone != "":
		q = q.Where("email = ? OR phone = ?", email, phone)
	case email != "":
		q = q.Where("email = ?", email)
	case phone != "":
		q = q.Where("phone = ?", phone)
	default:
		return nil, apperrors.Validation("email or phone is required")
	}
	if err := q.First(&account).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("no account matches the given contact info")
		}
		return nil, err
	}
	return &account, nil
}

func (r *PostgresAccountRepository) UserIDExists(userID string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Account{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GenerateUserID draws random 7-digit candidates until one is unused.
func (r *PostgresAccountRepository) GenerateUserID() (string, error) {
	return DrawUserID(r.UserIDExists)
}

// DrawUserID is the retry loop behind GenerateUserID, split out so the
// collision behavior is testable without a database.
func DrawUserID(exists func(string) (bool, error)) (string, error) {
	for i := 0; i < maxUserIDDraws; i++ {
		candidate := fmt.Sprintf("%d", 1000000+rand.Intn(9000000))
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("exhausted user id candidates after %d draws", maxUserIDDraws)
}

func (r *PostgresAccountRepository) UpdateProfile(userID string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	res := r.db.Model(&models.Account{}).Where("user_id = ?", userID).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("account %s not found", userID)
	}
	return nil
}

func (r *PostgresAccountRepository) SearchAccounts(query string, limit int) ([]models.Account, error) {
	var accounts []models.Account
	pattern := query + "%"
	err := r.db.Where("username ILIKE ? OR user_id LIKE ?", pattern, pattern).
		Limit(limit).Find(&accounts).Error
	return accounts, err
}

func (r *PostgresAccountRepository) GetCompactMap(userIDs []string) (map[string]models.AccountCompact, error) {
	compact := make(map[string]models.AccountCompact, len(userIDs))
	if len(userIDs) == 0 {
		return compact, nil
	}
	var accounts []models.Account
	if err := r.db.Where("user_id IN ?", userIDs).Find(&accounts).Error; err != nil {
		return nil, err
	}
	for i := range accounts {
		compact[accounts[i].UserID] = accounts[i].ToCompact()
	}
	return compact, nil
}
