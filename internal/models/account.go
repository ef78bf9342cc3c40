package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Account types. Agent accounts publish catalog services and receive the
// scripted auto-reply when messaged for the first time.
const (
	AccountTypeUser  = "user"
	AccountTypeAgent = "agent"
)

// Account represents an application user (PostgreSQL).
type Account struct {
	ID             uint      `json:"-" gorm:"primaryKey"`
	UserID         string    `json:"user_id" gorm:"size:7;uniqueIndex"` // 7-digit numeric string
	Username       string    `json:"username" gorm:"size:50;index"`
	PinHash        string    `json:"-"` // bcrypt digest, immutable once set
	AvatarURL      string    `json:"avatar_url,omitempty"`
	CoverURL       string    `json:"cover_url,omitempty"`
	Bio            string    `json:"bio,omitempty" gorm:"size:500"`
	Email          string    `json:"email,omitempty" gorm:"index"`
	Phone          string    `json:"phone,omitempty" gorm:"index"`
	IsPrivate      bool      `json:"is_private" gorm:"default:false"`
	AccountType    string    `json:"account_type" gorm:"size:10;default:'user'"`
	FollowersCount int64     `json:"followers_count" gorm:"default:0"`
	FollowingCount int64     `json:"following_count" gorm:"default:0"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"-"`
}

// AccountProfile is the public view of an account. Email and phone stay
// private to the owner; they exist for recovery, not display.
type AccountProfile struct {
	UserID         string    `json:"user_id"`
	Username       string    `json:"username"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
	CoverURL       string    `json:"cover_url,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	IsPrivate      bool      `json:"is_private"`
	AccountType    string    `json:"account_type"`
	FollowersCount int64     `json:"followers_count"`
	FollowingCount int64     `json:"following_count"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToProfile converts an account to its public view.
func (a *Account) ToProfile() AccountProfile {
	return AccountProfile{
		UserID:         a.UserID,
		Username:       a.Username,
		AvatarURL:      a.AvatarURL,
		CoverURL:       a.CoverURL,
		Bio:            a.Bio,
		IsPrivate:      a.IsPrivate,
		AccountType:    a.AccountType,
		FollowersCount: a.FollowersCount,
		FollowingCount: a.FollowingCount,
		CreatedAt:      a.CreatedAt,
	}
}

// AccountCompact is the author/actor info embedded in enriched responses.
type AccountCompact struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	AccountType string `json:"account_type"`
}

// ToCompact converts an account to its compact form.
func (a *Account) ToCompact() AccountCompact {
	return AccountCompact{
		UserID:      a.UserID,
		Username:    a.Username,
		AvatarURL:   a.AvatarURL,
		AccountType: a.AccountType,
	}
}

// SignupRequest defines the request body for creating an account.
type SignupRequest struct {
	Username   string `json:"username" validate:"required,min=2,max=50"`
	Pin        string `json:"pin" validate:"required,numeric,min=4,max=10"`
	PinConfirm string `json:"pin_confirm" validate:"required"`
}

// LoginRequest defines the request body for authenticating.
type LoginRequest struct {
	UserID string `json:"user_id" validate:"required,len=7,numeric"`
	Pin    string `json:"pin" validate:"required"`
}

// RecoverRequest defines the request body for recovering a forgotten user id.
// Exactly one of Email/Phone is expected; the lookup tries both.
type RecoverRequest struct {
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Phone string `json:"phone,omitempty"`
}

// UpdateProfileRequest defines the partial-update body for profile settings.
// PIN is deliberately absent; it cannot be changed once set.
type UpdateProfileRequest struct {
	Username  string `json:"username,omitempty" validate:"omitempty,min=2,max=50"`
	Bio       string `json:"bio,omitempty" validate:"omitempty,max=500"`
	AvatarURL string `json:"avatar_url,omitempty" validate:"omitempty,url"`
	CoverURL  string `json:"cover_url,omitempty" validate:"omitempty,url"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string `json:"phone,omitempty"`
	IsPrivate *bool  `json:"is_private,omitempty"`
}

// SessionClaims are custom claims extending standard jwt.RegisteredClaims.
type SessionClaims struct {
	UserID      string `json:"user_id"`
	AccountType string `json:"account_type"`
	jwt.RegisteredClaims
}
