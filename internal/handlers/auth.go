package handlers

import (
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/munasbate/backend/internal/apperrors"
	"github.com/munasbate/backend/internal/models"
	"github.com/munasbate/backend/internal/repositories"
)

// AuthHandler handles signup, login and user-id recovery
type AuthHandler struct {
	accountRepository repositories.AccountRepository
	jwtSecret         string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(accountRepo repositories.AccountRepository) *AuthHandler {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "supersecretjwtkey"
	}
	return &AuthHandler{
		accountRepository: accountRepo,
		jwtSecret:         jwtSecret,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/signup", h.Signup)
	g.POST("/login", h.Login)
	g.POST("/recover", h.Recover)
}

// Signup creates an account: draws a unique 7-digit user id, hashes the PIN
// and returns the new id with a session token.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.Pin != req.PinConfirm {
		return httpError(apperrors.Validation("pin confirmation does not match"))
	}

	userID, err := h.accountRepository.GenerateUserID()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	pinHash, err := bcrypt.GenerateFromPassword([]byte(req.Pin), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash pin")
	}

	account := &models.Account{
		UserID:      userID,
		Username:    req.Username,
		PinHash:     string(pinHash),
		AccountType: models.AccountTypeUser,
	}
	if err := h.accountRepository.CreateAccount(account); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	token, err := h.generateToken(account)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token after signup")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"user_id": account.UserID,
		"token":   token,
	})
}

// Login verifies the user id + PIN pair. A single AuthError covers both a
// wrong id and a wrong pin.
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	account, err := h.accountRepository.GetByUserID(req.UserID)
	if err != nil {
		return httpError(apperrors.Auth("no matching account"))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PinHash), []byte(req.Pin)); err != nil {
		return httpError(apperrors.Auth("no matching account"))
	}

	token, err := h.generateToken(account)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"account": account,
		"token":   token,
	})
}

// Recover looks up a forgotten user id by exact email or phone match.
func (h *AuthHandler) Recover(c echo.Context) error {
	var req models.RecoverRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.Email == "" && req.Phone == "" {
		return httpError(apperrors.Validation("email or phone is required"))
	}

	account, err := h.accountRepository.GetByEmailOrPhone(req.Email, req.Phone)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"user_id": account.UserID})
}

func (h *AuthHandler) generateToken(account *models.Account) (string, error) {
	claims := &models.SessionClaims{
		UserID:      account.UserID,
		AccountType: account.AccountType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(72 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
