package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/munasbate/backend/internal/models"
	"github.com/munasbate/backend/internal/repositories"
)

// AccountHandler handles HTTP requests related to profiles
type AccountHandler struct {
	accountRepository repositories.AccountRepository
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountRepo repositories.AccountRepository) *AccountHandler {
	return &AccountHandler{accountRepository: accountRepo}
}

// RegisterProfileRoutes registers profile routes on the protected group
func (h *AccountHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile)
}

// RegisterPublicRoutes registers browse routes on the optional-session group
func (h *AccountHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/users/:user_id", h.GetAccount)
	g.GET("/users/search", h.SearchAccounts)
}

// GetAccount returns another user's public profile. Contact details only
// appear on the owner's own /profile view.
func (h *AccountHandler) GetAccount(c echo.Context) error {
	account, err := h.accountRepository.GetByUserID(c.Param("user_id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, account.ToProfile())
}

// GetProfile retrieves the authenticated user's own profile
func (h *AccountHandler) GetProfile(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	account, err := h.accountRepository.GetByUserID(userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, account)
}

// UpdateProfile applies a partial update to the caller's own profile. The
// PIN is not updatable; it never appears in the field map.
func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	fields := map[string]interface{}{}
	if req.Username != "" {
		fields["username"] = req.Username
	}
	if req.Bio != "" {
		fields["bio"] = req.Bio
	}
	if req.AvatarURL != "" {
		fields["avatar_url"] = req.AvatarURL
	}
	if req.CoverURL != "" {
		fields["cover_url"] = req.CoverURL
	}
	if req.Email != "" {
		fields["email"] = req.Email
	}
	if req.Phone != "" {
		fields["phone"] = req.Phone
	}
	if req.IsPrivate != nil {
		fields["is_private"] = *req.IsPrivate
	}

	if err := h.accountRepository.UpdateProfile(userID, fields); err != nil {
		return httpError(err)
	}

	account, err := h.accountRepository.GetByUserID(userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, account)
}

// SearchAccounts finds accounts by username or user id prefix
func (h *AccountHandler) SearchAccounts(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return c.JSON(http.StatusOK, []models.AccountCompact{})
	}

	accounts, err := h.accountRepository.SearchAccounts(query, 20)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	results := make([]models.AccountCompact, len(accounts))
	for i := range accounts {
		results[i] = accounts[i].ToCompact()
	}
	return c.JSON(http.StatusOK, results)
}
