package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/munasbate/backend/pkg/storage"
)

// MediaHandler uploads user media (post images, avatars, covers) through the
// storage gateway and returns the public URL.
type MediaHandler struct {
	mediaGateway storage.Gateway
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(mediaGateway storage.Gateway) *MediaHandler {
	return &MediaHandler{mediaGateway: mediaGateway}
}

// RegisterMediaRoutes registers the upload route on the protected group
func (h *MediaHandler) RegisterMediaRoutes(g *echo.Group) {
	g.POST("/media", h.Upload)
}

// Upload stores a multipart file and returns its URL. The gateway enforces
// the size cap.
func (h *MediaHandler) Upload(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "File is required")
	}
	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to read uploaded file")
	}
	defer src.Close()

	key := storage.ObjectKey("media/"+userID, file.Filename)
	url, err := h.mediaGateway.Upload(c.Request().Context(), key, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"url": url})
}
