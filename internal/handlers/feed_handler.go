package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/munasbate/backend/internal/models"
	"github.com/munasbate/backend/internal/repositories"
)

// feedLimit caps every feed response.
const feedLimit = 50

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	postRepository       repositories.PostRepository
	accountRepository    repositories.AccountRepository
	followRepository     repositories.FollowRepository
	engagementRepository repositories.EngagementRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(
	postRepo repositories.PostRepository,
	accountRepo repositories.AccountRepository,
	followRepo repositories.FollowRepository,
	engagementRepo repositories.EngagementRepository,
) *FeedHandler {
	return &FeedHandler{
		postRepository:       postRepo,
		accountRepository:    accountRepo,
		followRepository:     followRepo,
		engagementRepository: engagementRepo,
	}
}

// RegisterFeedRoutes registers the feed on the optional-session group;
// guests get the "all" feed with no per-viewer flags.
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// EnrichedPost is a post with author info and viewer-specific flags
type EnrichedPost struct {
	models.Post
	Author  models.AccountCompact `json:"author"`
	IsLiked bool                  `json:"is_liked"`
	IsSaved bool                  `json:"is_saved"`
}

// GetFeed returns the newest-first feed. filter=following restricts to the
// viewer's followees and yields an empty list when they follow no one.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	viewerID := currentUserID(c)
	filter := c.QueryParam("filter")
	if filter == "" {
		filter = "all"
	}

	var posts []models.Post
	var err error
	switch filter {
	case "all":
		posts, err = h.postRepository.GetAllPosts(c.Request().Context(), feedLimit)
	case "following":
		if viewerID == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
		}
		var followingIDs []string
		followingIDs, err = h.followRepository.GetFollowingIDs(viewerID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		posts, err = h.postRepository.GetPostsByAuthors(c.Request().Context(), followingIDs, feedLimit)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown feed filter")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Collect author ids and post ids for enrichment
	authorIDs := make([]string, 0, len(posts))
	seen := make(map[string]bool, len(posts))
	postIDs := make([]string, len(posts))
	for i, p := range posts {
		if !seen[p.AuthorUserID] {
			seen[p.AuthorUserID] = true
			authorIDs = append(authorIDs, p.AuthorUserID)
		}
		postIDs[i] = p.ID.Hex()
	}

	authorMap, err := h.accountRepository.GetCompactMap(authorIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	likedMap := map[string]bool{}
	savedMap := map[string]bool{}
	if viewerID != "" {
		likedMap, err = h.engagementRepository.GetLikedPostIDs(viewerID, postIDs)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		savedMap, err = h.engagementRepository.GetSavedPostIDs(viewerID, postIDs)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	enriched := make([]EnrichedPost, len(posts))
	for i, p := range posts {
		pid := p.ID.Hex()
		enriched[i] = EnrichedPost{
			Post:    p,
			Author:  authorMap[p.AuthorUserID],
			IsLiked: likedMap[pid],
			IsSaved: savedMap[pid],
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"posts": enriched})
}
