package handlers

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/munasbate/backend/internal/apperrors"
	"github.com/munasbate/backend/internal/models"
	"github.com/munasbate/backend/internal/repositories"
)

// PostHandler handles HTTP requests related to posts and their engagement
type PostHandler struct {
	postRepository         repositories.PostRepository
	accountRepository      repositories.AccountRepository
	engagementRepository   repositories.EngagementRepository
	commentRepository      repositories.CommentRepository
	notificationRepository repositories.NotificationRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(
	postRepo repositories.PostRepository,
	accountRepo repositories.AccountRepository,
	engagementRepo repositories.EngagementRepository,
	commentRepo repositories.CommentRepository,
	notifRepo repositories.NotificationRepository,
) *PostHandler {
	return &PostHandler{
		postRepository:         postRepo,
		accountRepository:      accountRepo,
		engagementRepository:   engagementRepo,
		commentRepository:      commentRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterPostRoutes registers post routes on the protected group
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.DELETE("/posts/:post_id", h.DeletePost)
	g.POST("/posts/:post_id/likes/toggle", h.ToggleLike)
	g.POST("/posts/:post_id/saves/toggle", h.ToggleSave)
	g.POST("/posts/:post_id/comments", h.AddComment)
}

// RegisterPublicRoutes registers browse routes on the optional-session group
func (h *PostHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/posts/:post_id", h.GetPost)
	g.GET("/posts/:post_id/comments", h.ListComments)
	g.GET("/users/:user_id/posts", h.GetUserPosts)
}

// CreatePost creates a new post for the authenticated user
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post := &models.Post{
		AuthorUserID: userID,
		Content:      req.Content,
		ImageURL:     req.ImageURL,
	}
	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, post)
}

// GetPost returns a single post
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("post_id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// GetUserPosts lists a user's posts, newest-first
func (h *PostHandler) GetUserPosts(c echo.Context) error {
	posts, err := h.postRepository.GetPostsByAuthor(c.Request().Context(), c.Param("user_id"), 50)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, posts)
}

// DeletePost deletes the caller's own post, cascading likes, comments and
// saved references before the document so nothing is orphaned.
func (h *PostHandler) DeletePost(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	postID := c.Param("post_id")

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return httpError(err)
	}
	if post.AuthorUserID != userID {
		return httpError(apperrors.Forbidden("only the author can delete this post"))
	}

	if err := h.engagementRepository.DeleteByPost(postID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.commentRepository.DeleteByPost(postID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.postRepository.DeletePost(c.Request().Context(), postID); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ToggleLike flips the caller's like on a post and returns the new state
// with the updated count. Repeated rapid toggles converge per state.
func (h *PostHandler) ToggleLike(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	postID := c.Param("post_id")

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return httpError(err)
	}

	liked, changed, err := h.engagementRepository.TogglePostLike(postID, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// A lost insert race leaves the like row to the winner; only the call
	// that actually flipped the row may move the counter.
	if changed {
		delta := -1
		if liked {
			delta = 1
		}
		if err := h.postRepository.IncrementLikesCount(c.Request().Context(), postID, delta); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	if liked && changed && userID != post.AuthorUserID {
		notification := &models.Notification{
			UserID:     post.AuthorUserID,
			Type:       models.NotificationLike,
			FromUserID: userID,
			PostID:     postID,
		}
		if err := h.notificationRepository.CreateNotification(notification); err != nil {
			log.Printf("Failed to create like notification: %v", err)
		}
	}

	updated, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"liked": liked, "likes_count": updated.LikesCount})
}

// ToggleSave flips the caller's bookmark on a post. No counters move and no
// notification is emitted.
func (h *PostHandler) ToggleSave(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	postID := c.Param("post_id")

	if _, err := h.postRepository.GetPostByID(c.Request().Context(), postID); err != nil {
		return httpError(err)
	}

	saved, _, err := h.engagementRepository.TogglePostSave(postID, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"saved": saved})
}

// AddComment comments on a post, denormalizing the commenter's username and
// bumping the parent's comments_count.
func (h *PostHandler) AddComment(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	postID := c.Param("post_id")

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return httpError(err)
	}
	account, err := h.accountRepository.GetByUserID(userID)
	if err != nil {
		return httpError(err)
	}

	comment := &models.PostComment{
		PostID:   postID,
		UserID:   userID,
		Username: account.Username,
		Content:  req.Content,
	}
	if err := h.commentRepository.CreatePostComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.postRepository.IncrementCommentsCount(c.Request().Context(), postID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if userID != post.AuthorUserID {
		notification := &models.Notification{
			UserID:     post.AuthorUserID,
			Type:       models.NotificationComment,
			FromUserID: userID,
			PostID:     postID,
		}
		if err := h.notificationRepository.CreateNotification(notification); err != nil {
			log.Printf("Failed to create comment notification: %v", err)
		}
	}

	return c.JSON(http.StatusCreated, comment)
}

// ListComments lists a post's comments, oldest-first
func (h *PostHandler) ListComments(c echo.Context) error {
	comments, err := h.commentRepository.ListPostComments(c.Param("post_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, comments)
}
