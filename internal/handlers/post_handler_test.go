package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/munasbate/backend/internal/models"
)

func newPostHandlerWith(posts *MockPostRepository, accounts *MockAccountRepository, engagement *MockEngagementRepository, comments *MockCommentRepository, notifs *MockNotificationRepository) *PostHandler {
	return NewPostHandler(posts, accounts, engagement, comments, notifs)
}

func postContext(e *echo.Echo, method, postID, callerID, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, "/", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, "/", nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/posts/:post_id")
	c.SetParamNames("post_id")
	c.SetParamValues(postID)
	if callerID != "" {
		c.Set("userID", callerID)
	}
	return c, rec
}

func TestCreatePost_Success(t *testing.T) {
	mockPosts := new(MockPostRepository)
	handler := newPostHandlerWith(mockPosts, new(MockAccountRepository), new(MockEngagementRepository), new(MockCommentRepository), new(MockNotificationRepository))
	e := newTestEcho()

	mockPosts.On("CreatePost", mock.Anything, mock.MatchedBy(func(p *models.Post) bool {
		return p.AuthorUserID == "1234567" && p.Content == "Our wedding is next month!"
	})).Return(nil)

	c, rec := postContext(e, http.MethodPost, "", "1234567", `{"content":"Our wedding is next month!"}`)
	err := handler.CreatePost(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	mockPosts.AssertExpectations(t)
}

func TestCreatePost_EmptyContent(t *testing.T) {
	handler := newPostHandlerWith(new(MockPostRepository), new(MockAccountRepository), new(MockEngagementRepository), new(MockCommentRepository), new(MockNotificationRepository))
	e := newTestEcho()

	c, _ := postContext(e, http.MethodPost, "", "1234567", `{"content":""}`)
	err := handler.CreatePost(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestToggleLike_Like(t *testing.T) {
	mockPosts := new(MockPostRepository)
	mockEngagement := new(MockEngagementRepository)
	mockNotifs := new(MockNotificationRepository)
	handler := newPostHandlerWith(mockPosts, new(MockAccountRepository), mockEngagement, new(MockCommentRepository), mockNotifs)
	e := newTestEcho()

	postID := "64f0c0ffee0c0ffee0c0ffee"
	post := &models.Post{AuthorUserID: "7654321"}
	mockPosts.On("GetPostByID", mock.Anything, postID).Return(post, nil).Once()
	mockEngagement.On("TogglePostLike", postID, "1234567").Return(true, true, nil)
	mockPosts.On("IncrementLikesCount", mock.Anything, postID, 1).Return(nil)
	mockNotifs.On("CreateNotification", mock.MatchedBy(func(n *models.Notification) bool {
		return n.UserID == "7654321" && n.Type == models.NotificationLike && n.PostID == postID
	})).Return(nil)
	mockPosts.On("GetPostByID", mock.Anything, postID).Return(&models.Post{AuthorUserID: "7654321", LikesCount: 6}, nil).Once()

	c, rec := postContext(e, http.MethodPost, postID, "1234567", "")
	err := handler.ToggleLike(c)

	assert.NoError(t, err)
	var response map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &response)
	assert.Equal(t, true, response["liked"])
	assert.Equal(t, float64(6), response["likes_count"])
	mockNotifs.AssertExpectations(t)
}

func TestToggleLike_Unlike(t *testing.T) {
	mockPosts := new(MockPostRepository)
	mockEngagement := new(MockEngagementRepository)
	mockNotifs := new(MockNotificationRepository)
	handler := newPostHandlerWith(mockPosts, new(MockAccountRepository), mockEngagement, new(MockCommentRepository), mockNotifs)
	e := newTestEcho()

	postID := "64f0c0ffee0c0ffee0c0ffee"
	mockPosts.On("GetPostByID", mock.Anything, postID).Return(&models.Post{AuthorUserID: "7654321"}, nil)
	mockEngagement.On("TogglePostLike", postID, "1234567").Return(false, true, nil)
	mockPosts.On("IncrementLikesCount", mock.Anything, postID, -1).Return(nil)

	c, rec := postContext(e, http.MethodPost, postID, "1234567", "")
	err := handler.ToggleLike(c)

	assert.NoError(t, err)
	var response map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &response)
	assert.Equal(t, false, response["liked"])
	// Removing a like never notifies.
	mockNotifs.AssertNotCalled(t, "CreateNotification", mock.Anything)
}

func TestToggleLike_LostInsertRaceLeavesCounterAlone(t *testing.T) {
	mockPosts := new(MockPostRepository)
	mockEngagement := new(MockEngagementRepository)
	mockNotifs := new(MockNotificationRepository)
	handler := newPostHandlerWith(mockPosts, new(MockAccountRepository), mockEngagement, new(MockCommentRepository), mockNotifs)
	e := newTestEcho()

	// A concurrent toggle from the same user won the insert; the row is on
	// but this call changed nothing, so the counter and the notification
	// belong to the winner.
	postID := "64f0c0ffee0c0ffee0c0ffee"
	mockPosts.On("GetPostByID", mock.Anything, postID).Return(&models.Post{AuthorUserID: "7654321", LikesCount: 1}, nil)
	mockEngagement.On("TogglePostLike", postID, "1234567").Return(true, false, nil)

	c, rec := postContext(e, http.MethodPost, postID, "1234567", "")
	err := handler.ToggleLike(c)

	assert.NoError(t, err)
	var response map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &response)
	assert.Equal(t, true, response["liked"])
	assert.Equal(t, float64(1), response["likes_count"])
	mockPosts.AssertNotCalled(t, "IncrementLikesCount", mock.Anything, mock.Anything, mock.Anything)
	mockNotifs.AssertNotCalled(t, "CreateNotification", mock.Anything)
}

func TestToggleLike_OwnPostNoNotification(t *testing.T) {
	mockPosts := new(MockPostRepository)
	mockEngagement := new(MockEngagementRepository)
	mockNotifs := new(MockNotificationRepository)
	handler := newPostHandlerWith(mockPosts, new(MockAccountRepository), mockEngagement, new(MockCommentRepository), mockNotifs)
	e := newTestEcho()

	postID := "64f0c0ffee0c0ffee0c0ffee"
	mockPosts.On("GetPostByID", mock.Anything, postID).Return(&models.Post{AuthorUserID: "1234567"}, nil)
	mockEngagement.On("TogglePostLike", postID, "1234567").Return(true, true, nil)
	mockPosts.On("IncrementLikesCount", mock.Anything, postID, 1).Return(nil)

	c, _ := postContext(e, http.MethodPost, postID, "1234567", "")
	err := handler.ToggleLike(c)

	assert.NoError(t, err)
	mockNotifs.AssertNotCalled(t, "CreateNotification", mock.Anything)
}

func TestDeletePost_NotAuthor(t *testing.T) {
	mockPosts := new(MockPostRepository)
	mockEngagement := new(MockEngagementRepository)
	handler := newPostHandlerWith(mockPosts, new(MockAccountRepository), mockEngagement, new(MockCommentRepository), new(MockNotificationRepository))
	e := newTestEcho()

	postID := "64f0c0ffee0c0ffee0c0ffee"
	mockPosts.On("GetPostByID", mock.Anything, postID).Return(&models.Post{AuthorUserID: "7654321"}, nil)

	c, _ := postContext(e, http.MethodDelete, postID, "1234567", "")
	err := handler.DeletePost(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)
	mockEngagement.AssertNotCalled(t, "DeleteByPost", mock.Anything)
	mockPosts.AssertNotCalled(t, "DeletePost", mock.Anything, mock.Anything)
}

func TestDeletePost_CascadesEngagement(t *testing.T) {
	mockPosts := new(MockPostRepository)
	mockEngagement := new(MockEngagementRepository)
	mockComments := new(MockCommentRepository)
	handler := newPostHandlerWith(mockPosts, new(MockAccountRepository), mockEngagement, mockComments, new(MockNotificationRepository))
	e := newTestEcho()

	postID := "64f0c0ffee0c0ffee0c0ffee"
	mockPosts.On("GetPostByID", mock.Anything, postID).Return(&models.Post{AuthorUserID: "1234567"}, nil)
	mockEngagement.On("DeleteByPost", postID).Return(nil)
	mockComments.On("DeleteByPost", postID).Return(nil)
	mockPosts.On("DeletePost", mock.Anything, postID).Return(nil)

	c, rec := postContext(e, http.MethodDelete, postID, "1234567", "")
	err := handler.DeletePost(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	mockEngagement.AssertExpectations(t)
	mockComments.AssertExpectations(t)
	mockPosts.AssertExpectations(t)
}

func TestAddComment_DenormalizesUsername(t *testing.T) {
	mockPosts := new(MockPostRepository)
	mockAccounts := new(MockAccountRepository)
	mockComments := new(MockCommentRepository)
	mockNotifs := new(MockNotificationRepository)
	handler := newPostHandlerWith(mockPosts, mockAccounts, new(MockEngagementRepository), mockComments, mockNotifs)
	e := newTestEcho()

	postID := "64f0c0ffee0c0ffee0c0ffee"
	mockPosts.On("GetPostByID", mock.Anything, postID).Return(&models.Post{AuthorUserID: "7654321"}, nil)
	mockAccounts.On("GetByUserID", "1234567").Return(&models.Account{UserID: "1234567", Username: "Sara"}, nil)
	mockComments.On("CreatePostComment", mock.MatchedBy(func(cm *models.PostComment) bool {
		return cm.Username == "Sara" && cm.Content == "Congratulations!"
	})).Return(nil)
	mockPosts.On("IncrementCommentsCount", mock.Anything, postID).Return(nil)
	mockNotifs.On("CreateNotification", mock.Anything).Return(nil)

	c, rec := postContext(e, http.MethodPost, postID, "1234567", `{"content":"Congratulations!"}`)
	err := handler.AddComment(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	mockComments.AssertExpectations(t)
	mockPosts.AssertExpectations(t)
}
