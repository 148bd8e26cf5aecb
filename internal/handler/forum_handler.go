package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/healthdesk/internal/service"
)

const (
	guestCookieName   = "hd_guest_id"
	guestCookieMaxAge = 365 * 24 * 60 * 60
)

// ensureGuestToken 为匿名访客维护一个长期的发帖令牌 Cookie。
func (a *API) ensureGuestToken(c *gin.Context) string {
	if token, err := c.Cookie(guestCookieName); err == nil && strings.TrimSpace(token) != "" {
		return token
	}

	token := uuid.NewString()
	secure := c.Request.TLS != nil

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     guestCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		MaxAge:   guestCookieMaxAge,
		Expires:  time.Now().Add(365 * 24 * time.Hour),
		SameSite: http.SameSiteLaxMode,
	})

	return token
}

// ListForumPosts 返回帖子列表及各帖的评论数。
func (a *API) ListForumPosts(c *gin.Context) {
	filter := service.ForumFilter{
		Category: strings.TrimSpace(c.Query("category")),
		Page:     parsePositiveInt(c.DefaultQuery("page", "1"), 1),
		PerPage:  20,
	}

	result, err := a.forum.ListPosts(filter)
	if err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "Internal error")
		return
	}

	postIDs := make([]uint, 0, len(result.Posts))
	for _, post := range result.Posts {
		postIDs = append(postIDs, post.ID)
	}

	commentCounts, err := a.forum.CommentCountMap(postIDs)
	if err != nil {
		c.Error(err)
		commentCounts = nil
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":         result.Posts,
		"commentCounts": commentCounts,
		"total":         result.Total,
		"page":          result.Page,
		"totalPages":    result.TotalPages,
	})
}

// GetForumPost returns one post with its comments.
// Fetching the detail is what triggers the session-level view tracking.
func (a *API) GetForumPost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid post id")
		return
	}

	post, err := a.forum.GetPost(id)
	if err != nil {
		if errors.Is(err, service.ErrForumPostNotFound) {
			respondError(c, http.StatusNotFound, "Post not found")
			return
		}
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "Internal error")
		return
	}

	a.trackSubjectView(c, service.SubjectForumPost, post.ID)

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// CreateForumPost 创建新帖子，作者身份来自匿名令牌 Cookie。
func (a *API) CreateForumPost(c *gin.Context) {
	var payload struct {
		Title      string `json:"title"`
		Content    string `json:"content"`
		Category   string `json:"category"`
		AuthorName string `json:"authorName"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	post, err := a.forum.CreatePost(service.ForumPostInput{
		Title:       payload.Title,
		Content:     payload.Content,
		Category:    payload.Category,
		AuthorName:  payload.AuthorName,
		AuthorToken: a.ensureGuestToken(c),
	})
	if err != nil {
		if errors.Is(err, service.ErrForumTitleRequired) || errors.Is(err, service.ErrForumContentRequired) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "Internal error")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// AddForumComment 为帖子追加评论。
func (a *API) AddForumComment(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid post id")
		return
	}

	var payload struct {
		Content    string `json:"content"`
		AuthorName string `json:"authorName"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	comment, err := a.forum.AddComment(id, service.ForumCommentInput{
		Content:     payload.Content,
		AuthorName:  payload.AuthorName,
		AuthorToken: a.ensureGuestToken(c),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForumPostNotFound):
			respondError(c, http.StatusNotFound, "Post not found")
		case errors.Is(err, service.ErrForumContentRequired):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			c.Error(err)
			respondError(c, http.StatusInternalServerError, "Internal error")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}
