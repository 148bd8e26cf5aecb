package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/healthdesk/internal/service"
)

const forwardedForHeader = "X-Forwarded-For"

// clientIdentity 解析本次请求的访客标识：取转发头的第一跳 IP，
// 缺失时回退为哨兵值 unknown。该头可被客户端伪造，
// 更强的部署应在网络层解析真实对端地址。
func clientIdentity(c *gin.Context) string {
	return firstForwardedHop(c.GetHeader(forwardedForHeader))
}

func firstForwardedHop(header string) string {
	first := header
	if idx := strings.Index(header, ","); idx >= 0 {
		first = header[:idx]
	}
	first = strings.TrimSpace(first)
	if first == "" {
		return service.IdentityUnknown
	}
	return first
}

// RecordArticleView 处理文章浏览量上报。
func (a *API) RecordArticleView(c *gin.Context) {
	var payload struct {
		ArticleID uint `json:"articleId"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil || payload.ArticleID == 0 {
		respondError(c, http.StatusBadRequest, "Missing articleId")
		return
	}

	a.recordView(c, service.SubjectArticle, payload.ArticleID)
}

// RecordForumPostView 处理论坛帖子浏览量上报。
func (a *API) RecordForumPostView(c *gin.Context) {
	var payload struct {
		PostID uint `json:"postId"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil || payload.PostID == 0 {
		respondError(c, http.StatusBadRequest, "Missing postId")
		return
	}

	a.recordView(c, service.SubjectForumPost, payload.PostID)
}

func (a *API) recordView(c *gin.Context, kind service.SubjectKind, subjectID uint) {
	counted, err := a.views.RecordView(kind, subjectID, clientIdentity(c), time.Now().UTC())
	if err != nil {
		if errors.Is(err, service.ErrSubjectNotFound) {
			// 浏览记录已写入，计数对象缺失不影响调用方
			c.Error(err)
			c.JSON(http.StatusOK, gin.H{"counted": counted})
			return
		}
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "Internal error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"counted": counted})
}
