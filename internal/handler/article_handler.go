package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/healthdesk/internal/service"
)

// ListArticles 返回资讯文章列表，支持搜索、分类与分页。
func (a *API) ListArticles(c *gin.Context) {
	filter := service.ArticleFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Category: strings.TrimSpace(c.Query("category")),
		Page:     parsePositiveInt(c.DefaultQuery("page", "1"), 1),
		PerPage:  10,
	}

	result, err := a.articles.List(filter)
	if err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "Internal error")
		return
	}

	categories, err := a.articles.Categories()
	if err != nil {
		c.Error(err)
		categories = nil
	}

	c.JSON(http.StatusOK, gin.H{
		"articles":   result.Articles,
		"total":      result.Total,
		"page":       result.Page,
		"totalPages": result.TotalPages,
		"categories": categories,
	})
}

// GetArticle returns one article by slug with rendered content.
// Fetching the detail page is what triggers the session-level view tracking.
func (a *API) GetArticle(c *gin.Context) {
	slug := c.Param("slug")

	article, err := a.articles.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			respondError(c, http.StatusNotFound, "Article not found")
			return
		}
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "Internal error")
		return
	}

	htmlContent, err := renderMarkdown(article.Content)
	if err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "Internal error")
		return
	}

	a.trackSubjectView(c, service.SubjectArticle, article.ID)

	c.JSON(http.StatusOK, gin.H{
		"article":     article,
		"contentHtml": htmlContent,
	})
}

// CreateArticle 创建新文章，供外部编辑工具调用。
func (a *API) CreateArticle(c *gin.Context) {
	var payload struct {
		Slug     string `json:"slug"`
		Title    string `json:"title"`
		Summary  string `json:"summary"`
		Content  string `json:"content"`
		Category string `json:"category"`
		Author   string `json:"author"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	article, err := a.articles.Create(service.ArticleInput{
		Slug:     payload.Slug,
		Title:    payload.Title,
		Summary:  payload.Summary,
		Content:  payload.Content,
		Category: payload.Category,
		Author:   payload.Author,
	})
	if err != nil {
		if errors.Is(err, service.ErrArticleSlugRequired) || errors.Is(err, service.ErrArticleTitleMissing) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "Internal error")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"article": article})
}
