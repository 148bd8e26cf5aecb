package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/healthdesk/internal/service"
)

// ListGuidelines 返回临床指南列表，可按分类过滤。
func (a *API) ListGuidelines(c *gin.Context) {
	guidelines, err := a.guidelines.List(c.Query("category"))
	if err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "Internal error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"guidelines": guidelines})
}

// GetGuideline 按 slug 返回单篇指南及渲染后的正文。
// 指南不参与浏览计数。
func (a *API) GetGuideline(c *gin.Context) {
	guideline, err := a.guidelines.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrGuidelineNotFound) {
			respondError(c, http.StatusNotFound, "Guideline not found")
			return
		}
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "Internal error")
		return
	}

	htmlContent, err := renderMarkdown(guideline.Content)
	if err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "Internal error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"guideline":   guideline,
		"contentHtml": htmlContent,
	})
}
