package handler

import (
	"github.com/healthdesk/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db         *gorm.DB
	articles   *service.ArticleService
	guidelines *service.GuidelineService
	forum      *service.ForumService
	views      *service.ViewService
}

// NewAPI constructs a handler set with shared services.
func NewAPI(db *gorm.DB) *API {
	return &API{
		db:         db,
		articles:   service.NewArticleService(db),
		guidelines: service.NewGuidelineService(db),
		forum:      service.NewForumService(db),
		views:      service.NewViewService(db),
	}
}

// DB exposes the underlying gorm instance for legacy paths.
func (a *API) DB() *gorm.DB {
	return a.db
}
