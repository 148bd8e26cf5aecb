package service

import (
	"errors"
	"strings"

	"github.com/healthdesk/internal/db"
	"gorm.io/gorm"
)

var (
	ErrArticleNotFound     = errors.New("article not found")
	ErrArticleSlugRequired = errors.New("article slug is required")
	ErrArticleTitleMissing = errors.New("article title is required")
)

// ArticleService wraps news article related database operations.
type ArticleService struct {
	db *gorm.DB
}

// ArticleFilter describes filters for listing articles.
type ArticleFilter struct {
	Search   string
	Category string
	Page     int
	PerPage  int
}

// ArticleListResult aggregates paginated list data.
type ArticleListResult struct {
	Articles   []db.Article
	Total      int64
	TotalPages int
	Page       int
	PerPage    int
}

// ArticleInput represents fields accepted when creating an article.
type ArticleInput struct {
	Slug     string
	Title    string
	Summary  string
	Content  string
	Category string
	Author   string
}

// NewArticleService creates an ArticleService instance.
func NewArticleService(gdb *gorm.DB) *ArticleService {
	return &ArticleService{db: gdb}
}

// List returns articles matching the filter, newest first.
func (s *ArticleService) List(filter ArticleFilter) (ArticleListResult, error) {
	result := ArticleListResult{
		Page:    filter.Page,
		PerPage: filter.PerPage,
	}
	if result.Page < 1 {
		result.Page = 1
	}
	if result.PerPage < 1 {
		result.PerPage = 10
	}

	query := s.db.Model(&db.Article{})

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title LIKE ? OR summary LIKE ?", pattern, pattern)
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}

	if err := query.Count(&result.Total).Error; err != nil {
		return result, err
	}

	result.TotalPages = int((result.Total + int64(result.PerPage) - 1) / int64(result.PerPage))

	offset := (result.Page - 1) * result.PerPage
	if err := query.Order("created_at desc").
		Offset(offset).
		Limit(result.PerPage).
		Find(&result.Articles).Error; err != nil {
		return result, err
	}

	return result, nil
}

// Get fetches an article by id.
func (s *ArticleService) Get(id uint) (*db.Article, error) {
	var article db.Article
	if err := s.db.First(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	return &article, nil
}

// GetBySlug fetches an article for a given slug.
func (s *ArticleService) GetBySlug(slug string) (*db.Article, error) {
	var article db.Article
	if err := s.db.Where("slug = ?", strings.TrimSpace(slug)).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	return &article, nil
}

// Create persists a new article.
func (s *ArticleService) Create(input ArticleInput) (*db.Article, error) {
	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		return nil, ErrArticleSlugRequired
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrArticleTitleMissing
	}

	article := db.Article{
		Slug:     slug,
		Title:    title,
		Summary:  strings.TrimSpace(input.Summary),
		Content:  input.Content,
		Category: strings.TrimSpace(input.Category),
		Author:   strings.TrimSpace(input.Author),
	}

	if err := s.db.Create(&article).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

// Categories returns the distinct non-empty categories in use.
func (s *ArticleService) Categories() ([]string, error) {
	var categories []string
	if err := s.db.Model(&db.Article{}).
		Where("category <> ''").
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
