package service

import (
	"errors"
	"strings"

	"github.com/healthdesk/internal/db"
	"gorm.io/gorm"
)

var ErrGuidelineNotFound = errors.New("guideline not found")

// GuidelineService provides access to clinical guideline documents.
type GuidelineService struct {
	db *gorm.DB
}

// NewGuidelineService returns a new GuidelineService instance.
func NewGuidelineService(gdb *gorm.DB) *GuidelineService {
	return &GuidelineService{db: gdb}
}

// List returns guidelines, optionally narrowed to one category, ordered by title.
func (s *GuidelineService) List(category string) ([]db.Guideline, error) {
	query := s.db.Model(&db.Guideline{})
	if trimmed := strings.TrimSpace(category); trimmed != "" {
		query = query.Where("category = ?", trimmed)
	}

	var guidelines []db.Guideline
	if err := query.Order("title").Find(&guidelines).Error; err != nil {
		return nil, err
	}
	return guidelines, nil
}

// GetBySlug fetches a guideline for a given slug.
func (s *GuidelineService) GetBySlug(slug string) (*db.Guideline, error) {
	var guideline db.Guideline
	if err := s.db.Where("slug = ?", strings.TrimSpace(slug)).First(&guideline).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuidelineNotFound
		}
		return nil, err
	}
	return &guideline, nil
}
