package service

import (
	"errors"
	"testing"

	"github.com/healthdesk/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupArticleTestDB(t *testing.T) func() {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := gdb.AutoMigrate(&db.Article{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	db.DB = gdb

	return func() {
		sqlDB, err := db.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func TestArticleCreateAndGetBySlug(t *testing.T) {
	cleanup := setupArticleTestDB(t)
	defer cleanup()

	svc := NewArticleService(db.DB)

	created, err := svc.Create(ArticleInput{
		Slug:     "cach-phong-ngua-cum-mua",
		Title:    "Cách phòng ngừa cúm mùa",
		Summary:  "Các biện pháp cơ bản",
		Content:  "## Nội dung\nRửa tay thường xuyên.",
		Category: "dự phòng",
		Author:   "BS. Hoa",
	})
	if err != nil {
		t.Fatalf("failed to create article: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected created article to have an id")
	}
	if created.Views != 0 {
		t.Fatalf("new article should start with zero views, got %d", created.Views)
	}

	fetched, err := svc.GetBySlug("cach-phong-ngua-cum-mua")
	if err != nil {
		t.Fatalf("failed to fetch by slug: %v", err)
	}
	if fetched.Title != created.Title {
		t.Fatalf("expected title %q, got %q", created.Title, fetched.Title)
	}

	if _, err := svc.GetBySlug("khong-ton-tai"); !errors.Is(err, ErrArticleNotFound) {
		t.Fatalf("expected ErrArticleNotFound, got %v", err)
	}
}

func TestArticleCreateValidation(t *testing.T) {
	cleanup := setupArticleTestDB(t)
	defer cleanup()

	svc := NewArticleService(db.DB)

	if _, err := svc.Create(ArticleInput{Title: "Thiếu slug"}); !errors.Is(err, ErrArticleSlugRequired) {
		t.Fatalf("expected ErrArticleSlugRequired, got %v", err)
	}
	if _, err := svc.Create(ArticleInput{Slug: "thieu-tieu-de"}); !errors.Is(err, ErrArticleTitleMissing) {
		t.Fatalf("expected ErrArticleTitleMissing, got %v", err)
	}
}

func TestArticleListFiltersAndPaginates(t *testing.T) {
	cleanup := setupArticleTestDB(t)
	defer cleanup()

	svc := NewArticleService(db.DB)

	seed := []ArticleInput{
		{Slug: "tin-1", Title: "Cảnh báo sốt xuất huyết", Category: "dịch tễ"},
		{Slug: "tin-2", Title: "Dinh dưỡng cho trẻ", Category: "dinh dưỡng"},
		{Slug: "tin-3", Title: "Sốt xuất huyết ở trẻ em", Category: "dịch tễ"},
	}
	for _, input := range seed {
		if _, err := svc.Create(input); err != nil {
			t.Fatalf("failed to seed %q: %v", input.Slug, err)
		}
	}

	result, err := svc.List(ArticleFilter{Category: "dịch tễ"})
	if err != nil {
		t.Fatalf("failed to list by category: %v", err)
	}
	if result.Total != 2 {
		t.Fatalf("expected 2 articles in category, got %d", result.Total)
	}

	result, err = svc.List(ArticleFilter{Search: "sốt xuất huyết"})
	if err != nil {
		t.Fatalf("failed to search: %v", err)
	}
	if result.Total != 2 {
		t.Fatalf("expected 2 search matches, got %d", result.Total)
	}

	result, err = svc.List(ArticleFilter{Page: 2, PerPage: 2})
	if err != nil {
		t.Fatalf("failed to paginate: %v", err)
	}
	if len(result.Articles) != 1 || result.TotalPages != 2 {
		t.Fatalf("expected 1 article on page 2 of 2, got %d articles, %d pages", len(result.Articles), result.TotalPages)
	}

	categories, err := svc.Categories()
	if err != nil {
		t.Fatalf("failed to list categories: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 distinct categories, got %v", categories)
	}
}
