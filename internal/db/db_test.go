package db

import (
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestInitMigratesAndBackfillsCounters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "healthdesk.db")

	if err := Init(path); err != nil {
		t.Fatalf("failed to init database: %v", err)
	}
	defer func() {
		sqlDB, err := DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}()

	for _, table := range []string{"articles", "guidelines", "forum_posts", "forum_comments", "article_views", "forum_post_views", "users"} {
		if !DB.Migrator().HasTable(table) {
			t.Fatalf("expected table %s to exist", table)
		}
	}

	article := Article{Slug: "bai-viet", Title: "Bài viết"}
	if err := DB.Create(&article).Error; err != nil {
		t.Fatalf("failed to create article: %v", err)
	}
	if article.Views != 0 {
		t.Fatalf("expected zero views by default, got %d", article.Views)
	}
}

func TestEnsureAdminUser(t *testing.T) {
	path := filepath.Join(t.TempDir(), "healthdesk.db")
	if err := Init(path); err != nil {
		t.Fatalf("failed to init database: %v", err)
	}
	defer func() {
		sqlDB, err := DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}()

	// 未配置凭据时什么都不做
	if err := EnsureAdminUser("", ""); err != nil {
		t.Fatalf("empty credentials should be a no-op: %v", err)
	}
	var count int64
	if err := DB.Model(&User{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count users: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no users, got %d", count)
	}

	if err := EnsureAdminUser("admin", "s3cret"); err != nil {
		t.Fatalf("failed to ensure admin user: %v", err)
	}
	// 重复调用不应创建第二个账号
	if err := EnsureAdminUser("admin", "khác"); err != nil {
		t.Fatalf("repeat ensure failed: %v", err)
	}

	var user User
	if err := DB.Where("username = ?", "admin").First(&user).Error; err != nil {
		t.Fatalf("failed to load admin user: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cret")); err != nil {
		t.Fatalf("stored password should be the original bcrypt hash: %v", err)
	}

	if err := DB.Model(&User{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count users: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one user, got %d", count)
	}
}
