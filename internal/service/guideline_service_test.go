package service

import (
	"errors"
	"testing"

	"github.com/healthdesk/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupGuidelineTestDB(t *testing.T) func() {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := gdb.AutoMigrate(&db.Guideline{}); err != nil {
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

func TestGuidelineListAndGet(t *testing.T) {
	cleanup := setupGuidelineTestDB(t)
	defer cleanup()

	seed := []db.Guideline{
		{Slug: "xu-tri-sot-xuat-huyet", Title: "Xử trí sốt xuất huyết Dengue", Category: "truyền nhiễm", Source: "Bộ Y tế"},
		{Slug: "chan-doan-tang-huyet-ap", Title: "Chẩn đoán tăng huyết áp", Category: "tim mạch"},
	}
	for i := range seed {
		if err := db.DB.Create(&seed[i]).Error; err != nil {
			t.Fatalf("failed to seed guideline: %v", err)
		}
	}

	svc := NewGuidelineService(db.DB)

	all, err := svc.List("")
	if err != nil {
		t.Fatalf("failed to list guidelines: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 guidelines, got %d", len(all))
	}

	filtered, err := svc.List("tim mạch")
	if err != nil {
		t.Fatalf("failed to filter guidelines: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Slug != "chan-doan-tang-huyet-ap" {
		t.Fatalf("unexpected filter result: %+v", filtered)
	}

	guideline, err := svc.GetBySlug("xu-tri-sot-xuat-huyet")
	if err != nil {
		t.Fatalf("failed to get by slug: %v", err)
	}
	if guideline.Source != "Bộ Y tế" {
		t.Fatalf("expected source to round-trip, got %q", guideline.Source)
	}

	if _, err := svc.GetBySlug("khong-co"); !errors.Is(err, ErrGuidelineNotFound) {
		t.Fatalf("expected ErrGuidelineNotFound, got %v", err)
	}
}
