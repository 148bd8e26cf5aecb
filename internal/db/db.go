package db

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DB 是一个全局的数据库连接实例
var DB *gorm.DB

// Init 初始化数据库连接并执行自动迁移。
// databasePath 为空时将回退到默认值 healthdesk.db。
func Init(databasePath string) error {
	path := strings.TrimSpace(databasePath)
	if path == "" {
		path = "healthdesk.db"
	}

	if err := ensureParentDir(path); err != nil {
		return err
	}

	var err error
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return err
	}

	// 自动迁移模式，为核心模型创建表
	if err = DB.AutoMigrate(
		&User{},
		&Article{},
		&Guideline{},
		&ForumPost{},
		&ForumComment{},
		&ArticleView{},
		&ForumPostView{},
	); err != nil {
		return err
	}

	// 历史数据中计数列可能为 NULL，统一回填为 0，
	// 保证计数路径可以直接执行原子自增。
	if err := DB.Model(&Article{}).
		Where("views IS NULL").
		Update("views", 0).Error; err != nil {
		return err
	}
	if err := DB.Model(&ForumPost{}).
		Where("views_count IS NULL").
		Update("views_count", 0).Error; err != nil {
		return err
	}

	return nil
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
