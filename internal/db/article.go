package db

import "gorm.io/gorm"

// Article 定义了资讯文章模型，Views 为反规范化的累计浏览数。
type Article struct {
	gorm.Model
	Slug     string `gorm:"uniqueIndex;not null"`
	Title    string `gorm:"not null"`
	Summary  string
	Content  string `gorm:"type:text"`
	Category string `gorm:"index"`
	Author   string
	Views    uint64 `gorm:"default:0"`
}

// TableName 指定自定义表名，避免自动复数化导致的歧义。
func (Article) TableName() string {
	return "articles"
}
