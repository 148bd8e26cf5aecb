package db

import "gorm.io/gorm"

// ForumPost 定义了论坛帖子模型，ViewsCount 为反规范化的累计浏览数。
type ForumPost struct {
	gorm.Model
	Title       string `gorm:"not null"`
	Content     string `gorm:"type:text"`
	Category    string `gorm:"index"`
	AuthorName  string
	AuthorToken string `gorm:"size:64;index"`
	ViewsCount  uint64 `gorm:"default:0"`
	Comments    []ForumComment
}

// TableName 指定自定义表名。
func (ForumPost) TableName() string {
	return "forum_posts"
}

// ForumComment 记录帖子下的讨论回复，按创建时间平铺展示。
type ForumComment struct {
	gorm.Model
	ForumPostID uint `gorm:"index"`
	AuthorName  string
	AuthorToken string `gorm:"size:64"`
	Content     string `gorm:"type:text"`
}

// TableName 指定自定义表名。
func (ForumComment) TableName() string {
	return "forum_comments"
}
