package db

import "time"

// ArticleView 记录一次被计入的文章浏览。
// 行一经写入不再更新，冷却窗口判断只依赖 ViewedAt。
type ArticleView struct {
	ID        uint      `gorm:"primaryKey"`
	ArticleID uint      `gorm:"index:idx_article_viewer"`
	ViewerIP  string    `gorm:"size:64;index:idx_article_viewer"`
	ViewedAt  time.Time `gorm:"index"`
	CreatedAt time.Time
}

// TableName 指定自定义表名。
func (ArticleView) TableName() string {
	return "article_views"
}

// ForumPostView 记录一次被计入的帖子浏览，语义与 ArticleView 一致。
type ForumPostView struct {
	ID        uint      `gorm:"primaryKey"`
	PostID    uint      `gorm:"index:idx_post_viewer"`
	ViewerIP  string    `gorm:"size:64;index:idx_post_viewer"`
	ViewedAt  time.Time `gorm:"index"`
	CreatedAt time.Time
}

// TableName 指定自定义表名。
func (ForumPostView) TableName() string {
	return "forum_post_views"
}
