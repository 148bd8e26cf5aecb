package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/healthdesk/internal/db"
	"gorm.io/gorm"
)

var (
	ErrForumPostNotFound    = errors.New("forum post not found")
	ErrForumTitleRequired   = errors.New("forum post title is required")
	ErrForumContentRequired = errors.New("forum content is required")
)

// ForumService 负责论坛帖子与评论的读写。
type ForumService struct {
	db *gorm.DB
}

// ForumFilter 描述帖子列表的筛选条件。
type ForumFilter struct {
	Category string
	Page     int
	PerPage  int
}

// ForumListResult 聚合分页后的帖子列表。
type ForumListResult struct {
	Posts      []db.ForumPost
	Total      int64
	TotalPages int
	Page       int
	PerPage    int
}

// ForumPostInput 表示创建帖子时接受的字段。
type ForumPostInput struct {
	Title       string
	Content     string
	Category    string
	AuthorName  string
	AuthorToken string
}

// ForumCommentInput 表示创建评论时接受的字段。
type ForumCommentInput struct {
	Content     string
	AuthorName  string
	AuthorToken string
}

// NewForumService 创建 ForumService 实例。
func NewForumService(gdb *gorm.DB) *ForumService {
	return &ForumService{db: gdb}
}

// ListPosts 按创建时间倒序返回帖子列表。
func (s *ForumService) ListPosts(filter ForumFilter) (ForumListResult, error) {
	result := ForumListResult{
		Page:    filter.Page,
		PerPage: filter.PerPage,
	}
	if result.Page < 1 {
		result.Page = 1
	}
	if result.PerPage < 1 {
		result.PerPage = 20
	}

	query := s.db.Model(&db.ForumPost{})
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
		Find(&result.Posts).Error; err != nil {
		return result, err
	}

	return result, nil
}

// GetPost 返回单个帖子及其全部评论。
func (s *ForumService) GetPost(id uint) (*db.ForumPost, error) {
	var post db.ForumPost
	if err := s.db.Preload("Comments", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("created_at asc")
	}).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrForumPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// CreatePost 创建新帖子。未提供作者令牌时生成一个新的匿名令牌。
func (s *ForumService) CreatePost(input ForumPostInput) (*db.ForumPost, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrForumTitleRequired
	}
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, ErrForumContentRequired
	}

	token := strings.TrimSpace(input.AuthorToken)
	if token == "" {
		token = uuid.NewString()
	}

	authorName := strings.TrimSpace(input.AuthorName)
	if authorName == "" {
		authorName = "Ẩn danh"
	}

	post := db.ForumPost{
		Title:       title,
		Content:     content,
		Category:    strings.TrimSpace(input.Category),
		AuthorName:  authorName,
		AuthorToken: token,
	}

	if err := s.db.Create(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// AddComment 为帖子追加一条评论。
func (s *ForumService) AddComment(postID uint, input ForumCommentInput) (*db.ForumComment, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, ErrForumContentRequired
	}

	var post db.ForumPost
	if err := s.db.Select("id").First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrForumPostNotFound
		}
		return nil, err
	}

	token := strings.TrimSpace(input.AuthorToken)
	if token == "" {
		token = uuid.NewString()
	}

	authorName := strings.TrimSpace(input.AuthorName)
	if authorName == "" {
		authorName = "Ẩn danh"
	}

	comment := db.ForumComment{
		ForumPostID: post.ID,
		AuthorName:  authorName,
		AuthorToken: token,
		Content:     content,
	}

	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// CommentCountMap 返回指定帖子的评论数，未找到的帖子不会出现在结果中。
func (s *ForumService) CommentCountMap(postIDs []uint) (map[uint]int64, error) {
	result := make(map[uint]int64, len(postIDs))
	if len(postIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		ForumPostID uint
		Count       int64
	}
	if err := s.db.Model(&db.ForumComment{}).
		Select("forum_post_id, COUNT(*) AS count").
		Where("forum_post_id IN ?", postIDs).
		Group("forum_post_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.ForumPostID] = row.Count
	}

	return result, nil
}
