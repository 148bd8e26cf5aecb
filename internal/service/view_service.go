package service

import (
	"errors"
	"time"

	"github.com/healthdesk/internal/db"
	"gorm.io/gorm"
)

// viewCooldownWindow 是同一访客对同一主题重复浏览不计数的时长。
const viewCooldownWindow = 30 * time.Minute

// IdentityUnknown 是解析不到客户端地址时使用的哨兵标识。
const IdentityUnknown = "unknown"

// SubjectKind 区分浏览计数的主题类型。
type SubjectKind string

const (
	// SubjectArticle 对应资讯文章。
	SubjectArticle SubjectKind = "article"
	// SubjectForumPost 对应论坛帖子。
	SubjectForumPost SubjectKind = "forum_post"
)

var (
	ErrInvalidSubject     = errors.New("invalid subject id")
	ErrInvalidIdentity    = errors.New("invalid viewer identity")
	ErrUnknownSubjectKind = errors.New("unknown subject kind")
	// ErrSubjectNotFound 表示浏览记录已写入但计数对象不存在，计数自增被跳过。
	ErrSubjectNotFound = errors.New("view subject not found")
)

// ViewService 负责带冷却窗口的浏览计数：同一访客在窗口内
// 对同一主题的重复浏览只计入一次。
type ViewService struct {
	db       *gorm.DB
	cooldown time.Duration
}

// NewViewService 创建 ViewService，默认冷却窗口为 30 分钟。
func NewViewService(gdb *gorm.DB) *ViewService {
	return &ViewService{db: gdb, cooldown: viewCooldownWindow}
}

// WithCooldownWindow 允许在测试或特定场景下调整冷却窗口。
func (s *ViewService) WithCooldownWindow(d time.Duration) *ViewService {
	if d <= 0 {
		return s
	}
	s.cooldown = d
	return s
}

// CooldownWindow 返回当前冷却窗口，供会话层抑制沿用同一时长。
func (s *ViewService) CooldownWindow() time.Duration {
	return s.cooldown
}

// RecordView 处理一次浏览上报：窗口内已有记录时直接返回 false；
// 否则写入浏览记录并原子自增主题计数，返回 true。
// 计数对象缺失时仍视为已记录，返回 true 与 ErrSubjectNotFound。
func (s *ViewService) RecordView(kind SubjectKind, subjectID uint, identity string, now time.Time) (bool, error) {
	if subjectID == 0 {
		return false, ErrInvalidSubject
	}
	if identity == "" {
		return false, ErrInvalidIdentity
	}

	windowStart := now.Add(-s.cooldown)

	recent, err := s.hasRecentView(kind, subjectID, identity, windowStart)
	if err != nil {
		// 读失败时不能确认去重结果，绝不盲目计数。
		return false, err
	}
	if recent {
		return false, nil
	}

	if err := s.recordViewEvent(kind, subjectID, identity, now); err != nil {
		return false, err
	}

	// 浏览记录已落库，此后计数失败不回滚：
	// 窗口判断以浏览记录为准，计数只是展示值。
	if err := s.incrementViewCount(kind, subjectID); err != nil {
		return true, err
	}

	return true, nil
}

func (s *ViewService) hasRecentView(kind SubjectKind, subjectID uint, identity string, windowStart time.Time) (bool, error) {
	var err error
	switch kind {
	case SubjectArticle:
		var event db.ArticleView
		err = s.db.Select("id").
			Where("article_id = ? AND viewer_ip = ? AND viewed_at >= ?", subjectID, identity, windowStart).
			First(&event).Error
	case SubjectForumPost:
		var event db.ForumPostView
		err = s.db.Select("id").
			Where("post_id = ? AND viewer_ip = ? AND viewed_at >= ?", subjectID, identity, windowStart).
			First(&event).Error
	default:
		return false, ErrUnknownSubjectKind
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *ViewService) recordViewEvent(kind SubjectKind, subjectID uint, identity string, now time.Time) error {
	switch kind {
	case SubjectArticle:
		return s.db.Create(&db.ArticleView{
			ArticleID: subjectID,
			ViewerIP:  identity,
			ViewedAt:  now,
		}).Error
	case SubjectForumPost:
		return s.db.Create(&db.ForumPostView{
			PostID:   subjectID,
			ViewerIP: identity,
			ViewedAt: now,
		}).Error
	default:
		return ErrUnknownSubjectKind
	}
}

func (s *ViewService) incrementViewCount(kind SubjectKind, subjectID uint) error {
	var result *gorm.DB
	switch kind {
	case SubjectArticle:
		result = s.db.Model(&db.Article{}).
			Where("id = ?", subjectID).
			UpdateColumn("views", gorm.Expr("views + ?", 1))
	case SubjectForumPost:
		result = s.db.Model(&db.ForumPost{}).
			Where("id = ?", subjectID).
			UpdateColumn("views_count", gorm.Expr("views_count + ?", 1))
	default:
		return ErrUnknownSubjectKind
	}

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubjectNotFound
	}
	return nil
}
