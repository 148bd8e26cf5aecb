package router

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/healthdesk/internal/db"
	"github.com/healthdesk/internal/handler"
)

// SetupRouter 配置 Gin 引擎和路由。
// sessionSecret 为空时使用开发用的默认密钥。
func SetupRouter(sessionSecret string) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件，浏览上报的会话层抑制依赖它
	secret := sessionSecret
	if secret == "" {
		secret = "healthdesk-dev-secret"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("healthdesk_session", store))

	api := handler.NewAPI(db.DB)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// 对外 JSON API
	group := r.Group("/api")
	{
		group.GET("/articles", api.ListArticles)
		group.POST("/articles", api.CreateArticle)
		group.GET("/articles/:slug", api.GetArticle)

		group.GET("/guidelines", api.ListGuidelines)
		group.GET("/guidelines/:slug", api.GetGuideline)

		group.GET("/forum/posts", api.ListForumPosts)
		group.POST("/forum/posts", api.CreateForumPost)
		group.GET("/forum/posts/:id", api.GetForumPost)
		group.POST("/forum/posts/:id/comments", api.AddForumComment)

		// 浏览量上报入口
		group.POST("/views", api.RecordArticleView)
		group.POST("/forum-views", api.RecordForumPostView)
	}

	return r
}
