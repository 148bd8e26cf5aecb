package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/healthdesk/internal/config"
	"github.com/healthdesk/internal/db"
	"github.com/healthdesk/internal/router"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// 管理账号仅在配置了凭据时创建
	if err := db.EnsureAdminUser(cfg.AdminUserName, cfg.AdminPassword); err != nil {
		log.Printf("failed to ensure admin user: %v", err)
	}

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(cfg.SessionSecret)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
