// 手动触发过期答题记录清理脚本
//
// 该功能已集成到主应用的后台定时任务中（每小时自动执行一次）。
// 此脚本仅用于手动触发，例如调大保留期后想立即回收存量数据。
//
// 用法: go run scripts/purge_stale.go

package main

import (
	"log"
	"time"

	"medquiz_backend/internal/config"
	"medquiz_backend/internal/repository"
	"medquiz_backend/pkg/database"
	"medquiz_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database, false)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	if cfg.Quiz.StaleAttemptDays <= 0 {
		log.Println("stale_attempt_days 未配置，跳过清理")
		return
	}

	repo := repository.NewAttemptRepository(db)
	cutoff := time.Now().AddDate(0, 0, -cfg.Quiz.StaleAttemptDays)

	log.Println("手动触发过期记录清理任务...")
	purged, err := repo.PurgeStale(cutoff)
	if err != nil {
		log.Fatalf("清理失败: %v", err)
	}
	log.Printf("完成！共清理 %d 条未提交的过期记录", purged)
}
