package service

import (
	"log"
	"time"

	"github.com/user/cinesight/internal/repository"
)

// CleanupService 清理服务
type CleanupService struct {
	repos    *repository.Repositories
	interval time.Duration
}

// NewCleanupService 创建清理服务
func NewCleanupService(repos *repository.Repositories) *CleanupService {
	return &CleanupService{repos: repos, interval: time.Hour}
}

// Start 启动定时清理任务
func (s *CleanupService) Start() {
	ticker := time.NewTicker(s.interval)

	// 启动时先运行一次
	go s.runCleanup()

	go func() {
		for range ticker.C {
			s.runCleanup()
		}
	}()
}

func (s *CleanupService) runCleanup() {
	// 回收过期的会话评分账本
	alive := s.repos.Ledgers.Prune()
	log.Printf("[CleanupService] 已回收过期评分账本，当前存活 %d 个", alive)
}
