package cron

import (
	"PeerChain/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine         *cron.Cron
	leaderboardJob *job.LeaderboardJob
}

func NewCronManager(leaderboardJob *job.LeaderboardJob) *Manager {
	return &Manager{
		engine:         cron.New(cron.WithSeconds()),
		leaderboardJob: leaderboardJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	// 每月 1 号 00:30:00，错开月初整点写入高峰
	if _, err := s.engine.AddJob("0 30 0 1 * *", s.leaderboardJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
