package job

import (
	"PeerChain/internal/pkg/logger"
	"PeerChain/internal/service"
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// LeaderboardJob 每月月初生成上一周期排行榜，
// 顺带扫一遍遗留的 pending 快照做崩溃恢复
type LeaderboardJob struct {
	lbSvc service.LeaderboardService
}

func NewLeaderboardJob(lbSvc service.LeaderboardService) *LeaderboardJob {
	return &LeaderboardJob{lbSvc: lbSvc}
}

func (s *LeaderboardJob) Run() {
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, "job-"+uuid.NewString())
	log.InfoContext(ctx, "start leaderboard job")

	if err := s.lbSvc.RecoverPending(ctx); err != nil {
		log.ErrorContext(ctx, "recover pending leaderboards failed", "err", err)
	}

	now := time.Now().UTC()
	prev := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	year, month := prev.Year(), int(prev.Month())

	_, err := s.lbSvc.Generate(ctx, year, month)
	if errors.Is(err, service.ErrLeaderboardExist) {
		log.InfoContext(ctx, "leaderboard already generated", "year", year, "month", month)
		return
	}
	if err != nil {
		log.ErrorContext(ctx, "generate leaderboard failed", "year", year, "month", month, "err", err)
		return
	}
	log.InfoContext(ctx, "leaderboard job finished", "year", year, "month", month)
}
