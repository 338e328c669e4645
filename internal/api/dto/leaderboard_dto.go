package dto

import "time"

// LeaderboardDTO 月度排行榜
type LeaderboardDTO struct {
	Year         int              `json:"year"`
	Month        int              `json:"month"`
	Rankings     []*RankingDTO    `json:"rankings"`
	TopPerformer *TopPerformerDTO `json:"top_performer,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

// RankingDTO 排行榜单行
type RankingDTO struct {
	User             *UserSummaryDTO `json:"user"`
	Rank             int             `json:"rank"`
	TotalPoints      float64         `json:"total_points"`
	ReviewsCompleted int             `json:"reviews_completed"`
	PapersSubmitted  int             `json:"papers_submitted"`
	AverageRating    float64         `json:"average_rating"`
	BonusPoints      int             `json:"bonus_points"`
}

// TopPerformerDTO 周期第一名
type TopPerformerDTO struct {
	User               *UserSummaryDTO `json:"user"`
	BonusPointsAwarded int             `json:"bonus_points_awarded"`
}

// UserRankDTO 单个用户名次查询结果
type UserRankDTO struct {
	Ranking           *RankingDTO `json:"ranking"`
	TotalParticipants int         `json:"total_participants"`
}
