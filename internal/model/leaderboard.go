package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Leaderboard 月度排行榜快照，(year, month) 唯一，创建后不再修改（status 除外）
type Leaderboard struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Year         int                `bson:"year" json:"year"`
	Month        int                `bson:"month" json:"month"`
	Status       string             `bson:"status" json:"status"` // pending 表示奖励尚未落账
	Rankings     []LeaderboardEntry `bson:"rankings" json:"rankings"`
	TopPerformer *TopPerformer      `bson:"top_performer,omitempty" json:"top_performer,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// LeaderboardEntry 快照中单个用户的名次记录
type LeaderboardEntry struct {
	User             primitive.ObjectID `bson:"user" json:"user"`
	Rank             int                `bson:"rank" json:"rank"` // 1 起始，连续无空洞
	TotalPoints      float64            `bson:"total_points" json:"total_points"`
	ReviewsCompleted int                `bson:"reviews_completed" json:"reviews_completed"`
	PapersSubmitted  int                `bson:"papers_submitted" json:"papers_submitted"`
	AverageRating    float64            `bson:"average_rating" json:"average_rating"`
	BonusPoints      int                `bson:"bonus_points" json:"bonus_points"`
}

// TopPerformer 周期第一名及其一次性奖励
type TopPerformer struct {
	User               primitive.ObjectID `bson:"user" json:"user"`
	BonusPointsAwarded int                `bson:"bonus_points_awarded" json:"bonus_points_awarded"`
}
