package repository

import (
	"PeerChain/internal/model"
	"PeerChain/internal/pkg/consts"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type LeaderboardRepo interface {
	GetByPeriod(ctx context.Context, year, month int) (*model.Leaderboard, error)
	InsertPending(ctx context.Context, lb *model.Leaderboard) error
	SetTopPerformer(ctx context.Context, id primitive.ObjectID, tp *model.TopPerformer, rankings []model.LeaderboardEntry) error
	MarkFinal(ctx context.Context, id primitive.ObjectID) error
	FindPending(ctx context.Context) ([]*model.Leaderboard, error)
}

type leaderboardRepoImpl struct {
	col *mongo.Collection
}

func NewLeaderboardRepo(db *mongo.Database) LeaderboardRepo {
	return &leaderboardRepoImpl{
		col: db.Collection("leaderboards"),
	}
}

func (s *leaderboardRepoImpl) GetByPeriod(ctx context.Context, year, month int) (*model.Leaderboard, error) {
	var lb model.Leaderboard
	err := s.col.FindOne(ctx, bson.M{"year": year, "month": month}).Decode(&lb)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &lb, nil
}

// InsertPending 写入 pending 状态的快照。
// (year, month) 唯一索引是并发生成竞争的最终仲裁，冲突即另一方已胜出。
func (s *leaderboardRepoImpl) InsertPending(ctx context.Context, lb *model.Leaderboard) error {
	now := time.Now()
	lb.Status = consts.LeaderboardStatusPending
	lb.CreatedAt = now
	lb.UpdatedAt = now

	result, err := s.col.InsertOne(ctx, lb)
	if err != nil {
		return translateDuplicate(err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		lb.ID = oid
	}
	return nil
}

func (s *leaderboardRepoImpl) SetTopPerformer(ctx context.Context, id primitive.ObjectID, tp *model.TopPerformer, rankings []model.LeaderboardEntry) error {
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"top_performer": tp,
			"rankings":      rankings,
			"updated_at":    time.Now(),
		},
	})
	return err
}

func (s *leaderboardRepoImpl) MarkFinal(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"status":     consts.LeaderboardStatusFinal,
			"updated_at": time.Now(),
		},
	})
	return err
}

func (s *leaderboardRepoImpl) FindPending(ctx context.Context) ([]*model.Leaderboard, error) {
	cursor, err := s.col.Find(ctx, bson.M{"status": consts.LeaderboardStatusPending})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var boards []*model.Leaderboard
	if err := cursor.All(ctx, &boards); err != nil {
		return nil, err
	}
	return boards, nil
}
