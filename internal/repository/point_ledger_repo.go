package repository

import (
	"PeerChain/internal/model"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PointLedgerRepo interface {
	Append(ctx context.Context, event *model.PointEvent) (bool, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]*model.PointEvent, error)
}

type pointLedgerRepoImpl struct {
	col *mongo.Collection
}

func NewPointLedgerRepo(db *mongo.Database) PointLedgerRepo {
	return &pointLedgerRepoImpl{
		col: db.Collection("point_ledger"),
	}
}

// Append 追加积分流水。
// 返回 false 表示 (user_id, type, ref) 已存在，即该笔积分已入账，调用方必须跳过加分。
func (s *pointLedgerRepoImpl) Append(ctx context.Context, event *model.PointEvent) (bool, error) {
	event.CreatedAt = time.Now()

	result, err := s.col.InsertOne(ctx, event)
	if err != nil {
		if errors.Is(translateDuplicate(err), ErrDuplicateKey) {
			return false, nil
		}
		return false, err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		event.ID = oid
	}
	return true, nil
}

func (s *pointLedgerRepoImpl) FindByUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]*model.PointEvent, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.col.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var events []*model.PointEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}
