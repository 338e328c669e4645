package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// TxRunner 将多个仓储写操作放进同一个 Mongo 会话事务。
// fn 内的操作要么全部提交，要么全部回滚。
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type txRunnerImpl struct {
	client *mongo.Client
}

func NewTxRunner(db *mongo.Database) TxRunner {
	return &txRunnerImpl{client: db.Client()}
}

func (s *txRunnerImpl) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := s.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
