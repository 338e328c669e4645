package service

import (
	"PeerChain/internal/model"
	"PeerChain/internal/repository"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// creditPoints 在同一事务内写积分流水并对用户终身积分做原子 $inc。
// 流水 (user, type, ref) 冲突说明该笔积分已入账，返回 false 且不产生任何副作用，
// 这使所有加分路径（评审提交、采纳、月度奖励及其恢复重试）天然幂等。
// 流水与 $inc 同事务提交，中途失败时流水一并回滚，重试不会丢失这笔积分。
func creditPoints(
	ctx context.Context,
	tx repository.TxRunner,
	ledger repository.PointLedgerRepo,
	users repository.UserRepo,
	userID primitive.ObjectID,
	eventType string,
	points int,
	ref string,
	reviewsDelta int,
) (bool, error) {
	credited := false
	err := tx.WithTransaction(ctx, func(ctx context.Context) error {
		appended, err := ledger.Append(ctx, &model.PointEvent{
			UserID: userID,
			Type:   eventType,
			Points: points,
			Ref:    ref,
		})
		if err != nil {
			return err
		}
		if !appended {
			return nil
		}

		user, err := users.IncCounters(ctx, userID, points, reviewsDelta, 0)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}

		if level := LevelForPoints(user.Points); level != user.Level {
			if err := users.SetLevel(ctx, user.ID, level); err != nil {
				return err
			}
		}
		credited = true
		return nil
	})
	return credited, err
}
