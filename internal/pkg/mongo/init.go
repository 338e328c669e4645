package mongo

import (
	"PeerChain/internal/api/config"
	"PeerChain/internal/pkg/logger"
	"context"
	log "log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InitMongo 建立连接并返回 Database 引用，同时初始化 Schema
func InitMongo(cfg config.MongoConfig) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// 建立连接
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.URL).
		SetMonitor(logger.NewMongoMonitor()),
	)
	if err != nil {
		return nil, err
	}

	// 检查连通性
	if err = client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(cfg.Database)

	if err = ensureIndexes(ctx, db); err != nil {
		return nil, err
	}

	log.Info("MongoDB initialized successfully", "db", cfg.Database)
	return db, nil
}

// ensureIndexes 建立集合索引。
// leaderboards 的 (year, month) 唯一索引是快照防重的最终仲裁，
// point_ledger 的 (user_id, type, ref) 唯一索引保证积分不会重复入账。
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	indexes := map[string][]mongo.IndexModel{
		"users": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		"papers": {
			{Keys: bson.D{{Key: "submitted_by", Value: 1}, {Key: "submission_date", Value: -1}}},
			{Keys: bson.D{{Key: "submission_date", Value: -1}}},
		},
		"reviews": {
			{Keys: bson.D{{Key: "paper", Value: 1}, {Key: "reviewer", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "reviewer", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "reviewer", Value: 1}, {Key: "is_accepted", Value: 1}, {Key: "accepted_at", Value: -1}}},
		},
		"leaderboards": {
			{Keys: bson.D{{Key: "year", Value: 1}, {Key: "month", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
		"point_ledger": {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "type", Value: 1}, {Key: "ref", Value: 1}}, Options: unique},
		},
	}

	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}
