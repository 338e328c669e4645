package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PointEvent 积分流水，只追加。
// (user_id, type, ref) 唯一，同一来源的积分在结构上不可能重复入账。
type PointEvent struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Type      string             `bson:"type" json:"type"`
	Points    int                `bson:"points" json:"points"`
	Ref       string             `bson:"ref" json:"ref"` // 评审 ID 或周期标识
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
