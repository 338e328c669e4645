package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User 用户文档
type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"`
	Email            string             `bson:"email" json:"email"`
	Password         string             `bson:"password" json:"-"`
	Institution      string             `bson:"institution" json:"institution"`
	Department       string             `bson:"department,omitempty" json:"department,omitempty"`
	ResearchArea     string             `bson:"research_area,omitempty" json:"research_area,omitempty"`
	Bio              string             `bson:"bio,omitempty" json:"bio,omitempty"`
	TrustRating      float64            `bson:"trust_rating" json:"trust_rating"`           // 外部信誉评分，核心只读
	PapersSubmitted  int                `bson:"papers_submitted" json:"papers_submitted"`   // 终身累计
	ReviewsCompleted int                `bson:"reviews_completed" json:"reviews_completed"` // 终身累计
	Points           int                `bson:"points" json:"points"`                       // 终身积分物化总额，来源见 point_ledger
	Level            string             `bson:"level" json:"level"`
	IsActive         bool               `bson:"is_active" json:"is_active"`
	JoinedDate       time.Time          `bson:"joined_date" json:"joined_date"`
	LastLogin        time.Time          `bson:"last_login,omitempty" json:"last_login,omitempty"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updated_at"`
}
