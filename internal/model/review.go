package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review 评审文档
type Review struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Paper            primitive.ObjectID `bson:"paper" json:"paper"`
	Reviewer         primitive.ObjectID `bson:"reviewer" json:"reviewer"`
	Rating           int                `bson:"rating" json:"rating"` // 1~5
	Comment          string             `bson:"comment" json:"comment"`
	DetailedFeedback string             `bson:"detailed_feedback,omitempty" json:"detailed_feedback,omitempty"`
	Strengths        []string           `bson:"strengths,omitempty" json:"strengths,omitempty"`
	Weaknesses       []string           `bson:"weaknesses,omitempty" json:"weaknesses,omitempty"`
	Suggestions      []string           `bson:"suggestions,omitempty" json:"suggestions,omitempty"`
	Status           string             `bson:"status" json:"status"`
	IsAccepted       bool               `bson:"is_accepted" json:"is_accepted"`
	AcceptedAt       time.Time          `bson:"accepted_at,omitempty" json:"accepted_at,omitempty"`
	PointsAwarded    int                `bson:"points_awarded" json:"points_awarded"` // 采纳时一次性写入，之后不可变
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`         // 周期归档键
	UpdatedAt        time.Time          `bson:"updated_at" json:"updated_at"`
}
