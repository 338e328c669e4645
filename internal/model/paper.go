package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Paper 论文文档
type Paper struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title          string               `bson:"title" json:"title"`
	Abstract       string               `bson:"abstract" json:"abstract"`
	Authors        []PaperAuthor        `bson:"authors" json:"authors"`
	Keywords       []string             `bson:"keywords" json:"keywords"`
	Category       string               `bson:"category" json:"category"`
	DOI            string               `bson:"doi,omitempty" json:"doi,omitempty"`
	Status         string               `bson:"status" json:"status"`
	SubmittedBy    primitive.ObjectID   `bson:"submitted_by" json:"submitted_by"`
	Reviews        []primitive.ObjectID `bson:"reviews" json:"reviews"`
	AverageRating  float64              `bson:"average_rating" json:"average_rating"` // 评审侧副作用维护的派生值
	TotalReviews   int                  `bson:"total_reviews" json:"total_reviews"`
	SubmissionDate time.Time            `bson:"submission_date" json:"submission_date"` // 周期归档键
	CreatedAt      time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time            `bson:"updated_at" json:"updated_at"`
}

// PaperAuthor 论文署名作者
type PaperAuthor struct {
	Name        string `bson:"name" json:"name"`
	Email       string `bson:"email,omitempty" json:"email,omitempty"`
	Affiliation string `bson:"affiliation,omitempty" json:"affiliation,omitempty"`
}
